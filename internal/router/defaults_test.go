package router

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchat-dev/finchat/internal/query"
)

func TestDefaultTableRouting(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		q    string
		want string
	}{
		{"p/e ratio of TCS", "stock_metric"},
		{"what is the pe ratio of Infosys", "stock_metric"},
		{"dividend yield of ITC", "stock_metric"},
		{"price of TCS stock", "stock_price"},
		{"reliance share price today", "stock_price"},
		{"price of nifty BEES etf", "etf_price"},
		{"nav of XYZ bluechip fund", "fund_nav"},
		{"best large cap mutual funds", "fund_category"},
		{"sip of 10k for 15 years", "sip_calculator"},
		{"emi for 25 lakh loan at 9%", "emi_calculator"},
		{"how much retirement corpus do i need", "retirement_plan"},
		{"build me a portfolio for 5 lakh", "portfolio_advice"},
		{"what is the difference between sip and lumpsum", "sip_calculator"}, // sip keyword wins over retrieval
		{"how does compounding work", IntentUnmatched},
		{"explain mutual funds to me", IntentUnmatched},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			d := table.Route(query.New(tt.q, "u1"))
			assert.Equal(t, tt.want, d.Intent)
		})
	}
}

func TestDefaultTableMetricOutranksPrice(t *testing.T) {
	table := DefaultTable()

	// Metric vocabulary and price vocabulary in one query: the metric
	// rule is ranked first and must win.
	d := table.Route(query.New("p/e ratio of TCS stock", "u1"))
	assert.Equal(t, "stock_metric", d.Intent)
	assert.Equal(t, 1, d.Rank)
}

func TestDefaultTablePriceExcludesFundVocabulary(t *testing.T) {
	table := DefaultTable()

	// "price" appears, but fund vocabulary pushes the query past the
	// generic price rule to the NAV rule.
	d := table.Route(query.New("price of the HDFC mutual fund", "u1"))
	assert.Equal(t, "fund_nav", d.Intent)
}

func TestDefaultTableCacheTTLs(t *testing.T) {
	table := DefaultTable()

	r, ok := table.Rule("stock_price")
	require.True(t, ok)
	assert.Equal(t, 5*time.Minute, r.CacheTTL)

	r, ok = table.Rule("fund_nav")
	require.True(t, ok)
	assert.Equal(t, time.Hour, r.CacheTTL)

	r, ok = table.Rule("sip_calculator")
	require.True(t, ok)
	assert.Zero(t, r.CacheTTL)
}

func TestDefaultTableIsValid(t *testing.T) {
	_, err := NewTable(DefaultRules())
	assert.NoError(t, err)
	assert.Equal(t, 9, DefaultTable().Len())
}

package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchat-dev/finchat/internal/query"
)

func routeParams(t *testing.T, table *Table, text string) map[string]string {
	t.Helper()
	d := table.Route(query.New(text, "u1"))
	require.True(t, d.Matched(), "expected %q to match", text)
	return d.Params
}

func TestExtractSIPParams(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		q    string
		want map[string]string
	}{
		{"sip of 12k for 15 years", map[string]string{"amount": "12000", "years": "15"}},
		{"start a sip of 10000", map[string]string{"amount": "10000", "years": "10"}},
		{"sip 2.5k", map[string]string{"amount": "2500", "years": "10"}},
		{"what is sip", map[string]string{"amount": "5000", "years": "10"}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			d := table.Route(query.New(tt.q, "u1"))
			require.Equal(t, "sip_calculator", d.Intent)
			assert.Equal(t, tt.want, d.Params)
		})
	}
}

func TestExtractEMIParams(t *testing.T) {
	table := DefaultTable()

	params := routeParams(t, table, "emi for a loan of 25 lakh at 9% for 15 years")
	assert.Equal(t, "2500000", params["amount"])
	assert.Equal(t, "9", params["rate"])
	assert.Equal(t, "15", params["years"])

	// Defaults fill in missing rate and tenure.
	params = routeParams(t, table, "emi on 40 lakh loan")
	assert.Equal(t, "4000000", params["amount"])
	assert.Equal(t, "8.5", params["rate"])
	assert.Equal(t, "20", params["years"])
}

func TestExtractCrore(t *testing.T) {
	table := DefaultTable()

	params := routeParams(t, table, "emi for 2 crore loan")
	assert.Equal(t, "20000000", params["amount"])

	params = routeParams(t, table, "emi for 1.5 cr loan")
	assert.Equal(t, "15000000", params["amount"])
}

func TestExtractFundCategory(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		q        string
		category string
	}{
		{"best large cap mutual funds", "large cap"},
		{"show me top mid cap funds", "mid cap"},
		{"best midcap mutual funds", "mid cap"}, // synonym reachable via "mutual fund" vocabulary
		{"recommend good elss mutual fund", "elss"},
		{"top debt mutual funds", "debt"},
		{"best balanced mutual funds", "hybrid"},
		{"best equity mutual funds", "equity"},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			d := table.Route(query.New(tt.q, "u1"))
			require.Equal(t, "fund_category", d.Intent)
			assert.Equal(t, tt.category, d.Params["category"])
			assert.Equal(t, "10", d.Params["limit"])
		})
	}
}

func TestExtractOmitsUnmatchedParamWithoutDefault(t *testing.T) {
	table := DefaultTable()

	// No digits anywhere: the EMI amount spec has no default, so the
	// param is absent rather than empty.
	params := routeParams(t, table, "how do i get a loan")
	_, ok := params["amount"]
	assert.False(t, ok)
	assert.Equal(t, "8.5", params["rate"])
}

func TestExtractWholeQueryParam(t *testing.T) {
	table := DefaultTable()

	d := table.Route(query.New("P/E ratio of TCS", "u1"))
	require.Equal(t, "stock_metric", d.Intent)
	assert.Equal(t, "p/e ratio of tcs", d.Params["query"])
}

func TestScaleAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12k", "12000", true},
		{"12 k", "12000", true},
		{"2.5k", "2500", true},
		{"1.5 lakh", "150000", true},
		{"3 lakhs", "300000", true},
		{"2 crore", "20000000", true},
		{"1.5 cr", "15000000", true},
		{"50000", "50000", true},
		{" 500 ", "500", true},
		{"abc", "", false},
		{"12m", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := scaleAmount(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractRetirementParams(t *testing.T) {
	table := DefaultTable()

	params := routeParams(t, table, "i am 35 and want to retire at 58, i need 1 lakh monthly expense")
	assert.Equal(t, "35", params["age"])
	assert.Equal(t, "58", params["retirement_age"])
	assert.Equal(t, "100000", params["monthly_expense"])

	params = routeParams(t, table, "how big a retirement corpus do i need")
	assert.Equal(t, "30", params["age"])
	assert.Equal(t, "60", params["retirement_age"])
	assert.Equal(t, "50000", params["monthly_expense"])
}

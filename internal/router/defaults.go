package router

import "time"

// Cache lifetimes for market-data intents. Stock quotes move minute to
// minute; fund NAVs update once a day.
const (
	stockCacheTTL = 5 * time.Minute
	fundCacheTTL  = time.Hour
)

// DefaultRules returns the built-in financial rule table. Rank order is
// load-bearing: metric queries must be detected before the generic price
// rule, and the price rule's exclusion set keeps fund and calculator
// vocabulary reachable by the later rules.
func DefaultRules() []Rule {
	wholeQuery := ParamSpec{Name: "query", Pattern: `^.*$`, Group: 0}

	return []Rule{
		{
			Rank:   1,
			Intent: "stock_metric",
			Patterns: []string{
				`\bp/e\s+(?:ratio\s+)?of\b`,
				`\bpe\s+(?:ratio\s+)?of\b`,
				`\bp\s+e\s+(?:ratio\s+)?of\b`,
				`\bdividend\s+yield\s+of\b`,
				`\byield\s+of\b`,
				`\bp/e\s+ratio\b`,
				`\bpe\s+ratio\b`,
				`\bdividend\s+yield\b`,
			},
			Excludes: []string{"mutual fund", "fund", "best", "top"},
			Params:   []ParamSpec{wholeQuery},
			CacheTTL: stockCacheTTL,
		},
		{
			Rank:     2,
			Intent:   "stock_price",
			Keywords: []string{"stock", "price", "share", "trading", "quote", "market cap"},
			Excludes: []string{
				"mutual fund", "nav", "sip", "emi", "portfolio", "best", "top",
				"etf", "bees", "fund", "p/e", "pe ratio", "dividend yield",
			},
			Params:   []ParamSpec{wholeQuery},
			CacheTTL: stockCacheTTL,
		},
		{
			Rank:     3,
			Intent:   "etf_price",
			Keywords: []string{"etf", "bees", "index fund"},
			Params:   []ParamSpec{wholeQuery},
			CacheTTL: stockCacheTTL,
		},
		{
			Rank:   4,
			Intent: "fund_nav",
			Patterns: []string{
				`\bnav\b`,
				`mutual fund.*price`,
				`price.*mutual fund`,
			},
			Excludes: []string{"best", "top", "good", "recommend"},
			Params:   []ParamSpec{wholeQuery},
			CacheTTL: fundCacheTTL,
		},
		{
			Rank:   5,
			Intent: "fund_category",
			Patterns: []string{
				`(?:best|top|good|show|recommend).*(?:large cap|mid cap|small cap|elss|equity|debt|hybrid|mutual fund|balanced)`,
				`(?:large cap|mid cap|small cap|elss|equity|debt|hybrid|mutual fund|balanced).*(?:best|top|good|show|recommend)`,
			},
			Params: []ParamSpec{
				{Name: "category", Pattern: `large ?cap`, Value: "large cap", Default: "equity"},
				{Name: "category", Pattern: `mid ?cap`, Value: "mid cap"},
				{Name: "category", Pattern: `small ?cap`, Value: "small cap"},
				{Name: "category", Pattern: `elss|tax saver`, Value: "elss"},
				{Name: "category", Pattern: `debt|bond`, Value: "debt"},
				{Name: "category", Pattern: `hybrid|balanced`, Value: "hybrid"},
				{Name: "limit", Default: "10"},
			},
			CacheTTL: fundCacheTTL,
		},
		{
			Rank:     6,
			Intent:   "sip_calculator",
			Keywords: []string{"sip"},
			Params: []ParamSpec{
				{Name: "amount", Pattern: `(\d+(?:\.\d+)?\s*k)\b`, Group: 1, Scale: "amount", Default: "5000"},
				{Name: "amount", Pattern: `\b(\d{3,9})\b`, Group: 1},
				{Name: "years", Pattern: `(\d{1,2})\s*(?:years|year|yrs|y)\b`, Group: 1, Default: "10"},
			},
		},
		{
			Rank:     7,
			Intent:   "emi_calculator",
			Keywords: []string{"emi", "loan"},
			Params: []ParamSpec{
				{Name: "amount", Pattern: `(\d+(?:\.\d+)?\s*(?:lakhs|lakh|crore|cr|k)?)\b`, Group: 1, Scale: "amount"},
				{Name: "rate", Pattern: `(\d+(?:\.\d+)?)\s*%`, Group: 1, Default: "8.5"},
				{Name: "years", Pattern: `(\d{1,2})\s*(?:years|year|yrs)\b`, Group: 1, Default: "20"},
			},
		},
		{
			Rank:     8,
			Intent:   "retirement_plan",
			Keywords: []string{"retirement", "retire", "corpus"},
			Params: []ParamSpec{
				{Name: "age", Pattern: `(?:age|i am|i'm)\s*(\d{1,2})`, Group: 1, Default: "30"},
				{Name: "retirement_age", Pattern: `(?:retire\s*at|retirement\s*age)\s*(\d{2})`, Group: 1, Default: "60"},
				{Name: "monthly_expense", Pattern: `(?:expense|spend|need)\s*(?:of\s*)?(\d+(?:\.\d+)?\s*(?:lakhs|lakh|crore|cr|k)?)\b`, Group: 1, Scale: "amount", Default: "50000"},
			},
		},
		{
			Rank:   9,
			Intent: "portfolio_advice",
			Patterns: []string{
				`\bportfolio\b`,
				`(?:i have|create|suggest|build).*invest`,
				`invest.*(?:i have|create|suggest|build)`,
			},
			Params: []ParamSpec{
				{Name: "amount", Pattern: `(\d+(?:\.\d+)?\s*(?:lakhs|lakh|crore|cr|k)?)\b`, Group: 1, Scale: "amount", Default: "100000"},
				{Name: "age", Default: "30"},
				{Name: "risk", Default: "moderate"},
			},
		},
	}
}

// DefaultTable builds the table of DefaultRules. The built-in rules are
// known good, so construction cannot fail.
func DefaultTable() *Table {
	t, err := NewTable(DefaultRules())
	if err != nil {
		panic("router: default rules invalid: " + err.Error())
	}
	return t
}

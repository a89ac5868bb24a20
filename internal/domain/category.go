package domain

// Category is the closed classification set for articles. "trending" is a
// derived, query-time ordering and is never stored as a category.
type Category string

const (
	CategoryNifty          Category = "nifty"
	CategoryBreakout       Category = "breakout"
	CategoryMovers         Category = "movers"
	CategoryWarrant        Category = "warrant"
	CategoryIPO            Category = "ipo"
	CategorySMEIPO         Category = "sme_ipo"
	CategoryOrderWins      Category = "order_wins"
	CategoryATH            Category = "ath"
	CategoryResults        Category = "results"
	CategoryResearchReport Category = "research_report"
	CategoryOthers         Category = "others"
	CategoryGlobal         Category = "global"
)

// QueryTrending and QueryAll are category query values accepted by the read
// path but never stored on an article.
const (
	QueryTrending = "trending"
	QueryAll      = "all"
)

var AllCategories = []Category{
	CategoryNifty,
	CategoryBreakout,
	CategoryMovers,
	CategoryWarrant,
	CategoryIPO,
	CategorySMEIPO,
	CategoryOrderWins,
	CategoryATH,
	CategoryResults,
	CategoryResearchReport,
	CategoryOthers,
	CategoryGlobal,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Premium reports whether articles in this category are premium-gated by
// default. An explicit source flag can still mark other articles premium.
func (c Category) Premium() bool {
	return c == CategoryWarrant || c == CategoryBreakout
}

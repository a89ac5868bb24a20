package content

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/stockbrief/stock-shorts/internal/domain"
)

// defaultAliases maps lower-cased source labels to canonical categories.
// Lookup is exact match first, then substring in either direction.
var defaultAliases = map[string]domain.Category{
	"nifty":        domain.CategoryNifty,
	"nifty50":      domain.CategoryNifty,
	"nifty 50":     domain.CategoryNifty,
	"sensex":       domain.CategoryNifty,
	"index":        domain.CategoryNifty,
	"indices":      domain.CategoryNifty,
	"market index": domain.CategoryNifty,

	"breakout":        domain.CategoryBreakout,
	"breakout stocks": domain.CategoryBreakout,
	"technical":       domain.CategoryBreakout,
	"chart pattern":   domain.CategoryBreakout,
	"momentum":        domain.CategoryBreakout,

	"movers":        domain.CategoryMovers,
	"top movers":    domain.CategoryMovers,
	"gainers":       domain.CategoryMovers,
	"top gainers":   domain.CategoryMovers,
	"losers":        domain.CategoryMovers,
	"top losers":    domain.CategoryMovers,
	"most active":   domain.CategoryMovers,
	"active stocks": domain.CategoryMovers,
	"volume buzzer": domain.CategoryMovers,

	"warrant":         domain.CategoryWarrant,
	"warrants":        domain.CategoryWarrant,
	"rights issue":    domain.CategoryWarrant,
	"preferential":    domain.CategoryWarrant,

	"ipo":          domain.CategoryIPO,
	"ipos":         domain.CategoryIPO,
	"new listing":  domain.CategoryIPO,
	"listing":      domain.CategoryIPO,
	"mainboard":    domain.CategoryIPO,
	"public issue": domain.CategoryIPO,

	"sme ipo":   domain.CategorySMEIPO,
	"sme":       domain.CategorySMEIPO,
	"sme board": domain.CategorySMEIPO,

	"order wins":   domain.CategoryOrderWins,
	"order win":    domain.CategoryOrderWins,
	"orders":       domain.CategoryOrderWins,
	"new order":    domain.CategoryOrderWins,
	"contract":     domain.CategoryOrderWins,
	"order book":   domain.CategoryOrderWins,
	"loi":          domain.CategoryOrderWins,
	"work order":   domain.CategoryOrderWins,

	"ath":           domain.CategoryATH,
	"all time high": domain.CategoryATH,
	"all-time high": domain.CategoryATH,
	"record high":   domain.CategoryATH,
	"52 week high":  domain.CategoryATH,
	"52w high":      domain.CategoryATH,
	"new high":      domain.CategoryATH,

	"results":           domain.CategoryResults,
	"result":            domain.CategoryResults,
	"earnings":          domain.CategoryResults,
	"quarterly results": domain.CategoryResults,
	"q1":                domain.CategoryResults,
	"q2":                domain.CategoryResults,
	"q3":                domain.CategoryResults,
	"q4":                domain.CategoryResults,
	"financials":        domain.CategoryResults,

	"research report": domain.CategoryResearchReport,
	"research":        domain.CategoryResearchReport,
	"broker report":   domain.CategoryResearchReport,
	"brokerage":       domain.CategoryResearchReport,
	"target price":    domain.CategoryResearchReport,
	"rating":          domain.CategoryResearchReport,
	"analyst":         domain.CategoryResearchReport,

	"global":         domain.CategoryGlobal,
	"global markets": domain.CategoryGlobal,
	"world":          domain.CategoryGlobal,
	"us markets":     domain.CategoryGlobal,
	"dow":            domain.CategoryGlobal,
	"nasdaq":         domain.CategoryGlobal,
	"asia":           domain.CategoryGlobal,
	"international":  domain.CategoryGlobal,

	"others": domain.CategoryOthers,
	"other":  domain.CategoryOthers,
	"misc":   domain.CategoryOthers,
	"news":   domain.CategoryOthers,

	// "trending" is derived-only, never stored.
	"trending": domain.CategoryOthers,
}

// Normalizer maps free-text category labels from the source to the closed
// category set. It is pure and total: every input maps to exactly one
// category.
type Normalizer struct {
	aliases map[string]domain.Category
	// Sorted alias list so substring fallback scans in a fixed order.
	ordered []string
}

func NewNormalizer() *Normalizer {
	aliases := make(map[string]domain.Category, len(defaultAliases))
	for alias, cat := range defaultAliases {
		aliases[alias] = cat
	}
	n := &Normalizer{aliases: aliases}
	n.reindex()
	return n
}

func (n *Normalizer) reindex() {
	n.ordered = make([]string, 0, len(n.aliases))
	for alias := range n.aliases {
		n.ordered = append(n.ordered, alias)
	}
	sort.Strings(n.ordered)
}

// NewNormalizerWithOverrides layers extra alias->category entries over the
// default table. Overrides with an unknown target category are ignored.
func NewNormalizerWithOverrides(overrides map[string]domain.Category) *Normalizer {
	n := NewNormalizer()
	for alias, cat := range overrides {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias == "" || !cat.Valid() {
			slog.Warn("Skipping invalid category alias override", "alias", alias, "category", cat)
			continue
		}
		n.aliases[alias] = cat
	}
	n.reindex()
	return n
}

// Normalize resolves a raw label to a category. Unmatched labels fall back to
// "others"; the fallback is logged so gaps in the alias table are visible.
func (n *Normalizer) Normalize(raw string) domain.Category {
	label := strings.ToLower(strings.TrimSpace(raw))
	if label == "" {
		return domain.CategoryOthers
	}

	if cat, ok := n.aliases[label]; ok {
		return cat
	}

	for _, alias := range n.ordered {
		if strings.Contains(label, alias) || strings.Contains(alias, label) {
			return n.aliases[alias]
		}
	}

	slog.Info("Category label missed alias table, falling back", "label", raw)
	return domain.CategoryOthers
}

package content

import (
	"hash/fnv"
	"strings"

	"github.com/stockbrief/stock-shorts/internal/domain"
)

// Stock photo pools. Order matters: the hash indexes into the slice, so
// reordering a pool changes every assigned image.
var imagePools = map[string][]string{
	"banking": {
		"https://images.unsplash.com/photo-1501167786227-4cba60f6d58f?w=800&q=80",
		"https://images.unsplash.com/photo-1541354329998-f4d9a9f9297f?w=800&q=80",
		"https://images.unsplash.com/photo-1601597111158-2fceff292cdc?w=800&q=80",
		"https://images.unsplash.com/photo-1554224155-6726b3ff858f?w=800&q=80",
		"https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=800&q=80",
	},
	"technology": {
		"https://images.unsplash.com/photo-1518770660439-4636190af475?w=800&q=80",
		"https://images.unsplash.com/photo-1531297484001-80022131f5a1?w=800&q=80",
		"https://images.unsplash.com/photo-1484417894907-623942c8ee29?w=800&q=80",
		"https://images.unsplash.com/photo-1550751827-4bd374c3f58b?w=800&q=80",
		"https://images.unsplash.com/photo-1526374965328-7f61d4dc18c5?w=800&q=80",
	},
	"automotive": {
		"https://images.unsplash.com/photo-1492144534655-ae79c964c9d7?w=800&q=80",
		"https://images.unsplash.com/photo-1503376780353-7e6692767b70?w=800&q=80",
		"https://images.unsplash.com/photo-1486262715619-67b85e0b08d3?w=800&q=80",
		"https://images.unsplash.com/photo-1511919884226-fd3cad34687c?w=800&q=80",
		"https://images.unsplash.com/photo-1542362567-b07e54358753?w=800&q=80",
	},
	"energy": {
		"https://images.unsplash.com/photo-1466611653911-95081537e5b7?w=800&q=80",
		"https://images.unsplash.com/photo-1473341304170-971dccb5ac1e?w=800&q=80",
		"https://images.unsplash.com/photo-1509391366360-2e959784a276?w=800&q=80",
		"https://images.unsplash.com/photo-1548337138-e87d889cc369?w=800&q=80",
		"https://images.unsplash.com/photo-1497435334941-8c899ee9e8e9?w=800&q=80",
	},
	"healthcare": {
		"https://images.unsplash.com/photo-1587854692152-cbe660dbde88?w=800&q=80",
		"https://images.unsplash.com/photo-1576091160399-112ba8d25d1d?w=800&q=80",
		"https://images.unsplash.com/photo-1584308666744-24d5c474f2ae?w=800&q=80",
		"https://images.unsplash.com/photo-1579684385127-1ef15d508118?w=800&q=80",
		"https://images.unsplash.com/photo-1530026186672-2cd00ffc50fe?w=800&q=80",
	},
	"retail": {
		"https://images.unsplash.com/photo-1441986300917-64674bd600d8?w=800&q=80",
		"https://images.unsplash.com/photo-1534452203293-494d7ddbf7e0?w=800&q=80",
		"https://images.unsplash.com/photo-1472851294608-062f824d29cc?w=800&q=80",
		"https://images.unsplash.com/photo-1556740738-b6a63e27c4df?w=800&q=80",
		"https://images.unsplash.com/photo-1481437156560-3205f6a55735?w=800&q=80",
	},
	"fintech": {
		"https://images.unsplash.com/photo-1563013544-824ae1b704d3?w=800&q=80",
		"https://images.unsplash.com/photo-1559526324-4b87b5e36e44?w=800&q=80",
		"https://images.unsplash.com/photo-1556742205-e10c9486e506?w=800&q=80",
		"https://images.unsplash.com/photo-1616077168079-7e09a677fb2c?w=800&q=80",
		"https://images.unsplash.com/photo-1605792657660-596af9009e82?w=800&q=80",
	},
	"trading": {
		"https://images.unsplash.com/photo-1611974789855-9c2a0a7236a3?w=800&q=80",
		"https://images.unsplash.com/photo-1590283603385-17ffb3a7f29f?w=800&q=80",
		"https://images.unsplash.com/photo-1535320903710-d993d3d77d29?w=800&q=80",
		"https://images.unsplash.com/photo-1642790106117-e829e14a795f?w=800&q=80",
		"https://images.unsplash.com/photo-1560221328-12fe60f83ab8?w=800&q=80",
	},
	"market": {
		"https://images.unsplash.com/photo-1612010167108-3e6b327405f0?w=800&q=80",
		"https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800&q=80",
		"https://images.unsplash.com/photo-1543286386-713bdd548da4?w=800&q=80",
		"https://images.unsplash.com/photo-1559589689-577aabd1db4f?w=800&q=80",
		"https://images.unsplash.com/photo-1518186285589-2f7649de83e0?w=800&q=80",
		"https://images.unsplash.com/photo-1526628953301-3e589a6a8b74?w=800&q=80",
	},
}

// keywordPools is scanned in order; the first pool whose keyword appears in
// the lower-cased title+content wins.
var keywordPools = []struct {
	pool     string
	keywords []string
}{
	{"banking", []string{"hdfc bank", "icici", "sbi", "axis bank", "kotak", "bank of", "banking", "bandhan", "idfc"}},
	{"technology", []string{"tcs", "infosys", "wipro", "hcl tech", "tech mahindra", "software", " it ", "tech"}},
	{"automotive", []string{"tata motors", "maruti", "mahindra", "bajaj auto", "hero moto", "eicher", "ashok leyland", "automobile", "auto"}},
	{"energy", []string{"reliance", "ongc", "ntpc", "power grid", "adani power", "coal india", "oil", "energy", "solar", "power"}},
	{"healthcare", []string{"sun pharma", "cipla", "dr reddy", "lupin", "apollo", "pharma", "hospital", "healthcare", "drug"}},
	{"retail", []string{"dmart", "trent", "avenue super", "titan", "fmcg", "hindustan unilever", "itc", "nestle", "dabur", "retail"}},
	{"fintech", []string{"paytm", "policybazaar", "upi", "fintech", "nbfc", "payments", "wallet"}},
}

// categoryPools is the fallback when no keyword matches.
var categoryPools = map[domain.Category]string{
	domain.CategoryBreakout:       "trading",
	domain.CategoryWarrant:        "trading",
	domain.CategoryMovers:         "trading",
	domain.CategoryIPO:            "market",
	domain.CategoryResults:        "market",
	domain.CategoryResearchReport: "market",
	domain.CategoryNifty:          "market",
}

// ImageSelector deterministically assigns a stock photo to an article. Two
// calls with identical inputs always return the same URL.
type ImageSelector struct{}

func NewImageSelector() *ImageSelector {
	return &ImageSelector{}
}

// Select picks a URL for the article. Content must be final (post-synthesis)
// so the hash is computed over what will actually be stored.
func (s *ImageSelector) Select(id int, title, finalContent string, category domain.Category, stockSymbol string) string {
	text := strings.ToLower(title + " " + finalContent)

	poolName := ""
	for _, kp := range keywordPools {
		for _, kw := range kp.keywords {
			if strings.Contains(text, kw) {
				poolName = kp.pool
				break
			}
		}
		if poolName != "" {
			break
		}
	}
	if poolName == "" {
		poolName = categoryPools[category]
	}
	if poolName == "" {
		poolName = "market"
	}

	if id < 0 {
		id = -id
	}
	pool := imagePools[poolName]
	idx := int((contentHash(text+strings.ToLower(stockSymbol)) + uint64(id)) % uint64(len(pool)))
	return pool[idx]
}

func contentHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

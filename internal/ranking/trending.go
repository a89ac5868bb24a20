package ranking

import (
	"sort"

	"github.com/stockbrief/stock-shorts/internal/domain"
)

const (
	// headSize most-viewed articles open the trending feed.
	headSize = 15
	// Per-category quota for priority categories in the diversity tail.
	priorityQuota = 2
	// Combined quota for all remaining categories.
	othersQuota = 5
)

// Categories guaranteed representation in the tail, in quota order.
var priorityCategories = []domain.Category{
	domain.CategoryNifty,
	domain.CategoryMovers,
	domain.CategoryBreakout,
	domain.CategoryIPO,
	domain.CategoryResults,
}

// Rank derives the trending ordering: the top articles by view count
// (creation time breaking ties), followed by a category-diverse tail drawn
// from the remainder. Pure and deterministic: it never mutates its input and
// two calls on the same snapshot return the same ordering.
func Rank(articles []domain.Article) []domain.Article {
	sorted := make([]domain.Article, len(articles))
	copy(sorted, articles)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ViewCount != sorted[j].ViewCount {
			return sorted[i].ViewCount > sorted[j].ViewCount
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if len(sorted) <= headSize {
		return sorted
	}

	head := sorted[:headSize]
	remainder := sorted[headSize:]

	prio := make(map[domain.Category]bool, len(priorityCategories))
	for _, c := range priorityCategories {
		prio[c] = true
	}

	taken := make(map[domain.Category]int)
	othersTaken := 0
	tail := make([]domain.Article, 0, len(remainder))
	for _, a := range remainder {
		if prio[a.Category] {
			if taken[a.Category] >= priorityQuota {
				continue
			}
			taken[a.Category]++
		} else {
			if othersTaken >= othersQuota {
				continue
			}
			othersTaken++
		}
		tail = append(tail, a)
	}

	out := make([]domain.Article, 0, len(head)+len(tail))
	out = append(out, head...)
	out = append(out, tail...)
	return out
}

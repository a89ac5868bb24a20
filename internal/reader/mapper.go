package reader

import (
	"fmt"
	"time"

	"github.com/stockbrief/stock-shorts/internal/content"
	"github.com/stockbrief/stock-shorts/internal/domain"
)

const (
	defaultTitle   = "Untitled"
	defaultTimeAgo = "Just now"
)

// Mapper converts one parsed row into a domain.Article, running category
// normalization, content synthesis and image selection in that order. Image
// selection runs last so the hash covers the final, possibly synthesized,
// content.
type Mapper struct {
	normalizer *content.Normalizer
	synth      *content.Synthesizer
	images     *content.ImageSelector
	now        func() time.Time
}

func NewMapper(normalizer *content.Normalizer, synth *content.Synthesizer, images *content.ImageSelector) *Mapper {
	return &Mapper{
		normalizer: normalizer,
		synth:      synth,
		images:     images,
		now:        time.Now,
	}
}

// MapRow produces the final article for a row at positionIndex.
// duplicateContent is supplied by the reconciler, which is the only party
// that can see content assigned to earlier rows of the same batch.
func (m *Mapper) MapRow(row ParsedRow, positionIndex int, duplicateContent bool) domain.Article {
	title := row.Title
	if title == "" {
		title = defaultTitle
	}
	timeAgo := row.TimeAgo
	if timeAgo == "" {
		timeAgo = defaultTimeAgo
	}

	category := m.normalizer.Normalize(row.Category)

	id := row.ID
	if !row.HasID {
		id = positionIndex + 1
	}

	body := row.Content
	if duplicateContent || m.synth.NeedsSynthesis(body) {
		body = m.synth.Synthesize(title, category, row.StockSymbol, row.StockPrice, row.PriceChange, positionIndex)
	}

	article := domain.Article{
		ID:          id,
		Title:       title,
		Content:     body,
		Category:    category,
		StockSymbol: row.StockSymbol,
		StockPrice:  row.StockPrice,
		PriceChange: row.PriceChange,
		Exchange:    row.Exchange,
		PriceTarget: row.PriceTarget,
		IsPremium:   row.IsPremium || category.Premium(),
		TimeAgo:     timeAgo,
		Source:      row.Source,
		Sentiment:   row.Sentiment,
		CreatedAt:   m.now(),
	}
	article.ImageURL = m.images.Select(article.ID, article.Title, article.Content, article.Category, article.StockSymbol)
	return article
}

// Disambiguate appends a deterministic position-derived sentence to an
// article whose final body still collides with an earlier row of the batch,
// then recomputes the image so its hash covers the stored content. Synthesis
// is template-indexed by position, so two filler rows with the same title can
// otherwise land on identical text.
func (m *Mapper) Disambiguate(article *domain.Article, positionIndex int) {
	article.Content = fmt.Sprintf("%s This is update #%d in today's feed.", article.Content, positionIndex+1)
	article.ImageURL = m.images.Select(article.ID, article.Title, article.Content, article.Category, article.StockSymbol)
}

package reader

import (
	"strconv"
	"strings"

	"github.com/stockbrief/stock-shorts/internal/apperr"
)

// Positional cell layout of one raw source row. Absent trailing cells are
// treated as empty strings.
const (
	cellID = iota
	cellTitle
	cellContent
	cellCategory
	cellStockSymbol
	cellStockPrice
	cellPriceChange
	cellExchange
	cellReserved
	cellTimeAgo
	cellIsPremium
	cellSource
	cellPriceTarget
	cellSentiment

	rowWidth
)

var cellNames = [rowWidth]string{
	"id", "title", "content", "category", "stockSymbol", "stockPrice",
	"priceChange", "exchange", "reserved", "timeAgo", "isPremium", "source",
	"priceTarget", "sentiment",
}

// ParsedRow is the validated form of one raw row. Missing lists the
// positional fields that were absent or blank, so callers can report gaps
// instead of silently coalescing them away.
type ParsedRow struct {
	ID          int
	HasID       bool
	Title       string
	Content     string
	Category    string
	StockSymbol string
	StockPrice  string
	PriceChange string
	Exchange    string
	TimeAgo     string
	IsPremium   bool
	Source      string
	PriceTarget string
	Sentiment   string
	Missing     []string
}

// ParseRow validates one positional row. A row missing both id and title is
// structurally unusable and yields an apperr.RowError; everything else parses
// with defaults applied downstream by the mapper.
func ParseRow(cells []string, index int) (ParsedRow, error) {
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	row := ParsedRow{
		Title:       cell(cellTitle),
		Content:     cell(cellContent),
		Category:    cell(cellCategory),
		StockSymbol: cell(cellStockSymbol),
		StockPrice:  cell(cellStockPrice),
		PriceChange: cell(cellPriceChange),
		Exchange:    cell(cellExchange),
		TimeAgo:     cell(cellTimeAgo),
		Source:      cell(cellSource),
		PriceTarget: cell(cellPriceTarget),
		Sentiment:   cell(cellSentiment),
	}

	if raw := cell(cellID); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			row.ID = id
			row.HasID = true
		}
	}
	row.IsPremium = strings.EqualFold(cell(cellIsPremium), "true")

	for i := 0; i < rowWidth; i++ {
		if i == cellReserved {
			continue
		}
		if cell(i) == "" {
			row.Missing = append(row.Missing, cellNames[i])
		}
	}

	if !row.HasID && row.Title == "" {
		return ParsedRow{}, apperr.NewRow(index, []string{"id", "title"})
	}
	return row, nil
}

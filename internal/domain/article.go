package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article is one short-form feed entry. IDs come from the upstream sheet when
// present, otherwise from the row position. Content is never empty after
// mapping and never byte-identical between two articles of one sync batch.
type Article struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    Category `json:"category"`
	StockSymbol string   `json:"stockSymbol,omitempty"`
	StockPrice  string   `json:"stockPrice,omitempty"`
	PriceChange string   `json:"priceChange,omitempty"`
	Exchange    string   `json:"exchange,omitempty"`
	PriceTarget string   `json:"priceTarget,omitempty"`
	ImageURL    string   `json:"imageUrl"`
	IsPremium   bool     `json:"isPremium"`
	ViewCount   int64    `json:"viewCount"`
	TimeAgo     string   `json:"timeAgo,omitempty"`
	Source      string   `json:"source,omitempty"`
	Sentiment   string   `json:"sentiment,omitempty"`

	// Lazily populated translation cache, dropped on re-sync.
	TitleHi   string `json:"titleHi,omitempty"`
	ContentHi string `json:"contentHi,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ArticleDraft is the caller-supplied shape for the demo/test injection path.
// ID, CreatedAt, ImageURL and the premium flag are synthesized by the store.
type ArticleDraft struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Category    string  `json:"category"`
	StockSymbol string  `json:"stockSymbol"`
	StockPrice  string  `json:"stockPrice"`
	PriceChange string  `json:"priceChange"`
	Exchange    string  `json:"exchange"`
	Source      string  `json:"source"`
	Sentiment   string  `json:"sentiment"`
	IsPremium   *bool   `json:"isPremium"`
}

// SyncResult summarizes one ingestion pass.
type SyncResult struct {
	Added int `json:"added"`
	Total int `json:"total"`
}

// SavedEntry is a user/article pairing used for both bookmarks and the
// read-later list. Uniqueness by (UserID, ArticleID) is enforced at the
// application layer.
type SavedEntry struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"userId"`
	ArticleID int       `json:"articleId"`
	CreatedAt time.Time `json:"createdAt"`
}

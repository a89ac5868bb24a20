package ingest

import (
	"errors"
	"testing"

	"github.com/stockbrief/stock-shorts/internal/apperr"
	"github.com/stockbrief/stock-shorts/internal/content"
	"github.com/stockbrief/stock-shorts/internal/domain"
	"github.com/stockbrief/stock-shorts/internal/reader"
	"github.com/stockbrief/stock-shorts/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconciler(source reader.RowSource) (*Reconciler, *in_mem.Store) {
	normalizer := content.NewNormalizer()
	images := content.NewImageSelector()
	store := in_mem.NewStore(normalizer, images)
	mapper := reader.NewMapper(normalizer, content.NewSynthesizer(), images)
	return NewReconciler(source, mapper, store), store
}

func TestSync_TwoRowsWithDuplicateContent(t *testing.T) {
	source := &reader.StaticSource{Rows: [][]string{
		{"1", "Nifty up", "Content A", "nifty", "NIFTY", "23000", "+1%", "NSE", "", "5 min ago", "false", "", "", ""},
		{"2", "Nifty up again", "Content A", "nifty", "NIFTY", "23010", "+1.1%", "NSE", "", "6 min ago", "false", "", "", ""},
	}}
	rec, store := newTestReconciler(source)

	result, err := rec.Sync(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 2, result.Total)

	first, err := store.GetArticle(t.Context(), 1)
	require.NoError(t, err)
	second, err := store.GetArticle(t.Context(), 2)
	require.NoError(t, err)

	assert.Equal(t, "Content A", first.Content)
	assert.NotEqual(t, "Content A", second.Content)
	assert.NotEmpty(t, second.Content)
	assert.Equal(t, domain.CategoryNifty, first.Category)
	assert.Equal(t, domain.CategoryNifty, second.Category)
	assert.False(t, first.IsPremium)
	assert.False(t, second.IsPremium)
}

func TestSync_NoEmptyContentAfterMapping(t *testing.T) {
	source := &reader.StaticSource{Rows: [][]string{
		{"1", "Row with body", "Real content", "nifty"},
		{"2", "Row without body", "", "movers"},
		{"3", "Whitespace body", "   ", "ipo"},
	}}
	rec, store := newTestReconciler(source)

	_, err := rec.Sync(t.Context())
	require.NoError(t, err)

	all, err := store.GetArticles(t.Context(), "all")
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, a := range all {
		assert.NotEmpty(t, a.Content, "article %d has empty content", a.ID)
	}
}

func TestSync_BatchContentsAreUnique(t *testing.T) {
	// Four rows sharing one raw body, plus two empty rows with the same
	// title: the synthesized fillers must not collide either.
	source := &reader.StaticSource{Rows: [][]string{
		{"1", "Repeat", "Same body", "others"},
		{"2", "Repeat", "Same body", "others"},
		{"3", "Repeat", "Same body", "others"},
		{"4", "Repeat", "Same body", "others"},
		{"5", "Empty twin", "", "others"},
		{"6", "Empty twin", "", "others"},
	}}
	rec, store := newTestReconciler(source)

	_, err := rec.Sync(t.Context())
	require.NoError(t, err)

	all, err := store.GetArticles(t.Context(), "all")
	require.NoError(t, err)
	require.Len(t, all, 6)

	seen := map[string]int{}
	for _, a := range all {
		require.NotEmpty(t, a.Content)
		if prev, ok := seen[a.Content]; ok {
			t.Fatalf("articles %d and %d share content %q", prev, a.ID, a.Content)
		}
		seen[a.Content] = a.ID
	}
}

func TestSync_ViewCountSurvivesResync(t *testing.T) {
	source := &reader.StaticSource{Rows: [][]string{
		{"7", "Sticky article", "Body seven", "results"},
	}}
	rec, store := newTestReconciler(source)

	_, err := rec.Sync(t.Context())
	require.NoError(t, err)

	for i := 0; i < 42; i++ {
		store.IncrementViewCount(t.Context(), 7)
	}

	_, err = rec.Sync(t.Context())
	require.NoError(t, err)

	got, err := store.GetArticle(t.Context(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ViewCount)
}

func TestSync_FetchFailureLeavesStoreUntouched(t *testing.T) {
	good := &reader.StaticSource{Rows: [][]string{
		{"1", "Initial", "Body one", "nifty"},
		{"2", "Second", "Body two", "ipo"},
	}}
	rec, store := newTestReconciler(good)

	_, err := rec.Sync(t.Context())
	require.NoError(t, err)

	before, err := store.GetArticles(t.Context(), "all")
	require.NoError(t, err)

	good.Err = errors.New("connection reset")
	_, err = rec.Sync(t.Context())
	require.Error(t, err)
	var se *apperr.SourceError
	assert.ErrorAs(t, err, &se)

	after, err := store.GetArticles(t.Context(), "all")
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].Content, after[i].Content)
	}
}

func TestSync_EmptyFetchIsNoOp(t *testing.T) {
	source := &reader.StaticSource{Rows: [][]string{
		{"1", "Initial", "Body one", "nifty"},
	}}
	rec, store := newTestReconciler(source)

	_, err := rec.Sync(t.Context())
	require.NoError(t, err)

	source.Rows = nil
	result, err := rec.Sync(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 1, result.Total)

	all, err := store.GetArticles(t.Context(), "all")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSync_SkipsUnusableRows(t *testing.T) {
	source := &reader.StaticSource{Rows: [][]string{
		{"", "", "orphan body with no id or title"},
		{"2", "Usable", "Body", "movers"},
	}}
	rec, store := newTestReconciler(source)

	result, err := rec.Sync(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)

	_, err = store.GetArticle(t.Context(), 2)
	assert.NoError(t, err)
}

func TestSync_AllRowsUnusableAborts(t *testing.T) {
	source := &reader.StaticSource{Rows: [][]string{
		{"", "", "nothing"},
		{"", "", "still nothing"},
	}}
	rec, store := newTestReconciler(source)

	// Seed first so abort visibly preserves state.
	_, err := store.CreateArticle(t.Context(), domain.ArticleDraft{Title: "seed", Content: "existing", Category: "others"})
	require.NoError(t, err)

	_, err = rec.Sync(t.Context())
	require.Error(t, err)

	all, err := store.GetArticles(t.Context(), "all")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSync_CategoryAndPremiumMapping(t *testing.T) {
	source := &reader.StaticSource{Rows: [][]string{
		{"1", "Volume leaders", "Busy session", "Most Active"},
		{"2", "Warrant plan", "Board approved warrants", "warrant"},
	}}
	rec, store := newTestReconciler(source)

	_, err := rec.Sync(t.Context())
	require.NoError(t, err)

	movers, err := store.GetArticle(t.Context(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryMovers, movers.Category)

	warrant, err := store.GetArticle(t.Context(), 2)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryWarrant, warrant.Category)
	assert.True(t, warrant.IsPremium)
}

func TestSync_Idempotent(t *testing.T) {
	source := &reader.StaticSource{Rows: [][]string{
		{"1", "Stable row", "Stable body", "nifty", "NIFTY", "23000", "+1%"},
		{"2", "Filler row", "", "movers", "RELIANCE", "2900", "-0.2%"},
	}}
	rec, store := newTestReconciler(source)

	_, err := rec.Sync(t.Context())
	require.NoError(t, err)
	first, err := store.GetArticles(t.Context(), "all")
	require.NoError(t, err)

	result, err := rec.Sync(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)

	second, err := store.GetArticles(t.Context(), "all")
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Content, second[i].Content, "resync altered content of article %d", first[i].ID)
		assert.Equal(t, first[i].ImageURL, second[i].ImageURL)
		assert.Equal(t, first[i].CreatedAt, second[i].CreatedAt)
	}
}

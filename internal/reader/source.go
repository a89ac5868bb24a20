package reader

import "context"

// RowSource supplies raw positional rows from the external content source.
// A fetch failure must surface as an error, never as an empty successful
// result, so the reconciler can tell "no data" from "fetch failed".
type RowSource interface {
	FetchRows(ctx context.Context) ([][]string, error)
}

// StaticSource serves a fixed row set. Used by tests and the demo binary.
type StaticSource struct {
	Rows [][]string
	Err  error
}

func (s *StaticSource) FetchRows(ctx context.Context) ([][]string, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Rows, nil
}

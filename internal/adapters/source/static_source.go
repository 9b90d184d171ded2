package source

import (
	"context"
	"schedule-comparison-service/internal/domain"
)

// StaticSource serves a fixed row set. It backs tests and demos that do not
// touch the filesystem.
type StaticSource struct {
	Name string
	Rows domain.RowSet
	Err  error
}

func NewStaticSource(name string, header []string, rows [][]string) *StaticSource {
	return &StaticSource{
		Name: name,
		Rows: domain.RowSet{Format: domain.AutoFormat, Label: name, Header: header, Rows: rows},
	}
}

func (s *StaticSource) Describe() string { return s.Name }

func (s *StaticSource) Fetch(ctx context.Context) (domain.RowSet, error) {
	if err := ctx.Err(); err != nil {
		return domain.RowSet{}, err
	}
	if s.Err != nil {
		return domain.RowSet{}, s.Err
	}
	return s.Rows, nil
}

package mcp

import (
	"context"

	"github.com/custodia-labs/askpdf/internal/core/domain"
)

// mockController implements driving.IndexController for testing.
type mockController struct {
	hits       []domain.PageHit
	err        error
	report     *domain.RefreshReport
	lastOpts   domain.QueryOptions
	lastAsk    string
	refreshes  int
	statusHits int
}

func (m *mockController) Ask(_ context.Context, question string, opts domain.QueryOptions) ([]domain.PageHit, error) {
	m.lastAsk = question
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

func (m *mockController) Open(context.Context) (*domain.RefreshReport, error) {
	return &domain.RefreshReport{}, nil
}

func (m *mockController) Update(context.Context) (*domain.RefreshReport, error) {
	return &domain.RefreshReport{}, nil
}

func (m *mockController) Refresh(context.Context) (*domain.RefreshReport, error) {
	m.refreshes++
	if m.err != nil {
		return nil, m.err
	}
	if m.report == nil {
		return &domain.RefreshReport{Added: []string{}, Skipped: []domain.SkippedFile{}}, nil
	}
	return m.report, nil
}

func (m *mockController) Status(context.Context) (*domain.IndexStatus, error) {
	m.statusHits++
	if m.err != nil {
		return nil, m.err
	}
	return &domain.IndexStatus{
		Directory: "/docs",
		IndexPath: "/docs/.askpdf.idx",
		Backend:   "file",
		Files:     2,
		Pages:     len(m.hits),
	}, nil
}

func (m *mockController) Close() error { return nil }

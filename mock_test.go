package agencymatch

import (
	"context"

	"github.com/gtmquest/agencymatch/internal/domain/agency"
	"github.com/gtmquest/agencymatch/internal/domain/match/criteria"
	"github.com/gtmquest/agencymatch/internal/domain/match/result"
	matchuc "github.com/gtmquest/agencymatch/internal/usecase/match"
)

// --- matchUseCase mock ---

type mockMatchUC struct {
	searchFn      func(ctx context.Context, c criteria.Criteria) ([]result.Scored, error)
	searchTermsFn func(ctx context.Context, t matchuc.Terms) ([]result.Scored, error)
}

func (m *mockMatchUC) Search(ctx context.Context, c criteria.Criteria) ([]result.Scored, error) {
	return m.searchFn(ctx, c)
}

func (m *mockMatchUC) SearchTerms(ctx context.Context, t matchuc.Terms) ([]result.Scored, error) {
	return m.searchTermsFn(ctx, t)
}

// --- directoryUseCase mock ---

type mockDirectoryUC struct {
	getFn             func(ctx context.Context, slug string) (agency.Profile, error)
	specializationsFn func(ctx context.Context) ([]string, error)
}

func (m *mockDirectoryUC) Get(ctx context.Context, slug string) (agency.Profile, error) {
	return m.getFn(ctx, slug)
}

func (m *mockDirectoryUC) Specializations(ctx context.Context) ([]string, error) {
	return m.specializationsFn(ctx)
}

// --- closer mock ---

type mockCloser struct {
	name  string
	order *[]string
}

func (m *mockCloser) Close() { *m.order = append(*m.order, m.name) }

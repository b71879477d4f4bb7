package mcp

import (
	"context"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer   domain.Answer
	err      error
	lastTopK int
}

func (m *mockQueryService) Ask(_ context.Context, _ string, topK int) (domain.Answer, error) {
	m.lastTopK = topK
	return m.answer, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	report  driving.BuildReport
	err     error
	lastDir string
}

func (m *mockIndexService) Build(_ context.Context, dataDir string) (driving.BuildReport, error) {
	m.lastDir = dataDir
	return m.report, m.err
}

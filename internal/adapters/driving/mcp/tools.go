package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the documentation"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of documentation fragments to ground the answer on (default 5)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	ChunksUsed int      `json:"chunks_used"`
	ModelUsed  string   `json:"model_used"`
}

// RebuildInput is the input schema for the rebuild_index tool.
type RebuildInput struct {
	DataDir string `json:"data_dir" jsonschema:"directory containing the PDF documentation to index"`
}

// RebuildOutput is the output schema for the rebuild_index tool.
type RebuildOutput struct {
	Documents     int `json:"documents"`
	ChunksIndexed int `json:"chunks_indexed"`
	ChunksSkipped int `json:"chunks_skipped"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the indexed documentation",
	}, s.handleAsk)

	if s.ports.Index != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "rebuild_index",
			Description: "Rebuild the documentation index from a directory of PDF files",
		}, s.handleRebuild)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Query.Ask(ctx, input.Question, input.TopK)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:     answer.Text,
		Sources:    answer.Sources,
		ChunksUsed: answer.ChunksUsed,
		ModelUsed:  answer.Model,
	}, nil
}

// handleRebuild handles the rebuild_index tool invocation.
func (s *Server) handleRebuild(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RebuildInput,
) (*mcp.CallToolResult, RebuildOutput, error) {
	report, err := s.ports.Index.Build(ctx, input.DataDir)
	if err != nil {
		return nil, RebuildOutput{}, err
	}

	return nil, RebuildOutput{
		Documents:     report.Documents,
		ChunksIndexed: report.ChunksIndexed,
		ChunksSkipped: report.ChunksAttempted - report.ChunksIndexed,
	}, nil
}

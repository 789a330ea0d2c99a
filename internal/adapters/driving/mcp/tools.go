package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/askpdf/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to rank pages against"`
	Pages    int    `json:"pages,omitempty" jsonschema:"number of pages to return (default 1)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Pages []PageOutput `json:"pages"`
	Count int          `json:"count"`
}

// PageOutput is one ranked page.
type PageOutput struct {
	Rank  int     `json:"rank"`
	Index int     `json:"index"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// StatusInput is the (empty) input schema for the status tool.
type StatusInput struct{}

// StatusOutput is the output schema for the status tool.
type StatusOutput struct {
	Directory string `json:"directory"`
	IndexPath string `json:"index_path"`
	Backend   string `json:"backend"`
	Files     int    `json:"files"`
	Pages     int    `json:"pages"`
}

// RefreshInput is the (empty) input schema for the refresh tool.
type RefreshInput struct{}

// RefreshOutput is the output schema for the refresh tool.
type RefreshOutput struct {
	Added      []string `json:"added"`
	Skipped    []string `json:"skipped"`
	PagesAdded int      `json:"pages_added"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Return the PDF pages whose text best matches a question, best first",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "status",
		Description: "Report the indexed directory, index location and file and page counts",
	}, s.handleStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh",
		Description: "Extract PDFs added to the directory since the server started",
	}, s.handleRefresh)
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	limit := input.Pages
	if limit <= 0 {
		limit = domain.DefaultPageCount
	}

	s.mu.Lock()
	hits, err := s.ports.Controller.Ask(ctx, input.Question, domain.QueryOptions{Limit: limit})
	s.mu.Unlock()
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Pages: make([]PageOutput, len(hits)),
		Count: len(hits),
	}
	for i := range hits {
		output.Pages[i] = PageOutput{
			Rank:  hits[i].Rank,
			Index: hits[i].Index,
			Score: hits[i].Score,
			Text:  hits[i].Text,
		}
	}
	return nil, output, nil
}

func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	st, err := s.status(ctx)
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{
		Directory: st.Directory,
		IndexPath: st.IndexPath,
		Backend:   st.Backend,
		Files:     st.Files,
		Pages:     st.Pages,
	}, nil
}

func (s *Server) status(ctx context.Context) (*domain.IndexStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ports.Controller.Status(ctx)
}

func (s *Server) handleRefresh(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ RefreshInput,
) (*mcp.CallToolResult, RefreshOutput, error) {
	s.mu.Lock()
	report, err := s.ports.Controller.Refresh(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, RefreshOutput{}, err
	}

	output := RefreshOutput{
		Added:      report.Added,
		Skipped:    make([]string, len(report.Skipped)),
		PagesAdded: report.PagesAdded,
	}
	for i, sk := range report.Skipped {
		output.Skipped[i] = sk.Path + ": " + sk.Reason
	}
	return nil, output, nil
}

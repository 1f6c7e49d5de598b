package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/samber/lo"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// ListGroupsInput is the input schema for the list_groups tool.
type ListGroupsInput struct{}

// ListGroupsOutput is the output schema for the list_groups tool.
type ListGroupsOutput struct {
	Groups []GroupOutput `json:"groups"`
	Count  int           `json:"count"`
}

// GroupOutput describes one company and its datasets.
type GroupOutput struct {
	GroupID  uint32   `json:"group_id"`
	Datasets []string `json:"datasets"`
}

// RefreshGroupInput is the input schema for the refresh_group tool.
type RefreshGroupInput struct {
	GroupID uint32 `json:"group_id" jsonschema:"id of the company whose datasets are refreshed"`
}

// RefreshAllInput is the input schema for the refresh_all tool.
type RefreshAllInput struct{}

// RefreshOutput is the output schema for the refresh tools.
type RefreshOutput struct {
	RunID    string         `json:"run_id,omitempty"`
	Results  []ResultOutput `json:"results"`
	Accepted int            `json:"accepted"`
	Rejected int            `json:"rejected"`
}

// ResultOutput is the outcome of one dataset refresh.
type ResultOutput struct {
	GroupID    uint32 `json:"group_id"`
	DatasetID  string `json:"dataset_id"`
	Accepted   bool   `json:"accepted"`
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_groups",
		Description: "List the companies in the registry with their Power BI dataset ids",
	}, s.handleListGroups)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh_group",
		Description: "Trigger a refresh of every dataset belonging to one company",
	}, s.handleRefreshGroup)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh_all",
		Description: "Trigger a refresh of every dataset of every company",
	}, s.handleRefreshAll)
}

func (s *Server) handleListGroups(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListGroupsInput,
) (*mcp.CallToolResult, ListGroupsOutput, error) {
	registry, err := s.ports.Refresh.Registry(ctx)
	if err != nil {
		return nil, ListGroupsOutput{}, err
	}

	groups := lo.Map(registry.Groups(), func(g domain.ResourceGroup, _ int) GroupOutput {
		return GroupOutput{
			GroupID:  uint32(g.Key),
			Datasets: lo.Ternary(g.Members == nil, []string{}, g.Members),
		}
	})
	return nil, ListGroupsOutput{Groups: groups, Count: len(groups)}, nil
}

func (s *Server) handleRefreshGroup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RefreshGroupInput,
) (*mcp.CallToolResult, RefreshOutput, error) {
	return s.refresh(ctx, domain.SingleGroup(domain.GroupKey(input.GroupID)))
}

func (s *Server) handleRefreshAll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ RefreshAllInput,
) (*mcp.CallToolResult, RefreshOutput, error) {
	return s.refresh(ctx, domain.AllGroups())
}

func (s *Server) refresh(ctx context.Context, mode domain.DispatchMode) (*mcp.CallToolResult, RefreshOutput, error) {
	results, err := s.ports.Refresh.Refresh(ctx, mode, nil)
	if err != nil {
		return nil, RefreshOutput{}, err
	}

	output := RefreshOutput{
		Results: lo.Map(results, func(r domain.RefreshResult, _ int) ResultOutput {
			return ResultOutput{
				GroupID:    uint32(r.GroupKey),
				DatasetID:  r.ResourceID,
				Accepted:   r.Outcome.Succeeded(),
				StatusCode: r.Outcome.StatusCode,
				Detail:     r.Outcome.Detail,
			}
		}),
	}
	output.Accepted = lo.CountBy(results, func(r domain.RefreshResult) bool { return r.Outcome.Succeeded() })
	output.Rejected = len(results) - output.Accepted
	if len(results) > 0 {
		output.RunID = results[0].RunID
	}
	return nil, output, nil
}

package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/rpggio/labcoats/internal/domain/material"
)

// GenerateActivityInput is the argument of generate_activity.
type GenerateActivityInput struct {
	Materials []string `json:"materials" jsonschema:"household material names, e.g. Balloon or Tape"`
}

// ListMaterialsInput is the (empty) argument of list_materials.
type ListMaterialsInput struct{}

// ListMaterialsOutput wraps the catalog; tool output must be an object.
type ListMaterialsOutput struct {
	Materials []material.Material `json:"materials"`
}

func registerTools(server *sdkmcp.Server, activities ActivityService) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "generate_activity",
		Description: "Create one hands-on STEM activity for kids ages 5-12 from the given household materials",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GenerateActivityInput) (*sdkmcp.CallToolResult, activity.Activity, error) {
		result, err := activities.Generate(ctx, activity.Request{
			Materials: in.Materials,
			RequestID: getRequestID(ctx),
		})
		if err != nil {
			if apiErr := MapError(err); apiErr != nil {
				return nil, activity.Activity{}, apiErr
			}
			return nil, activity.Activity{}, err
		}
		return nil, result.Activity, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_materials",
		Description: "List the household materials a user can pick from",
	}, func(_ context.Context, _ *sdkmcp.CallToolRequest, _ ListMaterialsInput) (*sdkmcp.CallToolResult, ListMaterialsOutput, error) {
		return nil, ListMaterialsOutput{Materials: material.Catalog()}, nil
	})
}

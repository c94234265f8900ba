package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/rpggio/labcoats/internal/domain/material"
	"github.com/rpggio/labcoats/internal/repository/mocks"
)

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

func newSession(t *testing.T, gen activity.Generator) *sdkmcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	svc := activity.NewService(activity.Config{
		Generator: gen,
		Selector:  activity.NewFallbackSelector(fixedRand(0)),
	})
	server := NewServer(Config{Activities: svc, TransportMode: "stdio"})

	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Close()
	})
	return session
}

func textOf(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			return text.Text
		}
	}
	t.Fatalf("no text content in result")
	return ""
}

func TestGenerateActivityTool_Fallback(t *testing.T) {
	gen := &mocks.Generator{}
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("boom"))
	session := newSession(t, gen)

	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "generate_activity",
		Arguments: map[string]any{"materials": []string{"Tape", "Yarn", "Glue", "Balloon"}},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var act activity.Activity
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &act))
	require.Equal(t, "Tower Challenge", act.Name)
	require.Equal(t, []string{"Tape", "Yarn", "Glue"}, act.Materials)
}

func TestGenerateActivityTool_NoMaterials(t *testing.T) {
	gen := &mocks.Generator{}
	session := newSession(t, gen)

	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "generate_activity",
		Arguments: map[string]any{"materials": []string{}},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, textOf(t, result), activity.NoMaterialsMessage)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestListMaterialsTool(t *testing.T) {
	session := newSession(t, &mocks.Generator{})

	result, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "list_materials",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out ListMaterialsOutput
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &out))
	require.Equal(t, material.Catalog(), out.Materials)
}

func TestActivityFormatResource(t *testing.T) {
	session := newSession(t, &mocks.Generator{})

	res, err := session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "labcoats://docs/activity-format"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "learning_goal")
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(errors.New("other")))

	apiErr := MapError(activity.ErrInvalidInput)
	require.NotNil(t, apiErr)
	require.Equal(t, "NO_MATERIALS", apiErr.Code)
}

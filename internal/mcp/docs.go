package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `labcoats suggests hands-on STEM activities for kids ages 5-12 from household materials.

Workflow:
1) Call list_materials to see the pickable materials (id, name, icon).
2) Call generate_activity with one or more material names, e.g. {"materials": ["Balloon", "Tape"]}.
3) Show the returned activity to the grown-up: name, time estimate, materials, steps, parent tip, learning goal.

Notes:
- An empty material list is an error ("No materials provided").
- If the idea generator is unavailable, a built-in activity is returned instead; it is still a complete activity.
- Saving activities is up to the client; the server keeps no state.

Docs:
- labcoats://docs/activity-format (fields and constraints of an activity)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "labcoats://docs/activity-format",
		Name:        "activity_format",
		Title:       "Activity format",
		Description: "Fields of a generated activity and the guarantees each one carries.",
		Content: `# Activity format

Every activity returned by generate_activity (or POST /api/generate-project) has exactly these fields:

| Field | Type | Notes |
|---|---|---|
| name | string | Short, fun title |
| time_estimate | string | Between 15 minutes and 2 hours, e.g. "30 minutes" |
| materials | string[] | Drawn from the requested materials, never empty |
| instructions | string[] | 4 to 8 numbered-in-order steps a child can follow with an adult |
| parent_tip | string | One practical tip for the supervising adult |
| learning_goal | string | The concept the activity teaches, e.g. "Air pressure and propulsion" |

## Built-in activities

When the idea generator fails or answers with something unusable, one of five built-in activities is
returned instead: Tower Challenge, Color Mixing, Balance Experiment, Catapult, Floating Challenge.
Their materials list the first three or four requested materials.

## Saving

Clients keep saved activities locally as a JSON array of activities, oldest first. Duplicates are allowed.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}

package transport_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/rpggio/labcoats/internal/domain/material"
	"github.com/rpggio/labcoats/internal/testserver"
	"github.com/rpggio/labcoats/internal/transport"
)

const generatedJSON = `Here is your activity:
{
  "name": "Balloon Rocket",
  "time_estimate": "30 minutes",
  "materials": ["Balloon", "Tape", "Yarn"],
  "instructions": [
    "Tie the yarn between two chairs.",
    "Tape a straw to the balloon.",
    "Blow up the balloon and hold the end.",
    "Let go and watch it zoom along the yarn!"
  ],
  "parent_tip": "Ask them to guess which balloon size goes farthest.",
  "learning_goal": "Newton's third law of motion"
}`

func postGenerate(t *testing.T, ts *testserver.TestServer, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(ts.Server.URL+"/api/generate-project", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestGenerate_Success(t *testing.T) {
	ts := testserver.New(t, &testserver.ScriptedGenerator{Response: generatedJSON})

	resp, data := postGenerate(t, ts, `{"materials":["Balloon","Tape","Yarn"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NotEmpty(t, resp.Header.Get(transport.RequestIDHeader))

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	require.Len(t, fields, 6)
	for _, key := range []string{"name", "time_estimate", "materials", "instructions", "parent_tip", "learning_goal"} {
		require.Contains(t, fields, key)
	}

	var act activity.Activity
	require.NoError(t, json.Unmarshal(data, &act))
	require.Equal(t, "Balloon Rocket", act.Name)
	require.GreaterOrEqual(t, len(act.Instructions), activity.MinInstructions)
	require.LessOrEqual(t, len(act.Instructions), activity.MaxInstructions)

	reqs := ts.Generator.Requests()
	require.Len(t, reqs, 1)
	require.Contains(t, reqs[0].Prompt, "Balloon, Tape, Yarn")
}

func TestGenerate_NoMaterials(t *testing.T) {
	ts := testserver.New(t, &testserver.ScriptedGenerator{Response: generatedJSON})

	bodies := []string{
		`{"materials":[]}`,
		`{}`,
		`{"materials":["  ", ""]}`,
		`not json`,
		`{"materials":"Tape"}`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			resp, data := postGenerate(t, ts, body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			require.JSONEq(t, `{"error":"No materials provided"}`, string(data))
		})
	}
	require.Empty(t, ts.Generator.Requests())
}

func TestGenerate_UpstreamErrorFallsBack(t *testing.T) {
	ts := testserver.New(t,
		&testserver.ScriptedGenerator{Err: errors.New("connection refused")},
		testserver.WithRand(testserver.FixedRand(3)),
	)

	resp, data := postGenerate(t, ts, `{"materials":["Tape","Yarn","Glue","Balloon","Markers"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var act activity.Activity
	require.NoError(t, json.Unmarshal(data, &act))
	require.Equal(t, "Catapult", act.Name)
	require.Equal(t, []string{"Tape", "Yarn", "Glue", "Balloon"}, act.Materials)
	require.NotContains(t, string(data), "connection refused")
}

func TestGenerate_MalformedResponseFallsBack(t *testing.T) {
	ts := testserver.New(t, &testserver.ScriptedGenerator{Response: "Sorry, I can't help with that."})

	resp, data := postGenerate(t, ts, `{"materials":["Scissors","Balloon","Glue"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var act activity.Activity
	require.NoError(t, json.Unmarshal(data, &act))
	require.Contains(t, activity.FallbackNames(), act.Name)
	require.Equal(t, []string{"Scissors", "Balloon", "Glue"}, act.Materials)
	require.NoError(t, activity.Validate(act))
}

func TestMaterials(t *testing.T) {
	ts := testserver.New(t, nil)

	resp, err := http.Get(ts.Server.URL + "/api/materials")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []material.Material
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, material.Catalog(), got)
}

func TestHealth(t *testing.T) {
	ts := testserver.New(t, nil)

	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	ts := testserver.New(t, &testserver.ScriptedGenerator{Response: generatedJSON})
	postGenerate(t, ts, `{"materials":["Tape"]}`)

	resp, err := http.Get(ts.Server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "labcoats_http_requests_total"))
}

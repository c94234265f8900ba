package client

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/rpggio/labcoats/internal/domain/material"
)

func TestTerminal_Session(t *testing.T) {
	api := &stubAPI{acts: []activity.Activity{sampleActivity("Yarn Zipline")}}
	s := newTestSession(api)
	var out bytes.Buffer
	term := NewTerminal(s, material.Catalog(), &out)

	script := strings.Join([]string{
		"generate",
		"toggle yarn",
		"toggle tape",
		"generate",
		"save",
		"saved",
		"bogus",
		"quit",
		"generate",
	}, "\n")
	require.NoError(t, term.Run(context.Background(), strings.NewReader(script)))

	text := out.String()
	require.Contains(t, text, MsgNoMaterials)
	require.Contains(t, text, "Yarn Zipline")
	require.Contains(t, text, "saved!")
	require.Contains(t, text, "Saved experiments: 1")
	require.Contains(t, text, `unknown command "bogus"`)
	require.Equal(t, 1, api.calls)
	require.Equal(t, []string{"Yarn", "Tape"}, api.names)
}

func TestTerminal_EOF(t *testing.T) {
	s := newTestSession(&stubAPI{})
	var out bytes.Buffer
	term := NewTerminal(s, material.Catalog(), &out)

	require.NoError(t, term.Run(context.Background(), strings.NewReader("list")))
	require.Contains(t, out.String(), "Toilet Paper Roll")
}

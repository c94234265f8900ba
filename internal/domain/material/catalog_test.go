package material_test

import (
	"testing"

	"github.com/rpggio/labcoats/internal/domain/material"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	list := material.Catalog()
	require.Len(t, list, 9)
	require.Equal(t, "scissors", list[0].ID)
	require.Equal(t, "Plastic Bottle", list[8].Name)

	list[0].Name = "changed"
	require.Equal(t, "Scissors", material.Catalog()[0].Name)
}

func TestResolveNames(t *testing.T) {
	names := material.ResolveNames([]string{"glue", "unknown", "toilet-paper-roll", "scissors"})
	require.Equal(t, []string{"Glue", "Toilet Paper Roll", "Scissors"}, names)
	require.Empty(t, material.ResolveNames(nil))
}

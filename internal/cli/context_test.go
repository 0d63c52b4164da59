package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCLIFromContext(t *testing.T) {
	_, err := GetCLIFromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoCLI)

	c := &CLI{ConfigPath: "/tmp/x.yaml"}
	got, err := GetCLIFromContext(WithCLI(context.Background(), c))
	require.NoError(t, err)
	assert.Same(t, c, got)
}

func TestNeedsDatabase(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	cfg := &cobra.Command{Use: "config", Annotations: map[string]string{SkipDatabase: "true"}}
	show := &cobra.Command{Use: "show"}
	list := &cobra.Command{Use: "list"}
	cfg.AddCommand(show)
	root.AddCommand(cfg, list)

	assert.False(t, NeedsDatabase(show))
	assert.False(t, NeedsDatabase(cfg))
	assert.True(t, NeedsDatabase(list))
}

func TestCLI_CloseWithoutDatabase(t *testing.T) {
	assert.NoError(t, (&CLI{}).Close())
}

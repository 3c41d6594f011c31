package root_test

import (
	"testing"

	"finanzas/txform/cmd/root"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "txform", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "CLI tool to compose and submit transactions")
	assert.Contains(t, root.Cmd.Long, "transaction entry engine")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()

	apiFlag := root.Cmd.PersistentFlags().Lookup("api")
	assert.NotNil(t, apiFlag)
	assert.Empty(t, apiFlag.DefValue)
}

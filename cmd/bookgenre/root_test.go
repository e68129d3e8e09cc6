package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()

	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}

	assert.True(t, names["run"])
	assert.True(t, names["classify"])
	assert.True(t, names["serve"])
}

func TestClassifyCommandRequiresArgs(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"classify"})

	err := root.Execute()
	require.Error(t, err)
}

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestCategoriesCmd(t *testing.T) {
	cmd := categoriesCmd()
	assert.NotNil(t, cmd)

	names := make(map[string]*cobra.Command)
	for _, subcmd := range cmd.Commands() {
		names[subcmd.Name()] = subcmd
	}

	assert.Contains(t, names, "list")
	assert.Contains(t, names, "add")
	assert.Contains(t, names, "delete")
}

func TestAddCategoryCmd_Flags(t *testing.T) {
	cmd := addCategoryCmd()

	typeFlag := cmd.Flag("type")
	assert.NotNil(t, typeFlag, "type flag should exist")
	assert.Equal(t, "expense", typeFlag.DefValue)

	iconFlag := cmd.Flag("icon")
	assert.NotNil(t, iconFlag, "icon flag should exist")
	assert.Equal(t, "Category", iconFlag.DefValue)
}

func TestParseMonth(t *testing.T) {
	month, err := parseMonth("2024-03")
	assert.NoError(t, err)
	assert.Equal(t, 2024, month.Year())
	assert.Equal(t, "March", month.Month().String())

	_, err = parseMonth("03/2024")
	assert.Error(t, err)

	now, err := parseMonth("")
	assert.NoError(t, err)
	assert.False(t, now.IsZero())
}

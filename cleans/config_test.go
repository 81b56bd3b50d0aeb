package main

import (
	"testing"

	"github.com/gammadia/cargo-cleans/cleans/flags"
	"github.com/gammadia/cargo-cleans/store"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config {
	return config{RootDir: ".", Jobs: 1, DeleteAttempts: 1, Output: "text"}
}

func TestLoadConfigConvertsKeepSize(t *testing.T) {
	v := viper.New()
	v.Set(flags.RootDir, "/work")
	v.Set(flags.KeepDays, 7)
	v.Set(flags.KeepSize, 5)
	v.Set(flags.Jobs, 8)
	v.Set(flags.DeleteAttempts, 3)
	v.Set(flags.Output, "text")

	c, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, store.Policy{KeepDays: 7, KeepSize: 5 * 1024 * 1024}, c.Policy)
	assert.Equal(t, "/work", c.RootDir)
	assert.Equal(t, 8, c.Jobs)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validate(validConfig()))

	c := validConfig()
	c.RootDir = ""
	assert.EqualError(t, validate(c), "root-dir must not be empty")

	c = validConfig()
	c.DeleteAttempts = 0
	assert.EqualError(t, validate(c), "delete-attempts must be greater than 0")

	c = validConfig()
	c.Output = "json"
	assert.EqualError(t, validate(c), "unknown output format 'json'")

	c = validConfig()
	c.Output = "yaml"
	c.Format = "{{.Path}}"
	assert.EqualError(t, validate(c), "format cannot be combined with output 'yaml'")

	c = validConfig()
	c.PrintCommands = true
	assert.EqualError(t, validate(c), "print-commands requires dry-run")
}

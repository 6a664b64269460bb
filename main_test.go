package main

import (
	"bytes"
	"testing"
	"time"

	"libreader/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setFlags(t *testing.T) {
	t.Helper()
	region, userID, password, lists = "nakano", "0012345", "pw", "all"
	outputFormat, timeout, logLevel = "text", time.Minute, "info"
}

func TestValidateFlags(t *testing.T) {
	setFlags(t)
	wanted, err := validateFlags()
	require.NoError(t, err)
	assert.Equal(t, scraper.AllLists, wanted)

	lists = "loans"
	wanted, err = validateFlags()
	require.NoError(t, err)
	assert.Equal(t, []scraper.List{scraper.ListLoans}, wanted)
}

func TestValidateFlagsRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func()
	}{
		{"unknown region", func() { region = "atlantis" }},
		{"blank user", func() { userID = "  " }},
		{"no password", func() { password = "" }},
		{"bad format", func() { outputFormat = "yaml" }},
		{"bad list", func() { lists = "history" }},
		{"zero timeout", func() { timeout = 0 }},
		{"bad log level", func() { logLevel = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setFlags(t)
			tt.mutate()
			_, err := validateFlags()
			assert.Error(t, err)
		})
	}
}

func TestRegionsCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRegionsCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "minato")
	assert.Contains(t, out.String(), "suginami")
	assert.Equal(t, []string{"minato", "nakano", "nerima", "suginami"}, regionCodes())
}

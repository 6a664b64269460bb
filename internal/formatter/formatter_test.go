package formatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContent struct{ err error }

func (s stubContent) ToHTML() (string, error)     { return "html", s.err }
func (s stubContent) ToText() (string, error)     { return "text", s.err }
func (s stubContent) ToMarkdown() (string, error) { return "markdown", s.err }
func (s stubContent) ToJSON() ([]byte, error)     { return []byte(`{"json":true}`), s.err }
func (s stubContent) ToCSV() (string, error)      { return "csv", s.err }

func TestFormatDispatch(t *testing.T) {
	want := map[string]string{
		"html":     "html",
		"text":     "text",
		"markdown": "markdown",
		"csv":      "csv",
		"json":     `{"json":true}`,
	}
	for _, f := range Formats {
		got, err := Format(stubContent{}, f)
		require.NoError(t, err, f)
		assert.Equal(t, want[f], got, f)
	}
}

func TestFormatErrors(t *testing.T) {
	_, err := Format(stubContent{}, "yaml")
	assert.EqualError(t, err, "unsupported output format: yaml")

	boom := errors.New("boom")
	_, err = Format(stubContent{err: boom}, "json")
	assert.ErrorIs(t, err, boom)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("markdown"))
	assert.False(t, Valid("md"))
	assert.False(t, Valid(""))
}

func TestFromExtension(t *testing.T) {
	tests := map[string]string{
		"out.md":       "markdown",
		"OUT.MARKDOWN": "markdown",
		"loans.json":   "json",
		"page.htm":     "html",
		"a/b/c.csv":    "csv",
		"notes.txt":    "text",
		"archive.zip":  "",
		"noext":        "",
	}
	for name, want := range tests {
		assert.Equal(t, want, FromExtension(name), name)
	}
}

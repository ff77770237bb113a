package convert

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertBasicMarkup(t *testing.T) {
	conv := NewConverter()

	got, err := conv.Convert(`<h1>About discounts</h1><p>Hello <strong>world</strong>, see <a href="https://example.com/docs">the docs</a>.</p>`)
	require.NoError(t, err)

	assert.Contains(t, got, "# About discounts")
	assert.Contains(t, got, "**world**")
	assert.Contains(t, got, "[the docs](https://example.com/docs)")
}

func TestConvertUnwrapsConfluenceLayout(t *testing.T) {
	conv := NewConverter()

	plain := `<h2>Install</h2><p>Run the installer.</p><ul><li>Step one</li><li>Step two</li></ul>`
	wrapped := `<div class="contentLayout2"><div class="columnLayout"><div class="cell"><div class="innerCell">` +
		plain + `</div></div></div></div>`

	fromPlain, err := conv.Convert(plain)
	require.NoError(t, err)
	fromWrapped, err := conv.Convert(wrapped)
	require.NoError(t, err)

	assert.Equal(t, fromPlain, fromWrapped)
}

func TestConvertEmptyInput(t *testing.T) {
	conv := NewConverter()

	for _, input := range []string{"", "   ", "\n\t"} {
		got, err := conv.Convert(input)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestConvertToleratesBrokenHTML(t *testing.T) {
	conv := NewConverter()

	inputs := []string{
		"<div><p>unclosed paragraph",
		"<ac:structured-macro ac:name=\"info\"><ac:rich-text-body><p>macro body</p></ac:rich-text-body></ac:structured-macro>",
		"just text, no tags",
		"<table><tr><td>lonely cell",
	}
	for _, input := range inputs {
		_, err := conv.Convert(input)
		require.NoError(t, err, "input %q must degrade, not fail", input)
	}
}

func TestConvertIsDeterministic(t *testing.T) {
	conv := NewConverter()
	input := `<h1>Title</h1><div class="cell"><p>Body with <em>emphasis</em>.</p></div>`

	first, err := conv.Convert(input)
	require.NoError(t, err)
	second, err := conv.Convert(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestConvertStripsTrailingWhitespace(t *testing.T) {
	conv := NewConverter()

	got, err := conv.Convert("<h2>Heading</h2><p>line one</p><p>line two</p>")
	require.NoError(t, err)
	assert.NotRegexp(t, `[ \t]\n`, got+"\n")
	assert.Equal(t, strings.TrimSpace(got), got)
}

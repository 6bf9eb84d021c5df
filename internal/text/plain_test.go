package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Hello world", StripHTML("<p>Hello <b>world</b></p>"))
	assert.Equal(t, "plain text", StripHTML("plain text"))
	assert.Equal(t, "", StripHTML(""))
	assert.Equal(t, "one two", StripHTML("<div>one</div>\n\n  <div>two</div>"))
}

func TestStripHTMLDropsScriptAndStyle(t *testing.T) {
	out := StripHTML(`<p>visible</p><script>alert("x")</script><style>.a{}</style>`)
	assert.Equal(t, "visible", out)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg", Truncate("abcdefg", 7))
	assert.Equal(t, "abcd...", Truncate("abcdefgh", 7))
	assert.Equal(t, "ab", Truncate("abcdefgh", 2))
}

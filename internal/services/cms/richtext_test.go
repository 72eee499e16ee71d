package cms

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeAny(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{
			name: "blocks keep only paragraphs",
			input: `[{"type":"paragraph","children":[{"type":"text","text":"a"},{"type":"link","children":[{"type":"text","text":"b"}]}]},
			         {"type":"list","children":[{"type":"text","text":"x"}]},
			         {"type":"paragraph","children":[]}]`,
			want: []string{"ab"},
		},
		{
			name:  "html paragraphs",
			input: "<p>One <em>two</em></p>\n<ul><li>three</li></ul>",
			want:  []string{"One two", "three"},
		},
		{
			name:  "html without block tags",
			input: "<span>just text</span>",
			want:  []string{"just text"},
		},
		{
			name:  "plain text split on blank lines",
			input: "first\n\nsecond\n",
			want:  []string{"first", "second"},
		},
		{name: "nil", input: nil, want: nil},
		{name: "blank string", input: "   ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			if s, ok := input.(string); ok && strings.HasPrefix(strings.TrimSpace(s), "[") {
				input = decodeAny(t, s)
			}
			assert.Equal(t, tt.want, Paragraphs(input))
		})
	}
}

func TestFirstText(t *testing.T) {
	assert.Equal(t, "hello", FirstText(decodeAny(t, `[{"type":"paragraph","children":[{"type":"text","text":"hello"},{"type":"text","text":" world"}]}]`)))
	assert.Equal(t, "", FirstText(decodeAny(t, `[]`)))
	assert.Equal(t, "", FirstText(decodeAny(t, `[{"type":"paragraph"}]`)))
	assert.Equal(t, "plain", FirstText(" plain "))
	assert.Equal(t, "", FirstText(nil))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "", Excerpt(nil, 10))
	assert.Equal(t, "short", Excerpt([]string{"short", "ignored"}, 10))
	assert.Equal(t, "one two…", Excerpt([]string{"one two three"}, 9))

	arabic := strings.Repeat("قانون ", 10)
	got := Excerpt([]string{arabic}, 12)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), 13)
}

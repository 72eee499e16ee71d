package cms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten_FlatFieldsWin(t *testing.T) {
	r := flatten(map[string]any{
		"id":    float64(1),
		"title": "flat",
		"slug":  nil,
		"attributes": map[string]any{
			"title": "wrapped",
			"slug":  "from-attributes",
		},
	})

	assert.Equal(t, 1, r.integer("id"))
	assert.Equal(t, "flat", r.str("title"))
	assert.Equal(t, "from-attributes", r.str("slug"))
	_, hasAttrs := r["attributes"]
	assert.False(t, hasAttrs)
}

func TestDecodeRecords(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    int
		wantErr bool
	}{
		{name: "list", data: `[{"id":1},{"id":2},null]`, want: 2},
		{name: "single object", data: `{"id":1}`, want: 1},
		{name: "null", data: `null`, want: 0},
		{name: "empty", data: ``, want: 0},
		{name: "garbage", data: `[1,2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := decodeRecords(json.RawMessage(tt.data))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidResponse)
				return
			}
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
		})
	}
}

func TestMediaList(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{name: "flat", json: `{"url":"/a.jpg"}`, want: []string{"/a.jpg"}},
		{name: "wrapped single", json: `{"data":{"id":1,"attributes":{"url":"/b.jpg"}}}`, want: []string{"/b.jpg"}},
		{name: "wrapped list", json: `{"data":[{"attributes":{"url":"/c.jpg"}},{"attributes":{"url":"/d.jpg"}}]}`, want: []string{"/c.jpg", "/d.jpg"}},
		{name: "plain list", json: `[{"url":"/e.jpg"}]`, want: []string{"/e.jpg"}},
		{name: "wrapped null", json: `{"data":null}`, want: nil},
		{name: "missing url", json: `{"name":"x"}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v any
			require.NoError(t, json.Unmarshal([]byte(tt.json), &v))

			var got []string
			for _, m := range mediaList(v) {
				got = append(got, m.URL)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizer_Absolute(t *testing.T) {
	n := normalizer{mediaBaseURL: "http://cms.test/"}

	assert.Equal(t, "http://cms.test/uploads/x.jpg", n.absolute("/uploads/x.jpg"))
	assert.Equal(t, "https://cdn.test/x.jpg", n.absolute("https://cdn.test/x.jpg"))
	assert.Equal(t, "", n.absolute(""))
}

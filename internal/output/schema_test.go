package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSchema(&buf, ""))
	doc := buf.String()
	require.True(t, gjson.Valid(doc))

	assert.Equal(t, "aeoscore report", gjson.Get(doc, "title").String())
	assert.Equal(t, "string", gjson.Get(doc, "properties.header.properties.tool.type").String())
	assert.Equal(t, "array", gjson.Get(doc, "properties.results.type").String())

	result := gjson.Get(doc, "properties.results.items.properties")
	for _, field := range []string{"overall", "scores", "reliability", "why", "actionLine", "checklist", "diff"} {
		assert.True(t, result.Get(field).Exists(), "result schema missing %s", field)
	}
	assert.True(t, result.Get("diff.properties.interpretation").Exists())
	assert.False(t, result.Get("Facts").Exists())
}

func TestWriteSchema_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, WriteSchema(nil, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, gjson.ValidBytes(data))
}

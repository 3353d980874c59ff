package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dotcommander/aeoscore/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJSONFormatter(indent bool, outputFile string, buf *bytes.Buffer) *JSONFormatter {
	f := NewJSONFormatter(indent, outputFile)
	f.out = buf
	f.now = func() time.Time { return fixedTime }
	return f
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	f := newTestJSONFormatter(true, "", &buf)

	require.NoError(t, f.Format([]*report.Report{fullReport(), partialReport()}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	header := doc["header"].(map[string]any)
	assert.Equal(t, ToolName, header["tool"])
	assert.Equal(t, ToolVersion, header["version"])
	assert.Equal(t, "2026-03-01T12:00:00Z", header["timestamp"])

	results := doc["results"].([]any)
	require.Len(t, results, 2)

	full := results[0].(map[string]any)
	assert.Equal(t, "page.html", full["file"])
	assert.Equal(t, float64(81), full["overall"])
	assert.Equal(t, "entry-1", full["entryId"])
	assert.Equal(t, "high", full["reliability"].(map[string]any)["level"])
	assert.Equal(t, "restructuring, verify intent", full["diff"].(map[string]any)["interpretation"])
	assert.Equal(t, []any{"H1 present"}, full["diff"].(map[string]any)["added"])

	scores := full["scores"].(map[string]any)
	assert.Equal(t, float64(90), scores["branding"].(map[string]any)["score"])

	partial := results[1].(map[string]any)
	assert.Equal(t, float64(30), partial["overall"], "one measured slot is its own overall")
	assert.Nil(t, partial["scores"].(map[string]any)["branding"], "unmeasured slot serializes as null")
	assert.Equal(t, "no previous snapshot", partial["diff"].(map[string]any)["interpretation"])
}

func TestJSONFormatter_NoMeasuredSlot(t *testing.T) {
	var buf bytes.Buffer
	f := newTestJSONFormatter(false, "", &buf)
	require.NoError(t, f.Format([]*report.Report{unmeasuredReport()}))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	result := doc["results"].([]any)[0].(map[string]any)

	overall, present := result["overall"]
	assert.True(t, present, "overall is always written")
	assert.Nil(t, overall)
	assert.Equal(t, "low", result["reliability"].(map[string]any)["level"])
}

func TestJSONFormatter_Compact(t *testing.T) {
	var buf bytes.Buffer
	f := newTestJSONFormatter(false, "", &buf)

	require.NoError(t, f.Format(nil))
	assert.Equal(t, `{"header":{"tool":"aeoscore","version":"`+ToolVersion+`","timestamp":"2026-03-01T12:00:00Z"},"results":[]}`+"\n", buf.String())
}

func TestJSONFormatter_OutputFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "report.json")
	f := newTestJSONFormatter(true, path, &buf)

	require.NoError(t, f.Format([]*report.Report{fullReport()}))
	assert.Empty(t, buf.String(), "nothing goes to stdout when writing a file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
	assert.Contains(t, string(data), `"page.html"`)
}

func TestJSONFormatter_OutputFileError(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "missing", "report.json")
	f := newTestJSONFormatter(false, path, &buf)

	err := f.Format([]*report.Report{fullReport()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error writing to file")
}

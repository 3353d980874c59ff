package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dotcommander/aeoscore/internal/config"
	"github.com/dotcommander/aeoscore/internal/git"
	"github.com/dotcommander/aeoscore/internal/share"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `---
brand: Acme
url: https://acme.com/widgets
---
<h1>Acme widgets</h1>
<p><strong>Acme</strong> builds widgets.</p>
`

// captureStdout runs fn with os.Stdout redirected and returns what it printed.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	runErr := fn()
	w.Close()
	os.Stdout = old
	return <-done, runErr
}

// useSQLiteHistory points the store at a fresh database for one test.
func useSQLiteHistory(t *testing.T) {
	t.Helper()
	t.Setenv("AEOSCORE_STORE_BACKEND", "sqlite")
	t.Setenv("AEOSCORE_STORE_PATH", filepath.Join(t.TempDir(), "history.db"))
}

func resetAnalyzeFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		analyzeBrand, analyzeURL, analyzeText, analyzeNoSave = "", "", "", false
		analyzeStaged, analyzeChanged = false, false
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCollectSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.html", "<p>a</p>")
	writeFile(t, dir, "b.html", "<p>b</p>")

	t.Run("files", func(t *testing.T) {
		got, err := collectSources([]string{filepath.Join(dir, "*.html")}, "ignored", strings.NewReader("ignored"))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "<p>a</p>", got[0].content)
	})

	t.Run("no matches", func(t *testing.T) {
		_, err := collectSources([]string{filepath.Join(dir, "*.md")}, "", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no files matched")
	})

	t.Run("missing plain path", func(t *testing.T) {
		_, err := collectSources([]string{filepath.Join(dir, "nope.html")}, "", nil)
		require.Error(t, err)
	})

	t.Run("text", func(t *testing.T) {
		got, err := collectSources(nil, "<p>t</p>", strings.NewReader("stdin"))
		require.NoError(t, err)
		assert.Equal(t, []source{{name: "<text>", content: "<p>t</p>"}}, got)
	})

	t.Run("stdin", func(t *testing.T) {
		got, err := collectSources(nil, "", strings.NewReader("<p>s</p>"))
		require.NoError(t, err)
		assert.Equal(t, []source{{content: "<p>s</p>"}}, got)
		assert.Equal(t, "<stdin>", displaySource(got[0]))
	})
}

func TestBuildInput(t *testing.T) {
	src := source{name: "p.html", content: samplePage}

	in, err := buildInput(src, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Acme", in.Brand)
	assert.Equal(t, "https://acme.com/widgets", in.URL)
	assert.True(t, strings.HasPrefix(in.Text, "<h1>"))

	in, err = buildInput(src, "Other", "https://other.io")
	require.NoError(t, err)
	assert.Equal(t, "Other", in.Brand, "flags win over front matter")
	assert.Equal(t, "https://other.io", in.URL)

	_, err = buildInput(source{content: "---\n: [bad\n---\nbody"}, "", "")
	assert.Error(t, err)
}

func TestRunAnalyze_JSON(t *testing.T) {
	useSQLiteHistory(t)
	resetAnalyzeFlags(t)
	t.Setenv("AEOSCORE_FORMAT", "json")

	page := writeFile(t, t.TempDir(), "page.html", samplePage)

	out, err := captureStdout(t, func() error { return runAnalyze([]string{page}) })
	require.NoError(t, err)

	var doc struct {
		Results []struct {
			File        string `json:"file"`
			Brand       string `json:"brand"`
			Saved       bool   `json:"saved"`
			Reliability struct {
				Level string `json:"level"`
			} `json:"reliability"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Results, 1)
	assert.Equal(t, page, doc.Results[0].File)
	assert.Equal(t, "Acme", doc.Results[0].Brand)
	assert.True(t, doc.Results[0].Saved)
	assert.Equal(t, "high", doc.Results[0].Reliability.Level)
}

func TestRunAnalyze_BatchKeepsDocumentsApart(t *testing.T) {
	useSQLiteHistory(t)
	resetAnalyzeFlags(t)
	t.Setenv("AEOSCORE_FORMAT", "json")

	dir := t.TempDir()
	a := writeFile(t, dir, "a.html", "<h1>A</h1><h2>x</h2><h2>y</h2><ul><li>a</li></ul><p>short</p>")
	b := writeFile(t, dir, "b.html", "<p>other doc</p>")

	out, err := captureStdout(t, func() error { return runAnalyze([]string{filepath.Join(dir, "*.html")}) })
	require.NoError(t, err)

	var doc struct {
		Results []struct {
			Diff struct {
				HasPrevious    bool   `json:"hasPrevious"`
				Interpretation string `json:"interpretation"`
			} `json:"diff"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Results, 2)
	for _, r := range doc.Results {
		assert.False(t, r.Diff.HasPrevious)
		assert.Equal(t, "no previous snapshot", r.Diff.Interpretation)
	}

	var buf bytes.Buffer
	require.NoError(t, runHistoryList(a, &buf))
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 1)

	buf.Reset()
	require.NoError(t, runHistoryList(b, &buf))
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 1)

	buf.Reset()
	require.NoError(t, runHistoryList("", &buf))
	assert.Contains(t, buf.String(), "No evidence history yet")
}

func TestHistoryWorkflow(t *testing.T) {
	useSQLiteHistory(t)
	resetAnalyzeFlags(t)
	t.Setenv("AEOSCORE_QUIET", "true")

	var buf bytes.Buffer
	require.NoError(t, runHistoryList("", &buf))
	assert.Contains(t, buf.String(), "No evidence history yet")

	analyzeText = "<h1>X</h1><p>short</p>"
	_, err := captureStdout(t, func() error { return runAnalyze(nil) })
	require.NoError(t, err)

	analyzeText = "<h1>X</h1><h2>A</h2><h2>B</h2><ul><li>a</li></ul><p>short</p>"
	_, err = captureStdout(t, func() error { return runAnalyze(nil) })
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, runHistoryList("", &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "*"), "newest entry is current")
	firstID := strings.Fields(lines[0])[0]

	buf.Reset()
	require.NoError(t, runDiff("", "", "", &buf))
	assert.Contains(t, buf.String(), "Interpretation: regressing")
	assert.Contains(t, buf.String(), "- H2 heading absent")

	buf.Reset()
	require.NoError(t, runHistoryUse("", firstID, &buf))
	assert.Contains(t, buf.String(), firstID)

	buf.Reset()
	require.NoError(t, runDiff("", "", "", &buf))
	assert.Contains(t, buf.String(), "Interpretation: no previous snapshot")

	assert.Error(t, runHistoryUse("", "missing", &buf))
	assert.Error(t, runDiff("", "missing", "", &buf))
}

func TestRunDiff_EmptyHistory(t *testing.T) {
	useSQLiteHistory(t)

	err := runDiff("", "", "", io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evidence history is empty")
}

func TestRunE_ReportsErrors(t *testing.T) {
	originalExitFunc := exitFunc
	var exitCode int
	exitFunc = func(code int) { exitCode = code }
	defer func() { exitFunc = originalExitFunc }()

	run := runE(func(_ *cobra.Command, _ []string) error { return assert.AnError })
	run(nil, nil)

	assert.Equal(t, 1, exitCode)
}

func TestNewShareHandler(t *testing.T) {
	srv := httptest.NewServer(newShareHandler(share.NewStore(), config.ServeConfig{AllowedOrigin: "https://app.example"}))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/share-snapshots", "application/json",
		strings.NewReader(`{"reportModel": {"score": 80}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	get := func(origin string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", origin)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp
	}

	allowed := get("https://app.example")
	assert.Equal(t, http.StatusOK, allowed.StatusCode)
	assert.Equal(t, "https://app.example", allowed.Header.Get("Access-Control-Allow-Origin"))

	other := get("https://elsewhere.example")
	assert.Empty(t, other.Header.Get("Access-Control-Allow-Origin"))
}

func TestRunServe_StopsOnCancel(t *testing.T) {
	t.Setenv("AEOSCORE_SERVE_ADDR", "127.0.0.1:0")
	t.Setenv("AEOSCORE_STORE_BACKEND", "memory")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, runServe(ctx))
}

func TestGitSources(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()

	t.Run("not a repository", func(t *testing.T) {
		if git.IsGitRepo(dir) {
			t.Skip("temp dir is inside a git repository")
		}
		_, err := gitSources(dir, true)
		assert.ErrorContains(t, err, "require a git repository")
	})

	gitInit := exec.Command("git", "init", "-q")
	gitInit.Dir = dir
	require.NoError(t, gitInit.Run())
	writeFile(t, dir, "page.html", samplePage)
	writeFile(t, dir, "notes.go", "package notes")
	add := exec.Command("git", "add", "page.html", "notes.go")
	add.Dir = dir
	require.NoError(t, add.Run())

	got, err := gitSources(dir, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "page.html", filepath.Base(got[0].name))
	assert.Contains(t, got[0].content, "brand:")
}

func TestRedactPath(t *testing.T) {
	assert.Equal(t, "/tmp/history.db", redactPath("/tmp/history.db"))
	assert.Equal(t, "postgres://app:xxxxx@db:5432/aeo", redactPath("postgres://app:secret@db:5432/aeo"))
}

func TestHistoryDocument(t *testing.T) {
	dir := t.TempDir()
	page := writeFile(t, dir, "page.html", samplePage)
	resolved, err := filepath.EvalSymlinks(page)
	require.NoError(t, err)

	assert.Equal(t, "", historyDocument(""))
	assert.Equal(t, "", historyDocument("<text>"))
	assert.Equal(t, resolved, historyDocument(page))

	missing := filepath.Join(dir, "gone.html")
	assert.Equal(t, missing, historyDocument(missing))
}

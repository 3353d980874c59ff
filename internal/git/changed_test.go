package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestIsContentFile(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"html page", "site/index.html", true},
		{"htm page", "old/page.HTM", true},
		{"markdown", "content/post.md", true},
		{"mdx", "docs/intro.mdx", true},
		{"go source", "main.go", false},
		{"json", "package.json", false},
		{"vendored page", "vendor/lib/readme.md", false},
		{"node_modules", "node_modules/pkg/index.html", false},
		{"build output", "dist/index.html", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isContentFile(tt.path); got != tt.expected {
				t.Errorf("isContentFile(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestFilterContentFiles(t *testing.T) {
	tmpDir := t.TempDir()
	for _, rel := range []string{"a.html", "docs/b.md", "main.go"} {
		path := filepath.Join(tmpDir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	got := filterContentFiles("a.html\n  docs/b.md \nmain.go\ndeleted.html\n\n", tmpDir)

	want := []string{filepath.Join(tmpDir, "a.html"), filepath.Join(tmpDir, "docs/b.md")}
	if len(got) != len(want) {
		t.Fatalf("filterContentFiles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("filterContentFiles()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := filterContentFiles("", tmpDir); len(got) != 0 {
		t.Errorf("empty input gave %v", got)
	}
}

func TestNonGitRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	tmpDir := t.TempDir()

	if IsGitRepo(tmpDir) {
		t.Skip("temp dir is inside a git repository")
	}
	staged, err := GetStagedFiles(tmpDir)
	if err != nil || len(staged) != 0 {
		t.Errorf("GetStagedFiles() = %v, %v; want empty, nil", staged, err)
	}
	changed, err := GetChangedFiles(tmpDir)
	if err != nil || len(changed) != 0 {
		t.Errorf("GetChangedFiles() = %v, %v; want empty, nil", changed, err)
	}
}

func TestGitIntegration(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	tmpDir := t.TempDir()

	gitCmd := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = tmpDir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com")
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v: %s", args, err, out)
		}
	}
	write := func(rel, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(tmpDir, rel), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	gitCmd("init", "-q")
	write("page.html", "<p>v1</p>")
	write("notes.txt", "x")
	gitCmd("add", ".")

	// no commits yet: tracked documents count as changed
	changed, err := GetChangedFiles(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 1 || filepath.Base(changed[0]) != "page.html" {
		t.Errorf("GetChangedFiles() before commit = %v", changed)
	}

	gitCmd("commit", "-q", "-m", "init")
	write("page.html", "<p>v2</p>")
	write("post.md", "# new")
	gitCmd("add", "post.md")

	staged, err := GetStagedFiles(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(staged) != 1 || filepath.Base(staged[0]) != "post.md" {
		t.Errorf("GetStagedFiles() = %v", staged)
	}

	changed, err = GetChangedFiles(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 2 {
		t.Errorf("GetChangedFiles() = %v, want page.html and post.md", changed)
	}

	// names resolve from the top level even when asked from a subdirectory
	subDir := filepath.Join(tmpDir, "docs")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}
	staged, err = GetStagedFiles(subDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(staged) != 1 {
		t.Fatalf("GetStagedFiles(subdir) = %v", staged)
	}
	if _, err := os.Stat(staged[0]); err != nil {
		t.Errorf("GetStagedFiles(subdir) returned a missing path: %v", err)
	}
}

package gitscope

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/entitytriage/triage/internal/differ"
)

func TestParseNameStatus(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []nameStatusEntry
	}{
		{name: "empty input", input: "", want: nil},
		{
			name:  "single modified go file",
			input: "M\tsrc/main.go",
			want:  []nameStatusEntry{{path: "src/main.go", status: differ.StatusModified}},
		},
		{
			name:  "added file",
			input: "A\tnew_file.go",
			want:  []nameStatusEntry{{path: "new_file.go", status: differ.StatusAdded}},
		},
		{
			name:  "deleted file",
			input: "D\told_file.go",
			want:  []nameStatusEntry{{path: "old_file.go", status: differ.StatusRemoved}},
		},
		{
			name:  "renamed file",
			input: "R100\told.go\tnew.go",
			want:  []nameStatusEntry{{path: "new.go", oldPath: "old.go", status: differ.StatusRenamed}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNameStatus(tt.input)
			if err != nil {
				t.Fatalf("parseNameStatus returned error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFilePairsAgainstRealRepo(t *testing.T) {
	tmpDir := t.TempDir()

	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = tmpDir
		if err := cmd.Run(); err != nil {
			t.Skipf("git not usable in this environment: %v", err)
		}
	}

	run("init")
	run("config", "user.email", "test@test.com")
	run("config", "user.name", "Test")

	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("main.go", "package main\n\nfunc Old() int {\n\treturn 1\n}\n")
	run("add", "main.go")
	run("commit", "-m", "initial")

	write("main.go", "package main\n\nfunc Old() int {\n\treturn 2\n}\n")
	run("add", "main.go")
	run("commit", "-m", "change")

	r := NewResolver(tmpDir)
	pairs, err := r.FilePairs(Scope{From: "HEAD~1", To: "HEAD"})
	if err != nil {
		t.Fatalf("FilePairs returned error: %v", err)
	}

	found := false
	for _, p := range pairs {
		if p.Path == "main.go" {
			found = true
			if p.Before == nil || p.After == nil {
				t.Errorf("expected before/after content for main.go, got %+v", p)
			}
		}
	}
	if !found {
		t.Errorf("expected a FilePair for main.go, got %+v", pairs)
	}
}

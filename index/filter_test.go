package index

import (
	"path/filepath"
	"testing"
)

func TestFilterIgnoreComponents(t *testing.T) {
	root := filepath.FromSlash("/project")
	f := NewFilter(root, FilterOptions{
		IgnoreComponents: []string{"docs", ".Git"},
	})

	if f.Include(filepath.Join(root, "docs"), true) {
		t.Error("expected docs directory to be rejected")
	}
	if f.Include(filepath.Join(root, "DOCS", "readme.md"), false) {
		t.Error("expected component match to be case-insensitive")
	}
	if f.Include(filepath.Join(root, "src", ".git", "config"), false) {
		t.Error("expected nested ignored component to reject")
	}
	if !f.Include(filepath.Join(root, "src", "main.rs"), false) {
		t.Error("expected src/main.rs to pass")
	}
}

func TestFilterRootNeverMatchesComponents(t *testing.T) {
	// The root's own name must not trigger component rules: its relative
	// path is empty.
	root := filepath.FromSlash("/work/docs")
	f := NewFilter(root, FilterOptions{IgnoreComponents: []string{"docs"}})

	if !f.Include(root, true) {
		t.Error("expected the root itself to be accepted")
	}
	if f.Include(filepath.Join(root, "docs"), true) {
		t.Error("expected a docs child of the root to be rejected")
	}
}

func TestFilterTargetExtensionNormalization(t *testing.T) {
	root := filepath.FromSlash("/project")
	// Configured with and without leading dot; both must match the same
	// files.
	withDot := NewFilter(root, FilterOptions{TargetExtensions: []string{".MD"}})
	withoutDot := NewFilter(root, FilterOptions{TargetExtensions: []string{"md"}})

	path := filepath.Join(root, "README.md")
	if !withDot.Include(path, false) {
		t.Error("expected .MD to match README.md")
	}
	if !withoutDot.Include(path, false) {
		t.Error("expected md to match README.md")
	}
	if withDot.Include(filepath.Join(root, "main.go"), false) {
		t.Error("expected main.go to be rejected")
	}
}

func TestFilterTargetExactFilenameOrExtension(t *testing.T) {
	root := filepath.FromSlash("/project")
	f := NewFilter(root, FilterOptions{
		TargetExtensions: []string{"go"},
		TargetFilenames:  []string{"Makefile"},
	})

	if !f.Include(filepath.Join(root, "main.go"), false) {
		t.Error("expected extension criterion to accept main.go")
	}
	if !f.Include(filepath.Join(root, "makefile"), false) {
		t.Error("expected exact-filename criterion to accept makefile case-insensitively")
	}
	if f.Include(filepath.Join(root, "notes.txt"), false) {
		t.Error("expected notes.txt to fail both criteria")
	}
	// Directories are not subject to file criteria.
	if !f.Include(filepath.Join(root, "vendor"), true) {
		t.Error("expected directories to pass target criteria")
	}
}

func TestFilterWhitelistAndBlacklist(t *testing.T) {
	root := filepath.FromSlash("/project")
	f := NewFilter(root, FilterOptions{
		WhitelistSubstrings: []string{"report"},
		BlacklistSubstrings: []string{"draft"},
	})

	if !f.Include(filepath.Join(root, "report_final.txt"), false) {
		t.Error("expected whitelisted filename to pass")
	}
	if f.Include(filepath.Join(root, "summary.txt"), false) {
		t.Error("expected filename without whitelist substring to fail")
	}
	if f.Include(filepath.Join(root, "report_draft.txt"), false) {
		t.Error("expected blacklisted filename to fail even when whitelisted")
	}
}

func TestFilterNoCriteriaAcceptsEverything(t *testing.T) {
	root := filepath.FromSlash("/project")
	f := NewFilter(root, FilterOptions{})

	if !f.Include(filepath.Join(root, "anything.bin"), false) {
		t.Error("expected unconfigured filter to accept files")
	}
	if !f.Include(filepath.Join(root, "sub"), true) {
		t.Error("expected unconfigured filter to accept directories")
	}
}

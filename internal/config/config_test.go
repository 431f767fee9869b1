package config

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if !cfg.Watch {
		t.Error("expected watch to be true")
	}
	want := []string{".git", ".svn", "node_modules"}
	if !reflect.DeepEqual(cfg.Filter.IgnoreComponents, want) {
		t.Errorf("expected default ignore components %v, got %v", want, cfg.Filter.IgnoreComponents)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList("md, txt ,,rs")
	want := []string{"md", "txt", "rs"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if splitList("") != nil {
		t.Error("expected nil for empty value")
	}
}

func TestResolvePath(t *testing.T) {
	cfg := &Config{Path: ""}
	cfg.resolvePath()
	if !filepath.IsAbs(cfg.Path) {
		t.Errorf("expected absolute path, got %s", cfg.Path)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.configPath = tmpFile
	cfg.Port = 9999
	cfg.Filter.TargetExtensions = []string{"md", "txt"}
	cfg.Filter.WhitelistSubstrings = []string{"report"}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Manual load to verify
	cfg2 := &Config{}
	if err := cfg2.loadFromFile(tmpFile); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg2.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg2.Port)
	}
	if !reflect.DeepEqual(cfg2.Filter.TargetExtensions, []string{"md", "txt"}) {
		t.Errorf("filter extensions not round-tripped: %v", cfg2.Filter.TargetExtensions)
	}
	if !reflect.DeepEqual(cfg2.Filter.WhitelistSubstrings, []string{"report"}) {
		t.Errorf("filter whitelist not round-tripped: %v", cfg2.Filter.WhitelistSubstrings)
	}
}

package index

import (
	"path/filepath"
	"strings"
)

// FilterOptions configures which filesystem entries the index records.
// Every field is optional; an empty slice disables its rule. Matching is
// case-insensitive throughout.
type FilterOptions struct {
	// TargetExtensions limits files to these extensions. Values are
	// accepted with or without a leading dot ("md" and ".md" are equal).
	TargetExtensions []string `yaml:"target_extensions" json:"target_extensions"`
	// TargetFilenames limits files to these exact full filenames
	// (e.g. "makefile"). A file passes the target stage by matching
	// either an extension or an exact filename.
	TargetFilenames []string `yaml:"target_filenames" json:"target_filenames"`
	// IgnoreComponents rejects any entry whose path relative to the root
	// contains one of these components. Applies to directories too, which
	// lets the walker prune whole subtrees.
	IgnoreComponents []string `yaml:"ignore_components" json:"ignore_components"`
	// WhitelistSubstrings, when non-empty, requires a filename to contain
	// at least one of them.
	WhitelistSubstrings []string `yaml:"whitelist_substrings" json:"whitelist_substrings"`
	// BlacklistSubstrings rejects any filename containing one of them.
	BlacklistSubstrings []string `yaml:"blacklist_substrings" json:"blacklist_substrings"`
}

// Filter is the compiled, immutable inclusion predicate evaluated relative
// to a fixed root.
type Filter struct {
	root             string
	targetExtensions map[string]struct{}
	targetFilenames  map[string]struct{}
	ignoreComponents map[string]struct{}
	whitelist        []string
	blacklist        []string
}

func toSet(values []string, normalize func(string) string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[normalize(v)] = struct{}{}
	}
	return set
}

func toLowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}

// NewFilter compiles options into a filter rooted at root. Target
// extensions are normalized to lower case with no leading dot so that the
// configured and derived sides always compare identically.
func NewFilter(root string, opts FilterOptions) *Filter {
	lower := strings.ToLower
	return &Filter{
		root: root,
		targetExtensions: toSet(opts.TargetExtensions, func(s string) string {
			return strings.TrimPrefix(lower(s), ".")
		}),
		targetFilenames:  toSet(opts.TargetFilenames, lower),
		ignoreComponents: toSet(opts.IgnoreComponents, lower),
		whitelist:        toLowerAll(opts.WhitelistSubstrings),
		blacklist:        toLowerAll(opts.BlacklistSubstrings),
	}
}

// Include decides whether the entry at path should be recorded (files) or
// descended into (directories). Rules short-circuit in order: ignored path
// components, directory acceptance, target extension/filename, whitelist,
// blacklist. Pure; never touches the filesystem.
func (f *Filter) Include(path string, isDir bool) bool {
	rel, err := filepath.Rel(f.root, path)
	if err != nil || rel == "." {
		// The root itself has an empty relative path, so component
		// checks never fire on it.
		rel = ""
	}

	if len(f.ignoreComponents) > 0 && rel != "" {
		for _, part := range strings.Split(rel, string(filepath.Separator)) {
			if _, ignored := f.ignoreComponents[strings.ToLower(part)]; ignored {
				return false
			}
		}
	}

	if isDir {
		return true
	}

	name := strings.ToLower(filepath.Base(path))
	_, ext := splitFilename(name)

	if len(f.targetExtensions) > 0 || len(f.targetFilenames) > 0 {
		matched := false
		if _, ok := f.targetExtensions[ext]; ok {
			matched = true
		}
		if !matched {
			if _, ok := f.targetFilenames[name]; ok {
				matched = true
			}
		}
		if !matched {
			return false
		}
	}

	if len(f.whitelist) > 0 {
		matched := false
		for _, sub := range f.whitelist {
			if strings.Contains(name, sub) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, sub := range f.blacklist {
		if strings.Contains(name, sub) {
			return false
		}
	}

	return true
}

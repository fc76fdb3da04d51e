package utils

import (
	"path/filepath"
	"strings"
)

// defaultIgnorePatterns covers version control, dependency and virtualenv
// directories, OS metadata, temp/cache files, and the tool's own cache.
var defaultIgnorePatterns = []string{
	"__pycache__", ".git", ".vscode", ".idea", "node_modules",
	"*.pyc", "*.pyo", "*.pyd", ".DS_Store", "Thumbs.db",
	".env", ".env.*", "*.log", "*.tmp", "*.cache",
	".rag_cache", "venv", "env", ".venv",
}

// defaultExtensions is the allow-list of file suffixes eligible for
// analysis: common source, markup, config, and script extensions.
var defaultExtensions = []string{
	".py", ".js", ".ts", ".jsx", ".tsx", ".java", ".cpp", ".c", ".h",
	".cs", ".php", ".rb", ".go", ".rs", ".swift", ".kt", ".scala",
	".html", ".css", ".scss", ".sass", ".vue", ".svelte", ".sql",
	".sh", ".bash", ".ps1", ".yaml", ".yml", ".json", ".xml", ".toml",
}

// PathFilter decides whether a filesystem entry should be skipped and
// whether a file is eligible for analysis. It is a pure function of its
// configuration; no filesystem access happens here.
type PathFilter struct {
	ignorePatterns []string
	extensions     map[string]struct{}
}

// NewPathFilter creates a filter with the default patterns and allow-list
// plus any extra ignore patterns, appended after the defaults.
func NewPathFilter(extraIgnorePatterns ...string) *PathFilter {
	extensions := make(map[string]struct{}, len(defaultExtensions))
	for _, ext := range defaultExtensions {
		extensions[ext] = struct{}{}
	}

	patterns := make([]string, 0, len(defaultIgnorePatterns)+len(extraIgnorePatterns))
	patterns = append(patterns, defaultIgnorePatterns...)
	patterns = append(patterns, extraIgnorePatterns...)

	return &PathFilter{
		ignorePatterns: patterns,
		extensions:     extensions,
	}
}

// ShouldIgnore reports whether the path matches any ignore pattern. Both
// the final path segment and the full path string are matched, so a
// pattern like ".git" prunes the directory wherever it appears.
func (f *PathFilter) ShouldIgnore(path string) bool {
	name := filepath.Base(path)
	for _, pattern := range f.ignorePatterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

// HasAllowedExtension reports whether the file's suffix is on the
// allow-list. The comparison is case-insensitive.
func (f *PathFilter) HasAllowedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := f.extensions[ext]
	return ok
}

// IsAnalyzable reports whether a file passes both checks: not ignored and
// carrying an allowed extension.
func (f *PathFilter) IsAnalyzable(path string) bool {
	return !f.ShouldIgnore(path) && f.HasAllowedExtension(path)
}

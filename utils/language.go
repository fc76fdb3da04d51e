package utils

import (
	"path/filepath"
	"strings"
)

// GetSupportedLanguage maps a file path to the language name used for
// structural parsing. Unsupported extensions return "".
func GetSupportedLanguage(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".js", ".jsx":
		return "javascript"
	case ".ts", ".tsx":
		return "typescript"
	case ".java":
		return "java"
	case ".cs":
		return "csharp"
	default:
		return ""
	}
}

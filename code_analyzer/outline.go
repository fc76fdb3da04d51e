package code_analyzer

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/docuai/docuai/utils"
)

// maxOutlineElements caps the structural outline embedded in a prompt.
const maxOutlineElements = 40

// declarationTags maps tree-sitter node types to outline tags per
// language.
var declarationTags = map[string]map[string]string{
	"go": {
		"function_declaration": "function",
		"method_declaration":   "method",
		"type_spec":            "type",
	},
	"python": {
		"function_definition": "function",
		"class_definition":    "class",
	},
	"javascript": {
		"function_declaration": "function",
		"class_declaration":    "class",
		"method_definition":    "method",
	},
	"typescript": {
		"function_declaration":  "function",
		"class_declaration":     "class",
		"method_definition":     "method",
		"interface_declaration": "interface",
	},
	"java": {
		"class_declaration":     "class",
		"method_declaration":    "method",
		"interface_declaration": "interface",
	},
	"csharp": {
		"namespace_declaration": "namespace",
		"class_declaration":     "class",
		"method_declaration":    "method",
		"interface_declaration": "interface",
	},
}

func languageParser(language string) *sitter.Language {
	switch language {
	case "go":
		return golang.GetLanguage()
	case "python":
		return python.GetLanguage()
	case "javascript":
		return javascript.GetLanguage()
	case "typescript":
		return typescript.GetLanguage()
	case "java":
		return java.GetLanguage()
	case "csharp":
		return csharp.GetLanguage()
	default:
		return nil
	}
}

// ExtractOutline parses the source with tree-sitter and returns a tagged
// list of top-level declarations, one per line, for embedding in the
// analysis prompt. Unsupported languages return "".
func ExtractOutline(filePath string, sourceCode []byte) string {
	language := utils.GetSupportedLanguage(filePath)
	lang := languageParser(language)
	if lang == nil {
		return ""
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree := parser.Parse(nil, sourceCode)
	if tree == nil {
		return ""
	}

	tags := declarationTags[language]
	var elements []string
	collectDeclarations(tree.RootNode(), sourceCode, tags, &elements)

	return strings.Join(elements, "\n")
}

func collectDeclarations(node *sitter.Node, sourceCode []byte, tags map[string]string, elements *[]string) {
	if node == nil || len(*elements) >= maxOutlineElements {
		return
	}

	if tag, ok := tags[node.Type()]; ok {
		signature := firstLine(node.Content(sourceCode))
		*elements = append(*elements, fmt.Sprintf("%s: %s", tag, signature))
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectDeclarations(node.NamedChild(i), sourceCode, tags, elements)
	}
}

func firstLine(content string) string {
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		content = content[:idx]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(content), "{"))
}

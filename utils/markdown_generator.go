package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// RenderMarkdownPreview prints the first previewLines lines of a generated
// artifact with markdown highlighting. Rendering problems fall back to
// plain output; a preview is never worth failing a run over.
func RenderMarkdownPreview(content string, previewLines int, theme string) {
	lines := strings.Split(content, "\n")
	if len(lines) > previewLines {
		lines = append(lines[:previewLines], "...")
	}
	preview := strings.Join(lines, "\n")

	if err := quick.Highlight(os.Stdout, preview+"\n", "markdown", "terminal256", theme); err != nil {
		fmt.Println(preview)
	}
}

package markdown

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// renderer is initialized once and reused. The converter configuration
// never changes and goldmark.Markdown is safe to share; each Convert
// call creates its own parser state.
var (
	renderer     goldmark.Markdown
	rendererOnce sync.Once
)

func getRenderer() goldmark.Markdown {
	rendererOnce.Do(func() {
		// Raw HTML passes through. The edit form prefills the textarea
		// with stored content, which is already HTML, so a save has to
		// round-trip it byte for byte instead of dropping it. Output is
		// sanitized at render time, never here.
		renderer = goldmark.New(
			goldmark.WithRendererOptions(html.WithUnsafe()),
		)
	})
	return renderer
}

// Render converts submitted plain-text content into the HTML that gets
// stored. Plain text becomes a single wrapped paragraph block, e.g.
// "Test content" is stored as "<p>Test content</p>\n". Create and edit
// both go through here so the stored form is identical either way.
func Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := getRenderer().Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to render content: %w", err)
	}
	return buf.String(), nil
}

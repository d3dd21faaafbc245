package view

import (
	"context"

	"github.com/jamesedwarddillard-zz/blogful/internal/contextkeys"
	"github.com/microcosm-cc/bluemonday"
)

// Stored post content is already HTML (output of the content
// transform); it still passes through the UGC policy on the way out so
// anything the transform let through cannot script the page. Stored
// bytes are never rewritten.
var ugcPolicy = bluemonday.UGCPolicy()

// CSRFToken returns the token from the context.
func CSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(contextkeys.CSRFTokenKey).(string); ok {
		return token
	}
	return ""
}

// SafeHTML sanitizes stored post HTML for rendering.
func SafeHTML(s string) string {
	return ugcPolicy.Sanitize(s)
}

package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/jamesedwarddillard-zz/blogful/internal/db"
	"github.com/jamesedwarddillard-zz/blogful/internal/view"
)

// PostForm serves both the add and edit forms; action decides where the
// POST lands and title/content prefill the fields on edit or after a
// validation failure.
func PostForm(user db.User, heading, action, title, content, errMsg string) templ.Component {
	return layout(heading, user, func(ctx context.Context, w io.Writer) error {
		if err := errorBanner(w, errMsg); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w,
			`<h1>%s</h1>
<form method="post" action="%s">
<input type="hidden" name="csrf_token" value="%s">
<label>Title <input type="text" name="title" value="%s" required></label>
<label>Content <textarea name="content" rows="10" required>%s</textarea></label>
<button type="submit">Save</button>
</form>
`, templ.EscapeString(heading),
			action,
			view.CSRFToken(ctx),
			templ.EscapeString(title),
			templ.EscapeString(content))
		return err
	})
}

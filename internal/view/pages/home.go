package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/jamesedwarddillard-zz/blogful/internal/db"
	"github.com/jamesedwarddillard-zz/blogful/internal/routes"
	"github.com/jamesedwarddillard-zz/blogful/internal/view"
)

// Home renders the post listing, newest first. Edit and delete controls
// only show for the viewer's own posts; the server enforces ownership
// regardless.
func Home(user db.User, posts []db.ListPostsRow) templ.Component {
	return layout("Home", user, func(ctx context.Context, w io.Writer) error {
		if len(posts) == 0 {
			_, err := io.WriteString(w, `<p class="empty">No posts yet.</p>`+"\n")
			return err
		}

		for _, post := range posts {
			if _, err := fmt.Fprintf(w,
				`<article>
<h2>%s</h2>
<p class="meta">by %s on %s</p>
<div class="content">%s</div>
`, templ.EscapeString(post.Title),
				templ.EscapeString(post.AuthorName),
				post.CreatedAt.Format("Jan 2, 2006 15:04"),
				view.SafeHTML(post.Content)); err != nil {
				return err
			}

			if user.ID == post.AuthorID {
				if _, err := fmt.Fprintf(w,
					`<div class="actions">
<a href="%s">Edit</a>
<form method="post" action="%s" class="inline">
<input type="hidden" name="csrf_token" value="%s">
<button type="submit">Delete</button>
</form>
</div>
`, routes.PostEdit(post.ID), routes.PostDelete(post.ID), view.CSRFToken(ctx)); err != nil {
					return err
				}
			}

			if _, err := io.WriteString(w, "</article>\n"); err != nil {
				return err
			}
		}
		return nil
	})
}

// Package pages holds the server-rendered views as hand-assembled
// templ components. Each page is a plain function returning a
// templ.Component so handlers can serve it with templ.Handler.
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

type bodyFunc func(ctx context.Context, w io.Writer) error

func layout(title string, user db.User, body bodyFunc) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s - Blogful</title>
<link rel="stylesheet" href="/assets/style.css">
</head>
<body>
<header>
<nav>
<a href="%s" class="brand">Blogful</a>
`, templ.EscapeString(title), routes.Home); err != nil {
			return err
		}

		if user.ID != 0 {
			if _, err := fmt.Fprintf(w,
				`<span class="user">Signed in as %s</span>
<a href="%s">New post</a>
<form method="post" action="%s" class="inline">
<input type="hidden" name="csrf_token" value="%s">
<button type="submit">Log out</button>
</form>
`, templ.EscapeString(user.Name), routes.PostAdd, routes.Logout, view.CSRFToken(ctx)); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w,
				`<a href="%s">Log in</a>
<a href="%s">Register</a>
`, routes.Login, routes.Register); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, "</nav>\n</header>\n<main>\n"); err != nil {
			return err
		}

		if err := body(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

func errorBanner(w io.Writer, msg string) error {
	if msg == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, `<p class="error">%s</p>`+"\n", templ.EscapeString(msg))
	return err
}

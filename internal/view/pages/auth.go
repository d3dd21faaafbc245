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

func Login(errMsg string) templ.Component {
	return layout("Log in", db.User{}, func(ctx context.Context, w io.Writer) error {
		if err := errorBanner(w, errMsg); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w,
			`<h1>Log in</h1>
<form method="post" action="%s">
<input type="hidden" name="csrf_token" value="%s">
<label>Email <input type="email" name="email" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Log in</button>
</form>
`, routes.Login, view.CSRFToken(ctx))
		return err
	})
}

func Register(errMsg string) templ.Component {
	return layout("Register", db.User{}, func(ctx context.Context, w io.Writer) error {
		if err := errorBanner(w, errMsg); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w,
			`<h1>Register</h1>
<form method="post" action="%s">
<input type="hidden" name="csrf_token" value="%s">
<label>Name <input type="text" name="name" required></label>
<label>Email <input type="email" name="email" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">Register</button>
</form>
`, routes.Register, view.CSRFToken(ctx))
		return err
	})
}

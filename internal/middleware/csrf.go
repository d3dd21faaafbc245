package middleware

import (
	"context"
	"net/http"

	"github.com/jamesedwarddillard-zz/blogful/internal/contextkeys"
	"github.com/justinas/nosurf"
)

// CSRF protects state-changing requests and exposes the per-request
// token in the context so form views can embed it. The injector sits
// inside nosurf; reading the token before nosurf runs yields nothing.
func CSRF(next http.Handler, secureCookie bool) http.Handler {
	h := nosurf.New(injectToken(next))
	h.SetBaseCookie(http.Cookie{
		HttpOnly: true,
		Path:     "/",
		Secure:   secureCookie,
	})
	return h
}

func injectToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), contextkeys.CSRFTokenKey, nosurf.Token(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

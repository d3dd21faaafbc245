package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/jamesedwarddillard-zz/blogful/internal/contextkeys"
	"github.com/jamesedwarddillard-zz/blogful/internal/db"
	"github.com/jamesedwarddillard-zz/blogful/internal/routes"
)

// RequireAuth gates a handler behind a live session. A session counts
// as authenticated only when it carries a user id AND the freshness
// flag set at login; anything else redirects to the login page.
func RequireAuth(sm *scs.SessionManager, queries *db.Queries, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := sm.GetInt64(r.Context(), "user_id")
		fresh := sm.GetBool(r.Context(), "_fresh")
		if userID == 0 || !fresh {
			http.Redirect(w, r, routes.Login, http.StatusSeeOther)
			return
		}

		user, err := queries.GetUserByID(r.Context(), userID)
		if err != nil {
			// Stale session pointing at a deleted user
			_ = sm.Destroy(r.Context())
			http.Redirect(w, r, routes.Login, http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), contextkeys.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUser retrieves the authenticated user from the context.
func GetUser(ctx context.Context) (db.User, bool) {
	user, ok := ctx.Value(contextkeys.UserContextKey).(db.User)
	return user, ok
}

// SessionUser resolves the current principal for handlers that render
// differently for visitors and members but do not require auth. The
// zero User means anonymous.
func SessionUser(sm *scs.SessionManager, queries *db.Queries, r *http.Request) db.User {
	userID := sm.GetInt64(r.Context(), "user_id")
	fresh := sm.GetBool(r.Context(), "_fresh")
	if userID == 0 || !fresh {
		return db.User{}
	}
	user, err := queries.GetUserByID(r.Context(), userID)
	if err != nil {
		return db.User{}
	}
	return user
}

package web

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/mattn/go-sqlite3"
	"github.com/jamesedwarddillard-zz/blogful/internal/config"
	"github.com/jamesedwarddillard-zz/blogful/internal/db"
	"github.com/jamesedwarddillard-zz/blogful/internal/logging"
	"github.com/jamesedwarddillard-zz/blogful/internal/metrics"
	"github.com/jamesedwarddillard-zz/blogful/internal/middleware"
	"github.com/jamesedwarddillard-zz/blogful/internal/routes"
	"github.com/jamesedwarddillard-zz/blogful/internal/validator"
	"github.com/jamesedwarddillard-zz/blogful/internal/view/pages"
	"golang.org/x/crypto/bcrypt"
)

type HandlerDeps struct {
	DB             *sql.DB // write pool; mutations run transactions here
	Queries        *db.Queries
	SessionManager *scs.SessionManager
	Config         *config.Config
}

// AppHandler is a custom type that lets handlers return errors
type AppHandler func(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error

// Handle wraps an AppHandler for conformity with http.HandlerFunc
func Handle(deps HandlerDeps, h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(deps, w, r); err != nil {
			logging.Get().Error("request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", err),
			)

			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}

func RegisterRoutes(mux *http.ServeMux, deps HandlerDeps) {
	// Auth Handlers
	mux.Handle("GET "+routes.Login, templ.Handler(pages.Login("")))
	mux.Handle("GET "+routes.Register, templ.Handler(pages.Register("")))
	mux.HandleFunc("POST "+routes.Login, Handle(deps, handleLogin))
	mux.HandleFunc("POST "+routes.Register, Handle(deps, handleRegister))
	mux.HandleFunc("POST "+routes.Logout, Handle(deps, handleLogout))

	// Post Lifecycle
	mux.HandleFunc("GET /{$}", Handle(deps, handleHome))
	mux.Handle("GET "+routes.PostAdd, middleware.RequireAuth(deps.SessionManager, deps.Queries, Handle(deps, handlePostAddForm)))
	mux.Handle("POST "+routes.PostAdd, middleware.RequireAuth(deps.SessionManager, deps.Queries, Handle(deps, handlePostAdd)))
	mux.Handle("GET /post/{id}/edit", middleware.RequireAuth(deps.SessionManager, deps.Queries, Handle(deps, handlePostEditForm)))
	mux.Handle("POST /post/{id}/edit", middleware.RequireAuth(deps.SessionManager, deps.Queries, Handle(deps, handlePostEdit)))
	mux.Handle("POST /post/{id}/delete", middleware.RequireAuth(deps.SessionManager, deps.Queries, Handle(deps, handlePostDelete)))
}

// --- Auth Handlers ---

func handleRegister(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")

	emailDomain := ""
	if idx := strings.Index(email, "@"); idx > 0 {
		emailDomain = email[idx+1:]
	}

	logging.AddToEvent(r.Context(),
		slog.String("operation", "register"),
		slog.String("email_domain", emailDomain),
	)

	validation := validator.ValidateRegistration(name, email, password)
	if !validation.Valid {
		templ.Handler(pages.Register(validation.Message())).ServeHTTP(w, r)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := deps.DB.BeginTx(r.Context(), nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := deps.Queries.WithTx(tx)

	user, err := qtx.CreateUser(r.Context(), db.CreateUserParams{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		// Uniqueness is enforced by the emails index, not a pre-check, so
		// concurrent registrations cannot race past each other.
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			logging.AddToEvent(r.Context(),
				slog.String("outcome", "error"),
				slog.String("error_reason", "email_already_exists"),
			)
			templ.Handler(pages.Register("That email is already in use")).ServeHTTP(w, r)
			return nil
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit registration: %w", err)
	}

	logging.AddToEvent(r.Context(),
		slog.String("outcome", "success"),
		slog.Int64("created_user_id", user.ID),
	)

	http.Redirect(w, r, routes.Login, http.StatusSeeOther)
	return nil
}

func handleLogin(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	email := r.FormValue("email")
	password := r.FormValue("password")

	emailDomain := ""
	if idx := strings.Index(email, "@"); idx > 0 {
		emailDomain = email[idx+1:]
	}

	logging.AddToEvent(r.Context(),
		slog.String("operation", "login"),
		slog.String("email_domain", emailDomain),
	)

	if email == "" || password == "" {
		logging.AddToEvent(r.Context(),
			slog.String("outcome", "error"),
			slog.String("error_reason", "missing_credentials"),
		)
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		templ.Handler(pages.Login("Email and password are required")).ServeHTTP(w, r)
		return nil
	}

	user, err := deps.Queries.GetUserByEmail(r.Context(), email)
	if err != nil {
		logging.AddToEvent(r.Context(),
			slog.String("outcome", "error"),
			slog.String("error_reason", "user_not_found"),
		)
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		templ.Handler(pages.Login("Invalid email or password")).ServeHTTP(w, r)
		return nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logging.AddToEvent(r.Context(),
			slog.String("outcome", "error"),
			slog.String("error_reason", "invalid_password"),
			slog.Int64("user_id", user.ID),
		)
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		templ.Handler(pages.Login("Invalid email or password")).ServeHTTP(w, r)
		return nil
	}

	logging.AddToEvent(r.Context(),
		slog.String("outcome", "success"),
		slog.Int64("user_id", user.ID),
	)
	metrics.LoginAttempts.WithLabelValues("success").Inc()

	// Fresh token for the new privilege level, then mark the session
	// authenticated. Both keys are required by RequireAuth.
	if err := deps.SessionManager.RenewToken(r.Context()); err != nil {
		return fmt.Errorf("failed to renew session token: %w", err)
	}
	deps.SessionManager.Put(r.Context(), "user_id", user.ID)
	deps.SessionManager.Put(r.Context(), "_fresh", true)

	http.Redirect(w, r, routes.Home, http.StatusSeeOther)
	return nil
}

func handleLogout(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	if err := deps.SessionManager.Destroy(r.Context()); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	http.Redirect(w, r, routes.Home, http.StatusSeeOther)
	return nil
}

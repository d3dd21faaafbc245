package web

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/jamesedwarddillard-zz/blogful/internal/config"
	"github.com/jamesedwarddillard-zz/blogful/internal/db"
	"github.com/jamesedwarddillard-zz/blogful/internal/routes"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDeps(t *testing.T) HandlerDeps {
	t.Helper()

	dbConn, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatal(err)
	}
	dbConn.SetMaxOpenConns(1)

	if err := db.RunMigrations(context.Background(), dbConn); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	t.Cleanup(func() {
		dbConn.Close()
	})

	return HandlerDeps{
		DB:             dbConn,
		Queries:        db.New(dbConn),
		SessionManager: scs.New(),
		Config:         &config.Config{Env: "test"},
	}
}

func TestHandleRegister(t *testing.T) {
	t.Run("MissingFields", func(t *testing.T) {
		deps := setupTestDeps(t)

		req := httptest.NewRequest("POST", routes.Register, nil)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()

		Handle(deps, handleRegister).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected form re-render with status %d, got %d", http.StatusOK, rr.Code)
		}
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		deps := setupTestDeps(t)

		req := httptest.NewRequest("POST", routes.Register, nil)
		req.PostForm = map[string][]string{
			"name":     {"Alice"},
			"email":    {"invalid-email"},
			"password": {"password123"},
		}
		rr := httptest.NewRecorder()

		Handle(deps, handleRegister).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
		}
	})

	t.Run("ValidRegistrationCreatesUser", func(t *testing.T) {
		deps := setupTestDeps(t)

		req := httptest.NewRequest("POST", routes.Register, nil)
		req.PostForm = map[string][]string{
			"name":     {"Alice"},
			"email":    {"alice@example.com"},
			"password": {"password123"},
		}
		rr := httptest.NewRecorder()

		Handle(deps, handleRegister).ServeHTTP(rr, req)

		if rr.Code != http.StatusSeeOther {
			t.Fatalf("expected redirect status %d, got %d", http.StatusSeeOther, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != routes.Login {
			t.Errorf("expected redirect to %s, got %s", routes.Login, loc)
		}

		user, err := deps.Queries.GetUserByEmail(context.Background(), "alice@example.com")
		if err != nil {
			t.Fatalf("expected user to exist: %v", err)
		}
		if user.Name != "Alice" {
			t.Errorf("expected name Alice, got %s", user.Name)
		}
		if user.PasswordHash == "password123" {
			t.Error("password must be stored hashed")
		}
	})

	t.Run("DuplicateEmailRerendersForm", func(t *testing.T) {
		deps := setupTestDeps(t)

		form := map[string][]string{
			"name":     {"Alice"},
			"email":    {"alice@example.com"},
			"password": {"password123"},
		}

		req := httptest.NewRequest("POST", routes.Register, nil)
		req.PostForm = form
		Handle(deps, handleRegister).ServeHTTP(httptest.NewRecorder(), req)

		req = httptest.NewRequest("POST", routes.Register, nil)
		req.PostForm = form
		rr := httptest.NewRecorder()
		Handle(deps, handleRegister).ServeHTTP(rr, req)

		// The losing insert hits the unique email index and must come
		// back as a form error, not a 500.
		if rr.Code != http.StatusOK {
			t.Errorf("expected form re-render with status %d, got %d", http.StatusOK, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "already in use") {
			t.Error("expected the duplicate email message in the form")
		}

		var count int
		if err := deps.DB.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
			t.Fatal(err)
		}
		if count != 1 {
			t.Errorf("expected exactly one user row, got %d", count)
		}
	})
}

func TestHandleLogin(t *testing.T) {
	t.Run("MissingCredentials", func(t *testing.T) {
		deps := setupTestDeps(t)

		req := httptest.NewRequest("POST", routes.Login, nil)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()

		Handle(deps, handleLogin).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
		}
	})

	t.Run("NonExistentUser", func(t *testing.T) {
		deps := setupTestDeps(t)

		req := httptest.NewRequest("POST", routes.Login, nil)
		req.PostForm = map[string][]string{
			"email":    {"wrong@example.com"},
			"password": {"wrongpassword"},
		}
		rr := httptest.NewRecorder()

		Handle(deps, handleLogin).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
		}
	})
}

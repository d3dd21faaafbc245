package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jamesedwarddillard-zz/blogful/internal/logging"
	"golang.org/x/crypto/bcrypt"
)

// Seed creates a demo author and a welcome post so a fresh install has
// something to render. Safe to run twice; an existing demo user aborts
// the seed silently.
func Seed(ctx context.Context, dbConn *sql.DB) error {
	queries := New(dbConn)

	if _, err := queries.GetUserByEmail(ctx, "alice@example.com"); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	})
	if err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	if _, err := queries.CreatePost(ctx, CreatePostParams{
		Title:     "Welcome to Blogful",
		Content:   "<p>This post was created by the seeder. Log in and write your own.</p>\n",
		CreatedAt: time.Now().UTC(),
		AuthorID:  user.ID,
	}); err != nil {
		return fmt.Errorf("failed to seed post: %w", err)
	}

	logging.Get().Info("database seeded successfully",
		slog.String("demo_email", "alice@example.com"),
		slog.String("demo_password", "password123"),
	)
	return nil
}

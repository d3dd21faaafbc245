package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) (*sql.DB, *Queries) {
	t.Helper()

	tempFile, err := os.CreateTemp("", "blogful_test_*.db")
	if err != nil {
		t.Fatal(err)
	}
	tempFile.Close()
	dbPath := tempFile.Name()

	t.Cleanup(func() {
		os.Remove(dbPath)
	})

	dbConn, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { dbConn.Close() })

	if err := RunMigrations(context.Background(), dbConn); err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	return dbConn, New(dbConn)
}

func createTestUser(t *testing.T, queries *Queries, name, email string) User {
	t.Helper()
	user, err := queries.CreateUser(context.Background(), CreateUserParams{
		Name:         name,
		Email:        email,
		PasswordHash: "not-a-real-hash",
	})
	if err != nil {
		t.Fatal(err)
	}
	return user
}

func TestUserQueries(t *testing.T) {
	_, queries := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, queries, "Alice", "alice@example.com")
	if alice.ID == 0 {
		t.Fatal("expected autoincremented user id")
	}

	byEmail, err := queries.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if byEmail.ID != alice.ID || byEmail.Name != "Alice" {
		t.Errorf("GetUserByEmail returned %+v, want id %d", byEmail, alice.ID)
	}

	byID, err := queries.GetUserByID(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if byID.Email != "alice@example.com" {
		t.Errorf("GetUserByID returned email %s", byID.Email)
	}

	t.Run("DuplicateEmailRejected", func(t *testing.T) {
		_, err := queries.CreateUser(ctx, CreateUserParams{
			Name:         "Impostor",
			Email:        "alice@example.com",
			PasswordHash: "x",
		})
		if err == nil {
			t.Error("expected unique constraint violation for duplicate email")
		}
	})
}

func TestPostLifecycle(t *testing.T) {
	_, queries := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, queries, "Alice", "alice@example.com")

	created, err := queries.CreatePost(ctx, CreatePostParams{
		Title:     "Test Post",
		Content:   "<p>Test content</p>\n",
		CreatedAt: time.Now().UTC(),
		AuthorID:  alice.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.AuthorID != alice.ID {
		t.Errorf("expected author %d, got %d", alice.ID, created.AuthorID)
	}

	got, err := queries.GetPost(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Content != "<p>Test content</p>\n" {
		t.Errorf("stored content %q", got.Content)
	}

	if err := queries.UpdatePost(ctx, UpdatePostParams{
		Title:   "Updated",
		Content: "<p>New content</p>\n",
		ID:      created.ID,
	}); err != nil {
		t.Fatal(err)
	}

	updated, err := queries.GetPost(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Updated" {
		t.Errorf("expected updated title, got %q", updated.Title)
	}
	if updated.AuthorID != alice.ID {
		t.Error("update must not reassign the author")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("update must not touch created_at")
	}

	if err := queries.DeletePost(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := queries.GetPost(ctx, created.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows after delete, got %v", err)
	}

	count, err := queries.CountPosts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected zero posts, got %d", count)
	}
}

func TestListPostsOrder(t *testing.T) {
	_, queries := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, queries, "Alice", "alice@example.com")

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := queries.CreatePost(ctx, CreatePostParams{
			Title:     "Post",
			Content:   "<p>c</p>\n",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			AuthorID:  alice.ID,
		}); err != nil {
			t.Fatal(err)
		}
	}

	posts, err := queries.ListPosts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 5 {
		t.Fatalf("expected 5 posts, got %d", len(posts))
	}
	for i := 1; i < len(posts); i++ {
		if !posts[i].CreatedAt.Before(posts[i-1].CreatedAt) {
			t.Errorf("posts not in strictly descending order at index %d", i)
		}
	}
	if posts[0].AuthorName != "Alice" {
		t.Errorf("expected joined author name, got %q", posts[0].AuthorName)
	}
}

package web

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/jamesedwarddillard-zz/blogful/internal/db"
	"github.com/jamesedwarddillard-zz/blogful/internal/logging"
	"github.com/jamesedwarddillard-zz/blogful/internal/markdown"
	"github.com/jamesedwarddillard-zz/blogful/internal/metrics"
	"github.com/jamesedwarddillard-zz/blogful/internal/middleware"
	"github.com/jamesedwarddillard-zz/blogful/internal/policies"
	"github.com/jamesedwarddillard-zz/blogful/internal/routes"
	"github.com/jamesedwarddillard-zz/blogful/internal/validator"
	"github.com/jamesedwarddillard-zz/blogful/internal/view/pages"
)

func handleHome(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	start := time.Now()

	user := middleware.SessionUser(deps.SessionManager, deps.Queries, r)

	posts, err := deps.Queries.ListPosts(r.Context())
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	templ.Handler(pages.Home(user, posts)).ServeHTTP(w, r)
	metrics.RenderDuration.WithLabelValues("home").Observe(time.Since(start).Seconds())
	return nil
}

func handlePostAddForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	user, _ := middleware.GetUser(r.Context())
	templ.Handler(pages.PostForm(user, "New post", routes.PostAdd, "", "", "")).ServeHTTP(w, r)
	return nil
}

func handlePostAdd(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Redirect(w, r, routes.Login, http.StatusSeeOther)
		return nil
	}

	title := r.FormValue("title")
	content := r.FormValue("content")

	logging.AddToEvent(r.Context(),
		slog.String("operation", "post_create"),
		slog.Int64("user_id", user.ID),
	)

	validation := validator.ValidatePost(title, content)
	if !validation.Valid {
		logging.AddToEvent(r.Context(),
			slog.String("outcome", "error"),
			slog.String("error_reason", "validation_failed"),
		)
		metrics.PostOperations.WithLabelValues("create", "invalid").Inc()
		templ.Handler(pages.PostForm(user, "New post", routes.PostAdd, title, content, validation.Message())).ServeHTTP(w, r)
		return nil
	}

	rendered, err := markdown.Render(content)
	if err != nil {
		return err
	}

	tx, err := deps.DB.BeginTx(r.Context(), nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := deps.Queries.WithTx(tx)

	post, err := qtx.CreatePost(r.Context(), db.CreatePostParams{
		Title:     strings.TrimSpace(title),
		Content:   rendered,
		CreatedAt: time.Now().UTC(),
		AuthorID:  user.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post: %w", err)
	}

	logging.AddToEvent(r.Context(),
		slog.String("outcome", "success"),
		slog.Int64("post_id", post.ID),
	)
	metrics.PostOperations.WithLabelValues("create", "success").Inc()

	http.Redirect(w, r, routes.Home, http.StatusFound)
	return nil
}

func handlePostEditForm(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	user, _ := middleware.GetUser(r.Context())

	post, found, err := resolvePost(deps, w, r)
	if err != nil || !found {
		return err
	}

	if !policies.CanMutatePost(user, post) {
		http.Redirect(w, r, routes.Home, http.StatusFound)
		return nil
	}

	templ.Handler(pages.PostForm(user, "Edit post", routes.PostEdit(post.ID), post.Title, post.Content, "")).ServeHTTP(w, r)
	return nil
}

func handlePostEdit(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	user, _ := middleware.GetUser(r.Context())

	post, found, err := resolvePost(deps, w, r)
	if err != nil || !found {
		return err
	}

	logging.AddToEvent(r.Context(),
		slog.String("operation", "post_edit"),
		slog.Int64("user_id", user.ID),
		slog.Int64("post_id", post.ID),
	)

	if !policies.CanMutatePost(user, post) {
		// Denial is indistinguishable from success on the wire: same
		// redirect, nothing mutated, nothing leaked about ownership.
		logging.AddToEvent(r.Context(), slog.String("outcome", "denied"))
		metrics.PostOperations.WithLabelValues("edit", "denied").Inc()
		http.Redirect(w, r, routes.Home, http.StatusFound)
		return nil
	}

	title := r.FormValue("title")
	content := r.FormValue("content")

	validation := validator.ValidatePost(title, content)
	if !validation.Valid {
		logging.AddToEvent(r.Context(),
			slog.String("outcome", "error"),
			slog.String("error_reason", "validation_failed"),
		)
		metrics.PostOperations.WithLabelValues("edit", "invalid").Inc()
		templ.Handler(pages.PostForm(user, "Edit post", routes.PostEdit(post.ID), title, content, validation.Message())).ServeHTTP(w, r)
		return nil
	}

	rendered, err := markdown.Render(content)
	if err != nil {
		return err
	}

	tx, err := deps.DB.BeginTx(r.Context(), nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := deps.Queries.WithTx(tx)

	if err := qtx.UpdatePost(r.Context(), db.UpdatePostParams{
		Title:   strings.TrimSpace(title),
		Content: rendered,
		ID:      post.ID,
	}); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post update: %w", err)
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"))
	metrics.PostOperations.WithLabelValues("edit", "success").Inc()

	http.Redirect(w, r, routes.Home, http.StatusFound)
	return nil
}

func handlePostDelete(deps HandlerDeps, w http.ResponseWriter, r *http.Request) error {
	user, _ := middleware.GetUser(r.Context())

	post, found, err := resolvePost(deps, w, r)
	if err != nil || !found {
		return err
	}

	logging.AddToEvent(r.Context(),
		slog.String("operation", "post_delete"),
		slog.Int64("user_id", user.ID),
		slog.Int64("post_id", post.ID),
	)

	if !policies.CanMutatePost(user, post) {
		logging.AddToEvent(r.Context(), slog.String("outcome", "denied"))
		metrics.PostOperations.WithLabelValues("delete", "denied").Inc()
		http.Redirect(w, r, routes.Home, http.StatusFound)
		return nil
	}

	tx, err := deps.DB.BeginTx(r.Context(), nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := deps.Queries.WithTx(tx)

	if err := qtx.DeletePost(r.Context(), post.ID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post delete: %w", err)
	}

	logging.AddToEvent(r.Context(), slog.String("outcome", "success"))
	metrics.PostOperations.WithLabelValues("delete", "success").Inc()

	http.Redirect(w, r, routes.Home, http.StatusFound)
	return nil
}

// resolvePost loads the post named by the {id} path segment. A bad or
// unknown id writes 404 and reports found=false; the ownership guard is
// never consulted for posts that do not exist.
func resolvePost(deps HandlerDeps, w http.ResponseWriter, r *http.Request) (db.Post, bool, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return db.Post{}, false, nil
	}

	post, err := deps.Queries.GetPost(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return db.Post{}, false, nil
	}
	if err != nil {
		return db.Post{}, false, fmt.Errorf("failed to load post %d: %w", id, err)
	}

	return post, true, nil
}

package policies

import (
	"testing"

	"github.com/jamesedwarddillard-zz/blogful/internal/db"
)

func TestCanMutatePost(t *testing.T) {
	author := db.User{ID: 2, Name: "Alice"}
	other := db.User{ID: 3, Name: "Eddie"}
	anonymous := db.User{}

	post := db.Post{ID: 10, AuthorID: 2}

	tests := []struct {
		name     string
		user     db.User
		post     db.Post
		expected bool
	}{
		{"author can mutate their post", author, post, true},
		{"other user is denied", other, post, false},
		{"anonymous principal is denied", anonymous, post, false},
		{"anonymous denied even for orphan row", anonymous, db.Post{ID: 11, AuthorID: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanMutatePost(tt.user, tt.post)
			if result != tt.expected {
				t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, result)
			}
		})
	}
}

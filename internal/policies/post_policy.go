package policies

import "github.com/jamesedwarddillard-zz/blogful/internal/db"

// CanMutatePost is the single authorization decision point for every
// post-mutating action (edit and delete share it so the two routes can
// never drift apart). Allow iff the principal is present and owns the
// post; an anonymous or mismatched principal is denied.
func CanMutatePost(user db.User, post db.Post) bool {
	return user.ID != 0 && user.ID == post.AuthorID
}

package routes

import "fmt"

const (
	Home     = "/"
	Login    = "/login"
	Logout   = "/logout"
	Register = "/register"
	PostAdd  = "/post/add"
	Health   = "/health"
	Metrics  = "/metrics"
)

// PostEdit generates the edit path for a post id.
func PostEdit(id int64) string {
	return fmt.Sprintf("/post/%d/edit", id)
}

// PostDelete generates the delete path for a post id.
func PostDelete(id int64) string {
	return fmt.Sprintf("/post/%d/delete", id)
}

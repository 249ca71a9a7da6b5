package models

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpsertProgressRequest is the body of POST /api/progress. Counts are
// pointers so a missing field can be told apart from zero.
type UpsertProgressRequest struct {
	Platform       string `json:"platform"`
	ProblemsSolved *int   `json:"problemsSolved"`
	TotalProblems  *int   `json:"totalProblems"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

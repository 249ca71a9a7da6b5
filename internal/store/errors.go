package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when the username or the email of a
	// new account is already taken.
	ErrUserAlreadyExists = errors.New("user with this email or username already exists")

	// ErrNoUserWasFound is returned when a lookup matches no user.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrProgressNotFound is returned when a progress record does not exist
	// or belongs to another user.
	ErrProgressNotFound = errors.New("progress entry was not found")

	// ErrProgressConflict is returned when an upsert still hits the
	// (user_id, platform) unique constraint.
	ErrProgressConflict = errors.New("progress entry conflict")

	// ErrProgressConstraint is returned when a record violates a CHECK
	// constraint (negative counts or solved above total).
	ErrProgressConstraint = errors.New("progress entry violates constraints")

	// ErrLocalSessionNotFound is returned by the client session repository
	// when nothing has been persisted.
	ErrLocalSessionNotFound = errors.New("local session not found")
)

// Low-level database operation errors. These wrap the driver error when a
// SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")
)

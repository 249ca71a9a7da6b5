package validators

import "math"

// Field name constants used to scope validation to a subset of fields.
const (
	// FieldPlatform targets the trimmed platform name of a progress record.
	FieldPlatform = "platform"

	// FieldProblemsSolved targets the solved counter.
	FieldProblemsSolved = "problems_solved"

	// FieldTotalProblems targets the total counter.
	FieldTotalProblems = "total_problems"

	// FieldSolvedWithinTotal targets the cross-field rule solved <= total.
	FieldSolvedWithinTotal = "solved_within_total"

	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Minimum lengths for registration input.
const (
	MinUsernameLength = 3
	MinPasswordLength = 6
)

// Upper bounds matching the storage columns. Lengths are in characters,
// except MaxPasswordBytes, which is bcrypt's input limit.
const (
	MaxUsernameLength = 64
	MaxEmailLength    = 255
	MaxPasswordBytes  = 72
	MaxPlatformLength = 128
	MaxProblems       = math.MaxInt32
)

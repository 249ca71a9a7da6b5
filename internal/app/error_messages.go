// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains message strings shared by the server handlers, the
// input validators and the client adapter.
//
// All Msg* constants are written into the "message" field of JSON response
// bodies. The client relies on the exact wording when it shows a server
// message verbatim, so the texts must stay stable.
package app

const (
	// MsgAPIRunning is the body of the health endpoint.
	MsgAPIRunning = "Coding Progress Tracker API is running!"

	// MsgInvalidJSON is returned when a request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgRouteNotFound is returned for unknown routes and unsupported methods.
	MsgRouteNotFound = "Route not found"

	// MsgInternalServerError is the generic fallback for unexpected failures.
	MsgInternalServerError = "Internal server error"

	// MsgNoToken is returned when the Authorization header is missing or
	// does not carry a bearer token.
	MsgNoToken = "No token provided, authorization denied"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token fails
	// verification for any reason.
	MsgTokenIsExpiredOrInvalid = "Token is not valid or has expired"

	MsgMissingRegistrationFields = "Please provide all required fields"
	MsgMissingLoginFields        = "Please provide email and password"
	MsgUsernameTooShort          = "Username must be at least 3 characters"
	MsgInvalidEmail              = "Please provide a valid email"
	MsgPasswordTooShort          = "Password must be at least 6 characters"
	MsgUsernameTooLong           = "Username must be at most 64 characters"
	MsgEmailTooLong              = "Email must be at most 255 characters"
	MsgPasswordTooLong           = "Password must be at most 72 bytes"

	// MsgUserAlreadyExists is returned when the username or the email is
	// already registered.
	MsgUserAlreadyExists = "User with this email or username already exists"

	// MsgInvalidCredentials is returned for an unknown email and for a wrong
	// password alike.
	MsgInvalidCredentials = "Invalid credentials"

	MsgRegistrationSuccessful = "Registration successful"
	MsgLoginSuccessful        = "Login successful"
	MsgRegistrationFailed     = "Server error during registration"
	MsgLoginFailed            = "Server error during login"

	MsgMissingProgressFields = "Please provide platform, problemsSolved, and totalProblems"
	MsgNegativeProblems      = "Problems cannot be negative"
	MsgSolvedExceedsTotal    = "Problems solved cannot exceed total problems"
	MsgPlatformTooLong       = "Platform must be at most 128 characters"
	MsgTooManyProblems       = "Problems cannot exceed 2147483647"

	MsgProgressUpdated      = "Progress updated successfully"
	MsgProgressDeleted      = "Progress deleted successfully"
	MsgProgressNotFound     = "Progress entry not found or unauthorized"
	MsgFetchProgressFailed  = "Server error fetching progress"
	MsgUpdateProgressFailed = "Server error updating progress"
	MsgDeleteProgressFailed = "Server error deleting progress"
)

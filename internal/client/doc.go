// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It restores a saved session or runs the login flow, then keeps the user on
// the progress dashboard until they quit. Logging out returns to the login
// flow within the same process.
package client

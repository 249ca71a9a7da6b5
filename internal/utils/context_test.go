// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	if UserIDCtxKey.String() != "userID" {
		t.Errorf("expected 'userID', got '%s'", UserIDCtxKey.String())
	}
}

func TestGetUserIDFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDCtxKey, "0195b5f2-0000-7000-8000-000000000001")

	userID, ok := GetUserIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if userID != "0195b5f2-0000-7000-8000-000000000001" {
		t.Errorf("unexpected userID %q", userID)
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	userID, ok := GetUserIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if userID != "" {
		t.Errorf("expected empty userID, got %q", userID)
	}
}

func TestGetUserIDFromContext_WrongTypeOrEmpty(t *testing.T) {
	for _, v := range []any{int64(42), ""} {
		ctx := context.WithValue(context.Background(), UserIDCtxKey, v)
		if _, ok := GetUserIDFromContext(ctx); ok {
			t.Errorf("expected ok=false for %#v", v)
		}
	}
}

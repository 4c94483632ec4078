package errors

import (
	// Go Internal Packages
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(PermissionDeniedErr("update")); got != PermissionDenied {
		t.Fatalf("kind = %v; want permission denied", got)
	}
	if got := KindOf(RemoteErr("fetch", fmt.Errorf("timeout"))); got != Unavailable {
		t.Fatalf("kind = %v; want unavailable", got)
	}
	if got := KindOf(fmt.Errorf("plain")); got != Other {
		t.Fatalf("kind = %v; want other for plain errors", got)
	}
	if got := KindOf(nil); got != Other {
		t.Fatalf("kind = %v; want other for nil", got)
	}

	wrapped := fmt.Errorf("context: %w", PermissionDeniedErr("remove"))
	if got := KindOf(wrapped); got != PermissionDenied {
		t.Fatalf("kind = %v; wrapping must not hide the kind", got)
	}
}

func TestValidationErrs(t *testing.T) {
	ve := ValidationErrs()
	if ve.Err() != nil {
		t.Fatalf("empty validation set should yield nil")
	}

	ve.Add("amount", "cannot be empty")
	ve.Add("to", "cannot be empty")
	err := ve.Err()
	if err == nil {
		t.Fatalf("expected error after adds")
	}
	want := "amount: cannot be empty; to: cannot be empty"
	if err.Error() != want {
		t.Fatalf("message = %q; want %q", err.Error(), want)
	}
}

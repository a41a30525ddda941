package ratelimit_test

import (
	"testing"
	"time"

	"github.com/thecityofwhiteplains/cityguide/internal/app/store/ratelimit"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
)

func TestAllowsFreshEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := ratelimit.New(db, 5, 15*time.Minute, 30*time.Minute)

	allowed, remaining, lockedUntil := store.CheckAllowed(ctx, "fresh@example.com")
	if !allowed {
		t.Fatal("fresh email should be allowed")
	}
	if remaining != 5 {
		t.Errorf("remaining: got %d, want 5", remaining)
	}
	if lockedUntil != nil {
		t.Errorf("lockedUntil should be nil, got %v", lockedUntil)
	}
}

func TestFailuresCountDown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := ratelimit.New(db, 3, 15*time.Minute, 30*time.Minute)

	locked, _ := store.RecordFailure(ctx, "Shaky@Example.com")
	if locked {
		t.Fatal("first failure should not lock")
	}

	// Email lookup is case-insensitive.
	allowed, remaining, _ := store.CheckAllowed(ctx, "shaky@example.com")
	if !allowed {
		t.Fatal("should still be allowed after one failure")
	}
	if remaining != 2 {
		t.Errorf("remaining: got %d, want 2", remaining)
	}
}

func TestLockoutAfterMaxAttempts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := ratelimit.New(db, 3, 15*time.Minute, 30*time.Minute)

	email := "locked@example.com"
	var locked bool
	var until *time.Time
	for i := 0; i < 3; i++ {
		locked, until = store.RecordFailure(ctx, email)
	}
	if !locked {
		t.Fatal("third failure should trigger lockout")
	}
	if until == nil || !until.After(time.Now()) {
		t.Fatalf("lockout expiry should be in the future, got %v", until)
	}

	allowed, remaining, lockedUntil := store.CheckAllowed(ctx, email)
	if allowed {
		t.Fatal("locked email should not be allowed")
	}
	if remaining != -1 {
		t.Errorf("remaining: got %d, want -1 while locked", remaining)
	}
	if lockedUntil == nil {
		t.Error("lockedUntil should be set while locked")
	}
}

func TestClearOnSuccessResets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := ratelimit.New(db, 3, 15*time.Minute, 30*time.Minute)

	email := "recovered@example.com"
	for i := 0; i < 3; i++ {
		store.RecordFailure(ctx, email)
	}
	if allowed, _, _ := store.CheckAllowed(ctx, email); allowed {
		t.Fatal("should be locked before clearing")
	}

	if err := store.ClearOnSuccess(ctx, email); err != nil {
		t.Fatalf("clear: %v", err)
	}

	allowed, remaining, _ := store.CheckAllowed(ctx, email)
	if !allowed {
		t.Fatal("cleared email should be allowed again")
	}
	if remaining != 3 {
		t.Errorf("remaining: got %d, want 3 after clear", remaining)
	}
}

package reactionstore

import (
	"testing"

	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
)

func TestIncrementCreatesAndBumps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	counter, err := s.Increment(ctx, "blog/fall-guide", models.ReactionUp)
	if err != nil {
		t.Fatalf("first increment: %v", err)
	}
	if counter.Up != 1 || counter.Down != 0 || counter.Share != 0 {
		t.Errorf("after first up: got %+v", counter)
	}

	counter, err = s.Increment(ctx, "blog/fall-guide", models.ReactionUp)
	if err != nil {
		t.Fatalf("second increment: %v", err)
	}
	if counter.Up != 2 {
		t.Errorf("up count: got %d, want 2", counter.Up)
	}

	counter, err = s.Increment(ctx, "blog/fall-guide", models.ReactionShare)
	if err != nil {
		t.Fatalf("share increment: %v", err)
	}
	if counter.Up != 2 || counter.Share != 1 {
		t.Errorf("mixed counts: got %+v", counter)
	}
}

func TestIncrementRejectsUnknownKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := s.Increment(ctx, "blog/fall-guide", "sparkle"); err == nil {
		t.Fatal("unknown kind should be rejected")
	}

	// Nothing should have been written.
	counter, err := s.Get(ctx, "blog/fall-guide")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if counter.Up != 0 || counter.Down != 0 || counter.Share != 0 {
		t.Errorf("counters after rejected kind: got %+v", counter)
	}
}

func TestGetUnknownSlugReadsZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	counter, err := s.Get(ctx, "never/reacted")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if counter.Slug != "never/reacted" {
		t.Errorf("slug: got %q", counter.Slug)
	}
	if counter.Up != 0 || counter.Down != 0 || counter.Share != 0 {
		t.Errorf("zero counters expected, got %+v", counter)
	}
}

package workflow

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	eventsubstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/eventsubs"
	listingstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/listings"
	submissionstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/submissions"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
)

// recordingNotifier captures notification calls for assertions.
type recordingNotifier struct {
	approved []string
	rejected []string
	events   []string
}

func (n *recordingNotifier) BusinessApproved(_ context.Context, sub models.BusinessSubmission, _ models.BusinessListing) {
	n.approved = append(n.approved, sub.BusinessName)
}

func (n *recordingNotifier) BusinessRejected(_ context.Context, sub models.BusinessSubmission, _ string) {
	n.rejected = append(n.rejected, sub.BusinessName)
}

func (n *recordingNotifier) EventDecision(_ context.Context, sub models.EventSubmission, _ bool, _ string) {
	n.events = append(n.events, sub.Title)
}

func newTestModerator(t *testing.T) (*Moderator, *mongo.Database, *recordingNotifier) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	notifier := &recordingNotifier{}
	return New(db, notifier, zap.NewNop()), db, notifier
}

func submitBusiness(t *testing.T, db *mongo.Database, name string) primitive.ObjectID {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id, err := submissionstore.New(db).Create(ctx, models.BusinessSubmission{
		BusinessName: name,
		Mode:         models.SubmissionModeNew,
		Category:     "cafe",
		ContactName:  "Pat Tester",
		ContactEmail: "pat@example.com",
		Address:      "123 Main St",
	})
	if err != nil {
		t.Fatalf("create submission: %v", err)
	}
	return id
}

func TestApproveBusinessPublishesListing(t *testing.T) {
	m, db, notifier := newTestModerator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id := submitBusiness(t, db, "Calm Corner Coffee")

	listing, err := m.ApproveBusiness(ctx, id)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if listing.Slug != "calm-corner-coffee" {
		t.Errorf("slug: got %q, want %q", listing.Slug, "calm-corner-coffee")
	}
	if !listing.IsPublished {
		t.Error("listing should be published")
	}
	if listing.SourceSubmissionID == nil || *listing.SourceSubmissionID != id {
		t.Error("listing should link back to its source submission")
	}

	sub, err := submissionstore.New(db).GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	if sub.Status != models.SubmissionStatusApproved {
		t.Errorf("submission status: got %q, want approved", sub.Status)
	}

	if len(notifier.approved) != 1 || notifier.approved[0] != "Calm Corner Coffee" {
		t.Errorf("approval notification: got %v", notifier.approved)
	}

	published, err := listingstore.New(db).GetPublished(ctx, 10)
	if err != nil {
		t.Fatalf("get published: %v", err)
	}
	if len(published) != 1 {
		t.Fatalf("published listings: got %d, want 1", len(published))
	}
}

func TestApproveBusinessIsIdempotent(t *testing.T) {
	m, db, _ := newTestModerator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id := submitBusiness(t, db, "Harbor Books")

	first, err := m.ApproveBusiness(ctx, id)
	if err != nil {
		t.Fatalf("first approve: %v", err)
	}
	second, err := m.ApproveBusiness(ctx, id)
	if err != nil {
		t.Fatalf("second approve: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("re-approval minted a new listing: %s vs %s", first.ID.Hex(), second.ID.Hex())
	}
	if first.Slug != second.Slug {
		t.Errorf("re-approval changed slug: %q vs %q", first.Slug, second.Slug)
	}

	published, err := listingstore.New(db).GetPublished(ctx, 10)
	if err != nil {
		t.Fatalf("get published: %v", err)
	}
	if len(published) != 1 {
		t.Fatalf("published listings after re-approval: got %d, want 1", len(published))
	}
}

func TestSlugCollisionGetsSuffix(t *testing.T) {
	m, db, _ := newTestModerator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	firstID := submitBusiness(t, db, "Main Street Deli")
	secondID := submitBusiness(t, db, "Main Street Deli")

	first, err := m.ApproveBusiness(ctx, firstID)
	if err != nil {
		t.Fatalf("approve first: %v", err)
	}
	second, err := m.ApproveBusiness(ctx, secondID)
	if err != nil {
		t.Fatalf("approve second: %v", err)
	}

	if first.Slug != "main-street-deli" {
		t.Errorf("first slug: got %q", first.Slug)
	}
	if second.Slug != "main-street-deli-2" {
		t.Errorf("second slug: got %q, want main-street-deli-2", second.Slug)
	}
}

func TestRejectBusinessRetractsListing(t *testing.T) {
	m, db, notifier := newTestModerator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id := submitBusiness(t, db, "Sunset Yoga")

	listing, err := m.ApproveBusiness(ctx, id)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	if err := m.RejectBusiness(ctx, id, "duplicate entry"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	got, err := listingstore.New(db).GetByID(ctx, listing.ID)
	if err != nil {
		t.Fatalf("get listing: %v", err)
	}
	if got.IsPublished {
		t.Error("listing should be retracted after rejection")
	}

	sub, err := submissionstore.New(db).GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	if sub.Status != models.SubmissionStatusRejected {
		t.Errorf("submission status: got %q, want rejected", sub.Status)
	}

	if len(notifier.rejected) != 1 {
		t.Errorf("rejection notifications: got %d, want 1", len(notifier.rejected))
	}
}

func TestRejectBusinessWithoutListing(t *testing.T) {
	m, db, _ := newTestModerator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id := submitBusiness(t, db, "Never Approved")

	if err := m.RejectBusiness(ctx, id, "not a real business"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	sub, err := submissionstore.New(db).GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	if sub.Status != models.SubmissionStatusRejected {
		t.Errorf("submission status: got %q, want rejected", sub.Status)
	}
}

func TestDecideBusinessRejectsBadStatus(t *testing.T) {
	m, db, _ := newTestModerator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id := submitBusiness(t, db, "Status Check Cafe")

	if _, _, err := m.DecideBusiness(ctx, id, "maybe", ""); err != ErrBadStatus {
		t.Fatalf("decide with bad status: got %v, want ErrBadStatus", err)
	}

	// The submission must be untouched.
	sub, err := submissionstore.New(db).GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	if sub.Status != models.SubmissionStatusPending {
		t.Errorf("submission status: got %q, want pending", sub.Status)
	}
}

func TestDecideBusinessNotFound(t *testing.T) {
	m, _, _ := newTestModerator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, _, err := m.DecideBusiness(ctx, primitive.NewObjectID(), models.SubmissionStatusApproved, "")
	if err != ErrNotFound {
		t.Fatalf("decide missing submission: got %v, want ErrNotFound", err)
	}
}

func TestDecideBusinessReturnsUpdatedDocuments(t *testing.T) {
	m, db, _ := newTestModerator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id := submitBusiness(t, db, "River Walk Bakery")

	sub, listing, err := m.DecideBusiness(ctx, id, models.SubmissionStatusApproved, "")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if sub.Status != models.SubmissionStatusApproved {
		t.Errorf("returned submission status: got %q, want approved", sub.Status)
	}
	if listing == nil || listing.Slug != "river-walk-bakery" {
		t.Errorf("returned listing: got %+v", listing)
	}

	sub, listing, err = m.DecideBusiness(ctx, id, models.SubmissionStatusRejected, "changed our mind")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if sub.Status != models.SubmissionStatusRejected {
		t.Errorf("returned submission status: got %q, want rejected", sub.Status)
	}
	if listing != nil {
		t.Errorf("rejection should not return a listing, got %+v", listing)
	}
}

func TestParseID(t *testing.T) {
	for _, raw := range []string{"", "undefined", "null", "not-hex", "123"} {
		if _, err := ParseID(raw); err != ErrInvalidID {
			t.Errorf("ParseID(%q): got %v, want ErrInvalidID", raw, err)
		}
	}

	want := primitive.NewObjectID()
	got, err := ParseID(want.Hex())
	if err != nil {
		t.Fatalf("ParseID valid hex: %v", err)
	}
	if got != want {
		t.Errorf("ParseID round trip: got %s, want %s", got.Hex(), want.Hex())
	}
}

func TestDecideEvent(t *testing.T) {
	m, db, notifier := newTestModerator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	events := eventsubstore.New(db)
	id, err := events.Create(ctx, models.EventSubmission{
		Title:        "Park Cleanup",
		StartAt:      time.Now().Add(48 * time.Hour).UTC(),
		Location:     "Turnure Park",
		Audience:     models.EventAudienceFamily,
		ContactName:  "Pat Tester",
		ContactEmail: "pat@example.com",
	})
	if err != nil {
		t.Fatalf("create event submission: %v", err)
	}

	if _, err := m.DecideEvent(ctx, id, "soonish", "", true); err != ErrBadStatus {
		t.Fatalf("decide with bad status: got %v, want ErrBadStatus", err)
	}

	sub, err := m.DecideEvent(ctx, id, models.SubmissionStatusApproved, "", true)
	if err != nil {
		t.Fatalf("approve event: %v", err)
	}
	if sub.Status != models.SubmissionStatusApproved {
		t.Errorf("returned event status: got %q, want approved", sub.Status)
	}
	if sub.LastReviewedAt == nil {
		t.Error("approval should stamp LastReviewedAt")
	}

	stored, err := events.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get event submission: %v", err)
	}
	if stored.Status != models.SubmissionStatusApproved {
		t.Errorf("event status: got %q, want approved", stored.Status)
	}

	if _, err := m.DecideEvent(ctx, primitive.NewObjectID(), models.SubmissionStatusRejected, "no", true); err != ErrNotFound {
		t.Fatalf("decide missing event: got %v, want ErrNotFound", err)
	}

	if len(notifier.events) != 1 {
		t.Errorf("event notifications: got %d, want 1", len(notifier.events))
	}
}

func TestDecideEventWithoutEmail(t *testing.T) {
	m, db, notifier := newTestModerator(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	events := eventsubstore.New(db)
	id, err := events.Create(ctx, models.EventSubmission{
		Title:        "Quiet Reading Hour",
		StartAt:      time.Now().Add(24 * time.Hour).UTC(),
		Location:     "Library Plaza",
		ContactName:  "Sam Tester",
		ContactEmail: "sam@example.com",
	})
	if err != nil {
		t.Fatalf("create event submission: %v", err)
	}

	sub, err := m.DecideEvent(ctx, id, models.SubmissionStatusRejected, "duplicate", false)
	if err != nil {
		t.Fatalf("reject event: %v", err)
	}
	if sub.Status != models.SubmissionStatusRejected {
		t.Errorf("returned event status: got %q, want rejected", sub.Status)
	}

	// The decision sticks, but nothing may be sent to the submitter.
	if len(notifier.events) != 0 {
		t.Errorf("event notifications: got %d, want 0", len(notifier.events))
	}
}

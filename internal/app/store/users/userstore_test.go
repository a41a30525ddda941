package userstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	userstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/users"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
)

func TestCreateNormalizes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := userstore.New(db)

	created, err := store.Create(ctx, models.AdminUser{
		FullName:     "  Dana Reyes  ",
		Email:        " Dana@Example.COM ",
		PasswordHash: "x",
		Role:         models.RoleEditor,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Email != "dana@example.com" {
		t.Errorf("email: got %q", created.Email)
	}
	if created.FullName != "Dana Reyes" {
		t.Errorf("full name: got %q", created.FullName)
	}
	if created.Status != models.UserStatusActive {
		t.Errorf("status should default to active, got %q", created.Status)
	}

	// Lookup accepts any casing.
	got, err := store.GetByEmail(ctx, "DANA@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != created.ID {
		t.Error("lookup returned a different user")
	}
}

func TestCreateRejectsBadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := userstore.New(db)

	_, err := store.Create(ctx, models.AdminUser{
		FullName:     "Nobody",
		Email:        "nobody@example.com",
		PasswordHash: "x",
		Role:         "superuser",
	})
	if err == nil {
		t.Fatal("unknown role should be rejected")
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := userstore.New(db)

	u := models.AdminUser{
		FullName:     "First",
		Email:        "twice@example.com",
		PasswordHash: "x",
		Role:         models.RoleAdmin,
	}
	if _, err := store.Create(ctx, u); err != nil {
		t.Fatalf("first create: %v", err)
	}
	u.FullName = "Second"
	if _, err := store.Create(ctx, u); err != userstore.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestSetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := userstore.New(db)

	created, err := store.Create(ctx, models.AdminUser{
		FullName:     "Toggled",
		Email:        "toggle@example.com",
		PasswordHash: "x",
		Role:         models.RoleEditor,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.SetStatus(ctx, created.ID, models.UserStatusDisabled); err != nil {
		t.Fatalf("set status: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.UserStatusDisabled {
		t.Errorf("status: got %q", got.Status)
	}
}

func TestRecordLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := userstore.New(db)

	created, err := store.Create(ctx, models.AdminUser{
		FullName:     "Visitor",
		Email:        "visitor@example.com",
		PasswordHash: "x",
		Role:         models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.RecordLogin(ctx, created.ID); err != nil {
		t.Fatalf("record login: %v", err)
	}
	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LastLoginAt == nil {
		t.Error("last login should be stamped")
	}
}

func TestGetMissingUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := userstore.New(db)

	if _, err := store.GetByEmail(ctx, "ghost@example.com"); err != mongo.ErrNoDocuments {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

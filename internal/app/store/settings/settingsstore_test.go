package settingstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	settingstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/settings"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
)

func TestUpsertAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := settingstore.New(db)

	rec := models.ConfigRecord{
		Key: models.ConfigKeyPromoCard,
		PromoCard: &models.PromoCard{
			Enabled:    true,
			Title:      "Restaurant Week",
			ButtonText: "See menus",
			Link:       "/dining",
		},
	}
	if err := store.Upsert(ctx, rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.Get(ctx, models.ConfigKeyPromoCard)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PromoCard == nil || got.PromoCard.Title != "Restaurant Week" {
		t.Fatalf("promo card not stored: %+v", got.PromoCard)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should be stamped")
	}

	// Upsert again replaces in place, no second document.
	rec.PromoCard.Title = "Winter Festival"
	if err := store.Upsert(ctx, rec); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err = store.Get(ctx, models.ConfigKeyPromoCard)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.PromoCard.Title != "Winter Festival" {
		t.Errorf("title: got %q, want updated value", got.PromoCard.Title)
	}
}

func TestUpsertRejectsUnknownKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := settingstore.New(db)

	err := store.Upsert(ctx, models.ConfigRecord{Key: "secret_sauce"})
	if err == nil {
		t.Fatal("unknown key should be rejected")
	}
}

func TestUpsertRejectsMissingPayload(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := settingstore.New(db)

	err := store.Upsert(ctx, models.ConfigRecord{Key: models.ConfigKeyHeroImages})
	if err == nil {
		t.Fatal("record without its group payload should be rejected")
	}
}

func TestGetMissingGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := settingstore.New(db)

	if _, err := store.Get(ctx, models.ConfigKeyStartCards); err != mongo.ErrNoDocuments {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}

	exists, err := store.Exists(ctx, models.ConfigKeyStartCards)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Error("unset group should not exist")
	}
}

func TestGetSiteConfigMergesGroups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	store := settingstore.New(db)

	if err := store.Upsert(ctx, models.ConfigRecord{
		Key: models.ConfigKeyHeroImages,
		HeroImages: &models.HeroImages{Images: []models.HeroImage{
			{Page: "home", ImageURL: "https://cdn.example.com/hero.jpg"},
		}},
	}); err != nil {
		t.Fatalf("upsert heroes: %v", err)
	}
	if err := store.Upsert(ctx, models.ConfigRecord{
		Key:              models.ConfigKeySiteVerification,
		SiteVerification: &models.SiteVerification{Provider: "google", Snippet: "<meta name=\"gsv\">"},
	}); err != nil {
		t.Fatalf("upsert verification: %v", err)
	}

	cfg, err := store.GetSiteConfig(ctx)
	if err != nil {
		t.Fatalf("site config: %v", err)
	}
	if len(cfg.HeroImages.Images) != 1 || cfg.HeroImages.Images[0].Page != "home" {
		t.Errorf("hero images: %+v", cfg.HeroImages)
	}
	if cfg.SiteVerification.Provider != "google" {
		t.Errorf("verification: %+v", cfg.SiteVerification)
	}
	// Groups never written read as zero values.
	if cfg.PromoCard.Enabled || len(cfg.StartCards.Cards) != 0 {
		t.Errorf("unset groups should be zero: %+v %+v", cfg.PromoCard, cfg.StartCards)
	}
}

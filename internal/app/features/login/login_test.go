package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	errorsfeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/errors"
	loginfeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/login"
	"github.com/thecityofwhiteplains/cityguide/internal/app/store/ratelimit"
	userstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/users"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/auth"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/authutil"
	"github.com/thecityofwhiteplains/cityguide/internal/domain/models"
	"github.com/thecityofwhiteplains/cityguide/internal/testutil"
)

const testSessionKey = "0123456789abcdef0123456789abcdef-test"

func newLoginRouter(t *testing.T, db *mongo.Database, rl *ratelimit.Store) http.Handler {
	t.Helper()
	testutil.MustBootTemplates(t)

	sessionMgr, err := auth.NewSessionManager(testSessionKey, "cityguide-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}

	h := loginfeature.NewHandler(db, sessionMgr, errorsfeature.NewErrorLogger(zap.NewNop()), rl, zap.NewNop())
	return loginfeature.Routes(h)
}

func seedUser(t *testing.T, db *mongo.Database, email, password, status string) {
	t.Helper()
	hash, err := authutil.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := users.Create(ctx, models.AdminUser{
		FullName:     "Console User",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Status:       status,
	}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func postLogin(t *testing.T, router http.Handler, email, password string) *testutil.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestShowLoginPage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newLoginRouter(t, db, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Sign in")
}

func TestLoginSuccessRedirects(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedUser(t, db, "staff@example.com", "open-sesame", models.UserStatusActive)
	router := newLoginRouter(t, db, nil)

	rec := postLogin(t, router, "staff@example.com", "open-sesame")
	rec.AssertRedirect(t, "/admin")

	// A session cookie is issued.
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie on successful login")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedUser(t, db, "staff@example.com", "open-sesame", models.UserStatusActive)
	router := newLoginRouter(t, db, nil)

	rec := postLogin(t, router, "staff@example.com", "wrong")
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Invalid credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newLoginRouter(t, db, nil)

	rec := postLogin(t, router, "nobody@example.com", "whatever")
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Invalid credentials")
}

func TestLoginDisabledAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedUser(t, db, "gone@example.com", "open-sesame", models.UserStatusDisabled)
	router := newLoginRouter(t, db, nil)

	rec := postLogin(t, router, "gone@example.com", "open-sesame")
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Account is disabled")
}

func TestLoginMissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newLoginRouter(t, db, nil)

	rec := postLogin(t, router, "", "")
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Please enter your email and password")
}

func TestLoginLockout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedUser(t, db, "target@example.com", "open-sesame", models.UserStatusActive)
	rl := ratelimit.New(db, 3, 15*time.Minute, 30*time.Minute)
	router := newLoginRouter(t, db, rl)

	for i := 0; i < 2; i++ {
		postLogin(t, router, "target@example.com", "wrong").
			AssertContains(t, "Invalid credentials")
	}
	rec := postLogin(t, router, "target@example.com", "wrong")
	rec.AssertContains(t, "Too many failed login attempts")

	// Even the right password is refused while locked.
	rec = postLogin(t, router, "target@example.com", "open-sesame")
	rec.AssertContains(t, "Too many failed login attempts")
}

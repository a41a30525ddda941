// internal/app/features/login/login.go
package login

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	errorsfeature "github.com/thecityofwhiteplains/cityguide/internal/app/features/errors"
	"github.com/thecityofwhiteplains/cityguide/internal/app/store/ratelimit"
	userstore "github.com/thecityofwhiteplains/cityguide/internal/app/store/users"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/auth"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/authutil"
	"github.com/thecityofwhiteplains/cityguide/internal/app/system/formutil"
)

// Handler provides admin console sign-in handlers. Authentication is
// password-only; accounts are created by seeding or by another admin.
type Handler struct {
	userStore      *userstore.Store
	rateLimitStore *ratelimit.Store // nil if rate limiting disabled
	sessionMgr     *auth.SessionManager
	errLog         *errorsfeature.ErrorLogger
	logger         *zap.Logger
}

// NewHandler creates a new login Handler.
// rateLimitStore can be nil to disable rate limiting.
func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *errorsfeature.ErrorLogger,
	rateLimitStore *ratelimit.Store,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		userStore:      userstore.New(db),
		rateLimitStore: rateLimitStore,
		sessionMgr:     sessionMgr,
		errLog:         errLog,
		logger:         logger,
	}
}

// LoginVM is the view model for the login page.
type LoginVM struct {
	formutil.Base
	Email     string
	ReturnURL string
}

// Routes returns a chi.Router with login routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.showLogin)
	r.Post("/", h.handleLogin)

	return r
}

// showLogin displays the sign-in page.
func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	vm := LoginVM{
		Base:      formutil.NewBase(r, "Sign In", "/"),
		ReturnURL: query.Get(r, "return"),
	}

	templates.Render(w, r, "login/index", vm)
}

// handleLogin processes the sign-in form.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	returnURL := r.FormValue("return")

	render := func(msg string) {
		vm := LoginVM{
			Base:      formutil.NewBase(r, "Sign In", "/"),
			Email:     email,
			ReturnURL: returnURL,
		}
		vm.SetError(msg)
		templates.Render(w, r, "login/index", vm)
	}

	if email == "" || password == "" {
		render("Please enter your email and password")
		return
	}

	// Check rate limit before touching credentials
	if h.rateLimitStore != nil {
		allowed, _, lockedUntil := h.rateLimitStore.CheckAllowed(r.Context(), email)
		if !allowed {
			render(lockoutMessage(lockedUntil))
			return
		}
	}

	user, err := h.userStore.GetByEmail(r.Context(), email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Record failure even though the account does not exist, so
			// enumeration probes hit the same lockout.
			if h.rateLimitStore != nil {
				h.rateLimitStore.RecordFailure(r.Context(), email)
			}
			h.logger.Info("login failed: unknown email", zap.String("email", email))
			render("Invalid credentials")
			return
		}
		h.errLog.Log(r, "database error during login lookup", err)
		render("Service temporarily unavailable. Please try again.")
		return
	}

	if !user.IsActive() {
		if h.rateLimitStore != nil {
			h.rateLimitStore.RecordFailure(r.Context(), email)
		}
		h.logger.Info("login failed: account disabled", zap.String("user_id", user.ID.Hex()))
		render("Account is disabled")
		return
	}

	if user.PasswordHash == "" || !authutil.CheckPassword(user.PasswordHash, password) {
		if h.rateLimitStore != nil {
			lockedOut, lockedUntil := h.rateLimitStore.RecordFailure(r.Context(), email)
			if lockedOut {
				h.logger.Warn("login locked out", zap.String("email", email))
				render(lockoutMessage(lockedUntil))
				return
			}
		}
		h.logger.Info("login failed: wrong password", zap.String("user_id", user.ID.Hex()))
		render("Invalid credentials")
		return
	}

	if h.rateLimitStore != nil {
		h.rateLimitStore.ClearOnSuccess(r.Context(), email)
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		h.errLog.Log(r, "failed to generate session token", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := h.sessionMgr.CreateSession(w, r, user.ID, user.Role, token); err != nil {
		h.errLog.Log(r, "failed to create session", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Best effort - a failed timestamp update never blocks sign-in.
	if err := h.userStore.RecordLogin(r.Context(), user.ID); err != nil {
		h.logger.Warn("failed to record login time", zap.Error(err))
	}

	h.logger.Info("user signed in", zap.String("user_id", user.ID.Hex()))

	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/admin"), http.StatusSeeOther)
}

// Logout destroys the session and returns to the sign-in page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.logger.Info("user signed out", zap.String("user_id", u.ID))
	}
	h.sessionMgr.DestroySession(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func lockoutMessage(lockedUntil *time.Time) string {
	if lockedUntil == nil {
		return "Too many failed login attempts. Please try again later."
	}
	remaining := time.Until(*lockedUntil)
	if remaining > time.Minute {
		return fmt.Sprintf("Too many failed login attempts. Please try again in %d minute(s).", int(remaining.Minutes())+1)
	}
	return fmt.Sprintf("Too many failed login attempts. Please try again in %d second(s).", int(remaining.Seconds())+1)
}

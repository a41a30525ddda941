// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/auth"
)

// SiteName is the display name used across the admin console.
const SiteName = "White Plains Guide"

// BaseVM contains common fields for all admin console view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type queueData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	UserID     string
	Role       string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF token for forms (use in hidden input field)
	CSRFToken string
}

// NewBaseVM creates a fully populated BaseVM for a console page.
//
// Parameters:
//   - r: the HTTP request
//   - title: the page title
//   - backDefault: default URL for the back button if none in request
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	vm := BaseVM{
		SiteName:    SiteName,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}

	if user, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.UserID = user.ID
		vm.Role = user.Role
		vm.UserName = user.Name
	}

	return vm
}

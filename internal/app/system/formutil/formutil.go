// Package formutil provides helpers for form re-rendering with validation errors.
//
// When a console form submission fails validation, the form is re-rendered
// with the user's previously entered values echoed back and an error message
// explaining what went wrong. Base carries the common fields for that.
package formutil

import (
	"html/template"
	"net/http"

	"github.com/thecityofwhiteplains/cityguide/internal/app/system/viewdata"
)

// Base contains common fields for form pages that can be embedded in form
// data structs. It embeds viewdata.BaseVM and adds Error for validation.
type Base struct {
	viewdata.BaseVM
	Error template.HTML
}

// NewBase creates a fully populated Base for a form page.
func NewBase(r *http.Request, title, backDefault string) Base {
	return Base{
		BaseVM: viewdata.NewBaseVM(r, title, backDefault),
	}
}

// SetError sets the error message on a Base struct.
func (b *Base) SetError(msg string) {
	b.Error = template.HTML(msg)
}

// Package htmlsanitize sanitizes HTML destined for public pages.
//
// Two policies cover the two kinds of input this app stores:
//   - Body: blog post bodies written in the admin editor. Rich formatting is
//     allowed; scripts and event handlers are stripped.
//   - Text: free text from public forms (submission notes, descriptions,
//     accessibility notes). No markup survives.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	bodyPolicy = newBodyPolicy()
	textPolicy = bluemonday.StrictPolicy()
)

func newBodyPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// The editor emits class-styled figures and embeds images by URL.
	p.AllowAttrs("class").OnElements("p", "figure", "figcaption", "blockquote", "div", "span")
	p.AllowAttrs("src", "alt", "width", "height").OnElements("img")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Body sanitizes admin-authored rich HTML (blog bodies).
func Body(html string) string {
	return bodyPolicy.Sanitize(html)
}

// Text strips all markup from public-form free text.
func Text(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

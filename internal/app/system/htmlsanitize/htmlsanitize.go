// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe HTML from rich-text input. Text lesson
// bodies come from the dashboard's rich text editor and are rendered back to
// students, so they pass through a fixed policy before storage.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy is a UGC policy widened for editor output: tables (with class,
// style, colspan, rowspan) and the extra formatting tags the editor emits.
var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "sub", "sup", "mark")
	p.AllowAttrs("class", "style", "colspan", "rowspan").
		OnElements("table", "thead", "tbody", "tr", "th", "td")
	return p
}

// Sanitize returns s with scripts, event handlers, iframes, and
// javascript:/data: URLs removed. Formatting tags, lists, headings, code
// blocks, tables, and safe links survive.
func Sanitize(s string) string {
	return policy.Sanitize(s)
}

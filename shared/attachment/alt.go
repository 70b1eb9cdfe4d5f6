package attachment

import "github.com/microcosm-cc/bluemonday"

var altPolicy = bluemonday.StrictPolicy()

// AltText strips markup from a formatted description so it can be placed into
// an HTML alt attribute. Text is returned HTML-escaped.
func AltText(description string) string {
	return altPolicy.Sanitize(description)
}

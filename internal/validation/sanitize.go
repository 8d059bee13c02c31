package validation

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips markup from free text typed by customers or admins and
// collapses runs of whitespace. Entities escaped by the policy are restored so
// "Tom & Jerry" survives unchanged.
func SanitizeText(s string) string {
	clean := html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}

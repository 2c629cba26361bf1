package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeDisplayText strips unsafe markup from heading/paragraph text so
// blueprint authors can use basic inline formatting but not scripts or event
// handlers.
func sanitizeDisplayText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(displayTextSanitizer().Sanitize(trimmed))
}

func displayTextSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "br", "code", "a")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowURLSchemes("http", "https", "mailto")
		policy.RequireNoFollowOnLinks(true)
		textPolicy = policy
	})
	return textPolicy
}

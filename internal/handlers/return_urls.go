package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ReturnURLs builds the hosted page's success and cancel targets.
type ReturnURLs func(c *gin.Context) (success, cancel string)

// ReturnURLsFromOrigin sends the buyer back to the site they came from when
// it is an allowed origin, and to fallback otherwise.
func ReturnURLsFromOrigin(allowed []string, fallback string) ReturnURLs {
	ok := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		ok[strings.TrimRight(o, "/")] = true
	}
	fallback = strings.TrimRight(fallback, "/")

	return func(c *gin.Context) (string, string) {
		base := fallback
		if origin := strings.TrimRight(c.GetHeader("Origin"), "/"); origin != "" && ok[origin] {
			base = origin
		}
		return base + "/?success=true", base + "/?canceled=true"
	}
}

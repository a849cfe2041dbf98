package cors

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const allowedMethods = "GET, POST, OPTIONS"

// New returns a CORS middleware for the dashboard origins. The gateway holds one session for
// every caller, so only listed origins get CORS headers; an empty list allows same-origin
// requests only. State-changing requests from any other origin are refused outright.
func New(allowedOrigins []string) gin.HandlerFunc {
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		originSet[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Add("Vary", "Origin")

		origin := strings.TrimRight(c.GetHeader("Origin"), "/")
		if origin == "" || sameHost(origin, c.Request.Host) {
			c.Next()
			return
		}

		if _, ok := originSet[origin]; !ok {
			switch c.Request.Method {
			case http.MethodGet, http.MethodHead:
				c.Next()
			case http.MethodOptions:
				c.AbortWithStatus(http.StatusNoContent)
			default:
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}

		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Headers", "Content-Type, X-Requested-With, X-Request-ID")
		h.Set("Access-Control-Expose-Headers", "X-Request-ID, Content-Disposition")
		h.Set("Access-Control-Allow-Methods", allowedMethods)
		h.Set("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func sameHost(origin, host string) bool {
	u, err := url.Parse(origin)
	if err != nil || host == "" {
		return false
	}
	return strings.EqualFold(u.Host, host)
}

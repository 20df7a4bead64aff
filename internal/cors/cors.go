package cors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// production origins are always allowed; the default is what gets echoed
// back when the request origin is not on the list. Never a wildcard - the
// endpoint requires credentials.
var productionOrigins = []string{
	"https://nutrio.app",
	"https://app.nutrio.app",
	"capacitor://localhost",
}

// allowed only outside production
var developmentOrigins = []string{
	"http://localhost:5173",
	"http://localhost:8100",
	"http://127.0.0.1:5173",
}

const defaultOrigin = "https://nutrio.app"

// an immutable origin policy, computed once at construction
type Policy struct {
	allowed       map[string]struct{}
	defaultOrigin string
}

// builds the origin policy for the given environment. Development origins
// are only honored when the environment is not production.
func NewPolicy(environment string, extraOrigins []string) Policy {
	allowed := make(map[string]struct{}, len(productionOrigins)+len(developmentOrigins)+len(extraOrigins))

	for _, origin := range productionOrigins {
		allowed[origin] = struct{}{}
	}

	if environment != "production" {
		for _, origin := range developmentOrigins {
			allowed[origin] = struct{}{}
		}
	}

	for _, origin := range extraOrigins {
		allowed[origin] = struct{}{}
	}

	return Policy{allowed: allowed, defaultOrigin: defaultOrigin}
}

// resolves the Allow-Origin value for a request origin
func (p Policy) Resolve(origin string) string {
	if _, ok := p.allowed[origin]; ok {
		return origin
	}

	return p.defaultOrigin
}

// attaches CORS headers to every response and short-circuits preflight
// requests with a bare 200 before any body processing
func (p Policy) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := p.Resolve(c.GetHeader("Origin"))

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Vary", "Origin")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.String(http.StatusOK, "ok")
			c.Abort()
			return
		}

		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RouteClass groups page paths for the navigation guard.
type RouteClass int

const (
	RouteOther RouteClass = iota
	RouteProtected
	RouteAuthPage
	RouteExcluded
)

func (rc RouteClass) String() string {
	switch rc {
	case RouteProtected:
		return "protected"
	case RouteAuthPage:
		return "auth_page"
	case RouteExcluded:
		return "excluded"
	default:
		return "other"
	}
}

var (
	excludedPrefixes  = []string{"/api", "/static", "/metrics", "/healthz", "/favicon.ico"}
	protectedPrefixes = []string{"/dashboard", "/resume"}
	authPagePrefixes  = []string{"/login", "/register"}
)

// Classify maps a request path to its RouteClass by segment prefix.
func Classify(path string) RouteClass {
	switch {
	case matchAny(path, excludedPrefixes):
		return RouteExcluded
	case matchAny(path, protectedPrefixes):
		return RouteProtected
	case matchAny(path, authPagePrefixes):
		return RouteAuthPage
	default:
		return RouteOther
	}
}

// matchAny reports whether path equals a prefix or continues it with "/".
// "/resumes" therefore does not match "/resume".
func matchAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// PageGuard redirects anonymous visitors away from protected pages and
// signed-in users away from the login and register pages.
func PageGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, signedIn := IdentityFromContext(c)
		switch Classify(c.Request.URL.Path) {
		case RouteProtected:
			if !signedIn {
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
		case RouteAuthPage:
			if signedIn {
				c.Redirect(http.StatusFound, "/dashboard")
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

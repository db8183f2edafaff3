package middleware

import (
	"net/http"
	"net/url"
	"strings"

	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
)

// SessionCookie holds the web session token.
const SessionCookie = "yatube_token"

const (
	userIDKey   = "userID"
	usernameKey = "username"
)

// TokenParser verifies a token and returns its bearer.
type TokenParser interface {
	ParseToken(token string) (*userPort.Identity, error)
}

// BearerAuth reads "Authorization: Bearer <token>". A request without the
// header continues anonymously; a bad token is rejected.
func BearerAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}
		identity, err := parser.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// SessionAuth reads the session cookie. An invalid or expired cookie is
// dropped and the request continues anonymously.
func SessionAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		identity, err := parser.ParseToken(token)
		if err != nil {
			ClearSession(c)
			c.Next()
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// JWTAuthMiddleware rejects anonymous API requests with 401.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication credentials were not provided"})
			return
		}
		c.Next()
	}
}

// LoginRequired redirects anonymous web requests to loginPath?next=<path>.
func LoginRequired(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// StartSession stores token in the session cookie for maxAge seconds.
func StartSession(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", secure, true)
}

func ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// UserID is the authenticated user's id, empty for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func Username(c *gin.Context) string {
	return c.GetString(usernameKey)
}

func setIdentity(c *gin.Context, identity *userPort.Identity) {
	c.Set(userIDKey, identity.UserID)
	c.Set(usernameKey, identity.Username)
}

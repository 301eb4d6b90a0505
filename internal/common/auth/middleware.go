package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"restaurant-pos/internal/domain"
)

const (
	ctxStaffID = "staffID"
	ctxRole    = "role"
	ctxName    = "staffName"
)

// Caller is the authenticated staff member behind a request.
type Caller struct {
	ID   int64
	Name string
	Role domain.Role
}

// Middleware reads a bearer token, or the token query parameter for
// EventSource clients that cannot set headers.
func Middleware(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				abort(c, "authorization token not provided")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				abort(c, "invalid Authorization header format")
				return
			}
			token = parts[1]
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			abort(c, "invalid authorization token")
			return
		}

		c.Set(ctxStaffID, claims.ID)
		c.Set(ctxRole, string(claims.Role))
		c.Set(ctxName, claims.Name)
		c.Next()
	}
}

// RequireRole lets through only the listed roles.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerFrom(c)
		for _, r := range roles {
			if caller.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"type":   string(domain.KindForbidden),
			"title":  http.StatusText(http.StatusForbidden),
			"status": http.StatusForbidden,
			"detail": "role " + string(caller.Role) + " may not access this resource",
		})
	}
}

func CallerFrom(c *gin.Context) Caller {
	return Caller{
		ID:   c.GetInt64(ctxStaffID),
		Name: c.GetString(ctxName),
		Role: domain.Role(c.GetString(ctxRole)),
	}
}

// WithCaller is used by tests and internal routes to inject an identity.
func WithCaller(c *gin.Context, caller Caller) {
	c.Set(ctxStaffID, caller.ID)
	c.Set(ctxRole, string(caller.Role))
	c.Set(ctxName, caller.Name)
}

func abort(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"type":   string(domain.KindUnauthorized),
		"title":  http.StatusText(http.StatusUnauthorized),
		"status": http.StatusUnauthorized,
		"detail": detail,
	})
}

func (c Caller) Actor() domain.Actor { return domain.Actor{ID: c.ID, Role: c.Role} }

// Package middleware holds the gin middleware of the job board API.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

const claimsKey = "claims"

var ErrMissingBearer = errors.New("authorization header must be a bearer token")

// TokenValidator turns a bearer token into its claims.
type TokenValidator interface {
	Validate(token string) (*services.Claims, error)
}

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>" header.
func ExtractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingBearer
	}
	return strings.TrimSpace(token), nil
}

// RequireAuth rejects requests without a valid, unrevoked token and stores the
// token's claims on the context.
func RequireAuth(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractBearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dtos.Fail("Access token required", err.Error()))
			return
		}
		claims, err := v.Validate(token)
		if err != nil {
			msg := "Invalid or expired token"
			if errors.Is(err, services.ErrTokenRevoked) {
				msg = "Token has been revoked"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dtos.Fail(msg, err.Error()))
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims RequireAuth stored on c.
func ClaimsFrom(c *gin.Context) (*services.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*services.Claims)
	return claims, ok
}

// CheckRole only lets through users holding one of roles. It must run after RequireAuth.
func CheckRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok || !contains(roles, claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, dtos.Fail("You don't have permission to access this resource", ""))
			return
		}
		c.Next()
	}
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

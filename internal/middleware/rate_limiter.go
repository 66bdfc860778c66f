package middleware

import (
	"net/http"
	"strconv"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/dtos"
)

func keyFunc(c *gin.Context) string {
	if claims, ok := ClaimsFrom(c); ok {
		return "user: " + claims.Username
	}
	return "ip: " + c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	if wait := time.Until(info.ResetTime); wait > 0 {
		c.Header("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
	}
	c.AbortWithStatusJSON(http.StatusTooManyRequests, dtos.Fail("Too many requests. Please try again later.", ""))
}

// RateLimiter allows each client reqPerSec requests per second.
func RateLimiter(reqPerSec uint) gin.HandlerFunc {
	if reqPerSec == 0 {
		reqPerSec = 5
	}
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: reqPerSec,
	})
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		KeyFunc:      keyFunc,
		ErrorHandler: errorHandler,
	})
}

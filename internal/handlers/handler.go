// Package handlers implements the job board HTTP API.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/store"
)

// HealthCheck is the GET /health endpoint.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dtos.OK("Job board API is running", gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}))
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dtos.Fail("Invalid ID", "id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// respondError maps a service error to an envelope reply.
func respondError(c *gin.Context, err error, notFound, failure string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, dtos.Fail(notFound, err.Error()))
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg(failure)
	c.JSON(http.StatusInternalServerError, dtos.Fail(failure, err.Error()))
}

func badRequest(c *gin.Context, message string, err error) {
	c.JSON(http.StatusBadRequest, dtos.Fail(message, err.Error()))
}

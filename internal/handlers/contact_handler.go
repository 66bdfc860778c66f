package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/services"
)

type ContactHandler struct {
	ContactService *services.ContactService
}

func NewContactHandler(s *services.ContactService) *ContactHandler {
	return &ContactHandler{ContactService: s}
}

// SubmitContact is the POST /contact endpoint
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req dtos.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid contact data", err)
		return
	}
	msg, err := h.ContactService.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Message not found", "Failed to send message")
		return
	}
	c.JSON(http.StatusCreated, dtos.OK("Message sent successfully", msg))
}

// ListContactMessages is the GET /contact endpoint
func (h *ContactHandler) ListContactMessages(c *gin.Context) {
	var filters dtos.MessageFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}
	msgs, pg, err := h.ContactService.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err, "Messages not found", "Failed to fetch messages")
		return
	}
	c.JSON(http.StatusOK, dtos.Page("Messages retrieved successfully", msgs, pg.Page, pg.Limit, pg.Total))
}

// MarkMessageRead is the PUT /contact/:id/read endpoint
func (h *ContactHandler) MarkMessageRead(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	msg, err := h.ContactService.MarkRead(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Message not found", "Failed to update message")
		return
	}
	c.JSON(http.StatusOK, dtos.OK("Message marked as read", msg))
}

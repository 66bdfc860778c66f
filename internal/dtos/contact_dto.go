package dtos

import "net/url"

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type MessageFilters struct {
	Page   int  `form:"page"`
	Limit  int  `form:"limit"`
	Unread bool `form:"unread"`
}

// Query sends unread only when it is set.
func (f MessageFilters) Query() url.Values {
	q := url.Values{}
	setInt(q, "page", f.Page)
	setInt(q, "limit", f.Limit)
	if f.Unread {
		q.Set("unread", "true")
	}
	return q
}

package dtos

// Pagination describes the page of a list reply.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Envelope is the uniform wrapper around every API reply.
type Envelope[T any] struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       T           `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// OK builds a successful envelope.
func OK[T any](message string, data T) Envelope[T] {
	return Envelope[T]{Success: true, Message: message, Data: data}
}

// Page builds a successful list envelope carrying pagination.
func Page[T any](message string, data T, page, limit, total int) Envelope[T] {
	env := OK(message, data)
	env.Pagination = NewPagination(page, limit, total)
	return env
}

// Fail builds an unsuccessful envelope. errText is optional detail for the error field.
func Fail(message, errText string) Envelope[any] {
	return Envelope[any]{Success: false, Message: message, Error: errText}
}

// NewPagination computes totalPages for the given page size.
func NewPagination(page, limit, total int) *Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return &Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

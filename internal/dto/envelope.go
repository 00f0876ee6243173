package dto

import "math"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every response body.
type Envelope struct {
	Status     string       `json:"status"`
	Data       any          `json:"data,omitempty"`
	Message    string       `json:"message,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
	Pagination *Pagination  `json:"pagination,omitempty"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

func NewPagination(total int64, page, limit int) *Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return &Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type PageQuery struct {
	Page  int `query:"page" validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Cache     string `json:"cache"`
}

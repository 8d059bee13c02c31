package utils

import (
	"strconv"

	"wasit/internal/transferapi"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination holds pagination parameters.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// NewPagination applies the defaults and caps the limit at MaxLimit.
func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// GetPagination extracts the page and limit from the query parameters.
// Unparseable values fall back to the defaults.
func GetPagination(c *fiber.Ctx) Pagination {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return NewPagination(page, limit)
}

// TotalPages calculates the number of pages based on the total items and items per page.
func TotalPages(totalItems int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	pages := totalItems / int64(limit)
	if totalItems%int64(limit) > 0 {
		pages++
	}
	return pages
}

// Meta builds the page envelope for a listing of total items.
func (p Pagination) Meta(total int64) transferapi.PageMeta {
	return transferapi.PageMeta{
		CurrentPage: p.Page,
		PerPage:     p.Limit,
		TotalItems:  total,
		TotalPages:  TotalPages(total, p.Limit),
	}
}

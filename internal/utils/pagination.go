package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reqroute/reqroute-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetPaginationParams reads ?page and ?limit from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	return ParsePagination(c.Query("page"), c.Query("limit"))
}

// ParsePagination normalizes raw page and limit values. Missing or invalid
// values fall back to page 1 and the default page size; limits above the
// maximum are clamped.
func ParsePagination(rawPage, rawLimit string) PaginationParams {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(rawLimit)
	switch {
	case err != nil || limit < constants.MinPageSize:
		limit = constants.DefaultPageSize
	case limit > constants.MaxPageSize:
		limit = constants.MaxPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Response builds the pagination metadata for a list response
func (p PaginationParams) Response(total int64) PaginationResponse {
	return PaginationResponse{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
	}
}

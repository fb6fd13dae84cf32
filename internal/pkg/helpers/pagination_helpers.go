package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/braxton0054/eavisystem/internal/app/models/dto"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 200
	DefaultPage     = 1
)

// ParsePaginationParams reads the 1-based page and size query parameters,
// falling back to defaults for missing or out-of-range values.
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	size, err = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

// CalculateOffsetLimit converts a 1-based page into SQL offset and limit.
func CalculateOffsetLimit(page, size int) (offset, limit int) {
	limit = size
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	return (page - 1) * limit, limit
}

// NewPaginationInfo describes one page of totalItems results.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 1
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

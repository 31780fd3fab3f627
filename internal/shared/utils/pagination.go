package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// GetPaginationParams extracts page and page_size query parameters with bounds applied.
func GetPaginationParams(c *gin.Context) (page, pageSize int) {
	page = DefaultPage
	pageSize = DefaultPageSize

	if p, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage))); err == nil && p > 0 {
		page = p
	}

	if ps, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize))); err == nil && ps > 0 {
		pageSize = ps
	}

	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return page, pageSize
}

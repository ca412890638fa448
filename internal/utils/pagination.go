package utils

import (
	"math"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 25
	MaxPageSize     = 100
)

type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePagination reads page/page_size query params, applies defaults and
// caps page_size at MaxPageSize.
func ParsePagination(c *gin.Context) Pagination {
	page := StringToInt(c.Query("page"))
	if page < 1 {
		page = DefaultPage
	}

	pageSize := StringToInt(c.Query("page_size"))
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Pagination{Page: page, PageSize: pageSize}
}

func TotalPages(total int64, pageSize int) int {
	pages := int(math.Ceil(float64(total) / float64(pageSize)))
	if pages == 0 {
		pages = 1
	}
	return pages
}

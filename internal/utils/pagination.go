package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// DefaultPageSize is the fixed page size for every paginated listing.
const DefaultPageSize = 10

// Page is the envelope for paginated results: total count, next/previous
// page indicators and the page's items. Pages beyond the range yield an
// empty result list with valid navigation metadata, never an error.
type Page struct {
	Count    int64       `json:"count"`
	Next     *int        `json:"next"`
	Previous *int        `json:"previous"`
	Results  interface{} `json:"results"`
}

// PageFromQuery reads the 1-based page number, defaulting to the first page.
func PageFromQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// PageOffset converts a 1-based page number to a row offset.
func PageOffset(page, size int) int {
	return (page - 1) * size
}

// NewPage assembles the envelope for one page of results.
func NewPage(results interface{}, count int64, page, size int) Page {
	p := Page{Count: count, Results: results}

	if int64(PageOffset(page, size)+size) < count {
		next := page + 1
		p.Next = &next
	}
	if page > 1 {
		prev := page - 1
		p.Previous = &prev
	}
	return p
}

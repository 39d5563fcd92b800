package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitdesk/scheduling-api/internal/httperr"
)

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// List wraps items plus pagination metadata under the given key, so empty
// results still carry the pagination block.
func List(c *gin.Context, key string, items any, p Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{key: items, "pagination": p},
	})
}

// WriteError maps the error taxonomy to HTTP. Storage errors get a generic
// message so internals never leak to the caller.
func WriteError(c *gin.Context, err error) {
	e := httperr.From(err)
	c.JSON(e.HTTPStatus(), gin.H{
		"success": false,
		"message": e.Message,
		"code":    e.Code,
	})
}

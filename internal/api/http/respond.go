package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bugjanitor/go-janitor-backend/internal/errortypes"
	"github.com/bugjanitor/go-janitor-backend/internal/logging"
	"github.com/bugjanitor/go-janitor-backend/internal/query"
)

// RespondError writes err with the status its kind maps to. Store and
// unclassified failures are logged and answered with a generic message
// carrying the request ID.
func RespondError(c *gin.Context, operation string, err error) {
	status := errortypes.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		ctx := c.Request.Context()
		logging.Op(ctx, operation).Error("request failed", "error", err)
		body := gin.H{"error": "internal server error"}
		if rid := logging.RequestID(ctx); rid != "" {
			body["request_id"] = rid
		}
		c.JSON(status, body)
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// PageRequest reads page, size and sort from the query string and applies
// the page-size policy.
func PageRequest(c *gin.Context) query.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(query.DefaultPageSize)))
	page, size = query.NormalizePage(page, size)
	return query.NewPageRequest(page, size, query.ParseSort(c.QueryArray("sort"))...)
}

// NotFound answers a lookup that matched nothing.
func NotFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

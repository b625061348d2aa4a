package request

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/apperror"
)

// DateLayout is the wire format for checkin/checkout dates.
const DateLayout = "2006-01-02"

var ErrBadDate = apperror.New(http.StatusBadRequest, "dates must use the YYYY-MM-DD format")

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ParseDate parses a YYYY-MM-DD query or body value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return t, nil
}

// Page extracts page/page_size query parameters with sane defaults.
func Page(c *gin.Context, defaultSize, maxSize int) (page, pageSize int) {
	page = intQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = intQuery(c, "page_size", defaultSize)
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

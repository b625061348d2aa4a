package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/daterange"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/request"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/response"
	"github.com/hyein-dev/stayhub-backend/internal/search"
)

type Handler struct {
	service search.Service
}

func NewHandler(service search.Service) *Handler {
	return &Handler{service: service}
}

// Search handles GET /search. All filters are optional; checkin/checkout
// must be given together to form a stay window.
func (h *Handler) Search(c *gin.Context) {
	q := search.Query{
		Keyword: c.Query("keyword"),
		Sort:    search.SortKey(c.DefaultQuery("sort", string(search.SortRecommend))),
		Order:   c.Query("order"),
	}

	if v := c.Query("themes"); v != "" {
		q.Themes = strings.Split(v, ",")
	}

	if v := c.Query("party_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "party_size must be a non-negative integer"})
			return
		}
		q.PartySize = n
	}

	var err error
	if q.MinPrice, err = intPtrQuery(c, "min_price"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_price must be an integer"})
		return
	}
	if q.MaxPrice, err = intPtrQuery(c, "max_price"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "max_price must be an integer"})
		return
	}

	if bounds, ok, err := boundsQuery(c); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bounding box needs numeric south, north, west, east"})
		return
	} else if ok {
		q.Bounds = bounds
	}

	checkinStr, checkoutStr := c.Query("checkin"), c.Query("checkout")
	if checkinStr != "" || checkoutStr != "" {
		checkin, err := request.ParseDate(checkinStr)
		if err != nil {
			response.Error(c, err)
			return
		}
		checkout, err := request.ParseDate(checkoutStr)
		if err != nil {
			response.Error(c, err)
			return
		}
		window, err := daterange.New(checkin, checkout)
		if err != nil {
			response.Error(c, err)
			return
		}
		q.Window = &window
	}

	q.Page, q.PageSize = request.Page(c, 20, 100)

	result, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(result.Items, q.Page, q.PageSize, result.TotalElements))
}

func intPtrQuery(c *gin.Context, key string) (*int, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func boundsQuery(c *gin.Context) (*search.Bounds, bool, error) {
	keys := [4]string{"south", "north", "west", "east"}
	var vals [4]float64
	present := 0
	for i, k := range keys {
		v := c.Query(k)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false, err
		}
		vals[i] = f
		present++
	}
	if present == 0 {
		return nil, false, nil
	}
	if present != 4 {
		return nil, false, strconv.ErrSyntax
	}
	b := search.NewBounds(vals[0], vals[1], vals[2], vals[3])
	return &b, true, nil
}

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/prodscrape/models"
	"github.com/use-agent/prodscrape/scraper"
)

// Product returns a handler for GET /api/v1/products/:id.
//
// It runs the full pipeline for one identifier, so the page is fetched
// and both artifacts are persisted exactly as `prodscrape run` would.
// An empty record is still a 200: the page was reachable but held nothing
// recognisable.
func Product(sc *scraper.Scraper) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param("id"))
		if id == "" {
			c.JSON(http.StatusBadRequest, models.ProductResponse{
				Success: false,
				Record:  models.Record{},
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "product identifier is required",
				},
			})
			return
		}

		res := sc.Collect(c.Request.Context(), id)
		resp := res.Response()
		if res.Err != nil {
			c.JSON(statusFor(res.Err), resp)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// statusFor translates error codes to HTTP status codes.
func statusFor(err error) int {
	var se *models.ScrapeError
	if !errors.As(err, &se) {
		return http.StatusInternalServerError
	}
	switch se.Code {
	case models.ErrCodeNetwork:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}

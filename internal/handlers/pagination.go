package handlers

import (
	"net/http"
	"strconv"

	"github.com/gkharab/projecthub-api/internal/repository"
)

// parsePagination reads page/limit query params with the usual defaults.
// Limit is capped at 100 items per page.
func parsePagination(r *http.Request) repository.Page {
	page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return repository.Page{Number: page, Limit: limit}
}

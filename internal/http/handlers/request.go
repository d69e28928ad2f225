package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain"
)

type rangeQuery struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type confirmBody struct {
	Confirmation string `json:"confirmation"`
}

func query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := query(r, name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.Invalid("%s must be a non-negative integer", name)
	}
	return n, nil
}

func queryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(query(r, name))
	return err == nil && v
}

// paging reads page and pageSize.
func paging(r *http.Request) (page, size int, err error) {
	if page, err = queryInt(r, "page", 1); err != nil {
		return 0, 0, err
	}
	if size, err = queryInt(r, "pageSize", 0); err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

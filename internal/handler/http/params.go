package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// uuidParam reads the {id} path parameter. Anything that is not a UUID gets
// a 400 here instead of a cast error from postgres.
func uuidParam(w http.ResponseWriter, r *http.Request, label string) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, label+" ID must be a valid UUID", map[string]string{"id": "must be a valid UUID"})
		return "", false
	}
	return id, true
}

// queryInt returns the integer query value for key, or def when it is
// missing or malformed. Range checks belong to the DTO Validate methods.
func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}

func queryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}

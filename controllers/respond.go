package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"reflect"
	"strconv"

	"flowsync_server/data"

	"github.com/gorilla/mux"
)

func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respondJSON: error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	if statusCode >= http.StatusInternalServerError {
		log.Printf("HTTP Error %d: %s", statusCode, message)
	}
	respondJSON(w, statusCode, map[string]string{"error": message})
}

// respondErr maps a repository error onto its status code.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	var conflict *data.ConflictError
	switch {
	case data.IsNotFound(err):
		respondError(w, http.StatusNotFound, rootMessage(err))
	case data.IsValidation(err):
		respondError(w, http.StatusBadRequest, rootMessage(err))
	case errors.As(err, &conflict):
		respondError(w, http.StatusConflict, conflict.Message)
	default:
		log.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
		respondError(w, http.StatusInternalServerError, rootMessage(err))
	}
}

// rootMessage drops the operation prefixes added while an error travelled up
// the repository, leaving the typed error's own text.
func rootMessage(err error) string {
	var (
		nf  *data.NotFoundError
		ve  *data.ValidationError
		dae *data.DataAccessError
	)
	switch {
	case errors.As(err, &nf):
		return nf.Error()
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &dae):
		return dae.Error()
	}
	return err.Error()
}

func respondDeleted(w http.ResponseWriter, label string) {
	respondJSON(w, http.StatusOK, map[string]string{"message": label + " deleted"})
}

// respondList writes a slice, turning nil into [].
func respondList(w http.ResponseWriter, list interface{}) {
	if v := reflect.ValueOf(list); v.Kind() == reflect.Slice && v.IsNil() {
		list = []struct{}{}
	}
	respondJSON(w, http.StatusOK, list)
}

// decodeJSON reads the request body into dst. It writes the error response
// itself and reports false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.Is(err, io.EOF):
		respondError(w, http.StatusBadRequest, "request body is required")
	default:
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return false
}

// pathID reads a numeric path variable. Routes constrain ids to digits, so a
// failure here means an overflowing value.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// queryID reads an optional numeric query parameter.
func queryID(w http.ResponseWriter, r *http.Request, name string) (*int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid "+name)
		return nil, false
	}
	return &id, true
}

package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"foodhub/cart-svc/internal/domain"
)

// Response is the envelope of every JSON reply. Data is always present and is
// null when there is no payload.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondOK(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

func respondFail(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{Success: false, Message: message, Code: code})
}

// StatusFor maps an error kind onto its HTTP status.
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindIneligible:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflictDifferentRestaurant:
		return http.StatusConflict
	case domain.KindStore:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	kind := domain.KindOf(err)

	message := err.Error()
	switch {
	case kind == domain.KindStore:
		h.log(r).WithError(err).Error("store failure")
		message = "storage temporarily unavailable"
	case status >= http.StatusInternalServerError:
		h.log(r).WithError(err).Error("request failed")
		message = http.StatusText(status)
	}
	respondFail(w, status, kind.String(), message)
}

func (h *Handler) log(r *http.Request) logrus.FieldLogger {
	log := h.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	if rid := ContextRequestID(r.Context()); rid != "" {
		return log.WithField("req_id", rid)
	}
	return log
}

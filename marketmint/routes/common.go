// marketmint/routes/common.go
package routes

import (
	"encoding/json"
	"net/http"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/middlewares"
)

// handleJSON adapts a controller call to an HTTP handler: the handler
// returns the payload and the success status; errors are mapped through the
// apperrors taxonomy.
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(res)
	}
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperrors.HTTPStatus(err))
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func userID(r *http.Request) int {
	return r.Context().Value(middlewares.UserIDKey).(int)
}

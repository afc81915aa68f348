// marketmint/routes/auth.go
package routes

import (
	"encoding/json"
	"net/http"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/controllers"
	"marketmint/marketmint/types"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(ctrl *controllers.AuthController) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, 0, apperrors.Validationf("malformed payload")
		}
		user, err := ctrl.Register(r.Context(), req)
		if err != nil {
			return nil, 0, err
		}
		return user, http.StatusCreated, nil
	}))

	r.Post("/login", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, 0, apperrors.Validationf("malformed payload")
		}
		token, err := ctrl.Login(r.Context(), req)
		if err != nil {
			return nil, 0, err
		}
		return token, http.StatusOK, nil
	}))

	return r
}

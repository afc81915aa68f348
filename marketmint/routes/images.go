// marketmint/routes/images.go
package routes

import (
	"encoding/json"
	"net/http"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/config"
	"marketmint/marketmint/controllers"
	"marketmint/marketmint/middlewares"
	"marketmint/marketmint/types"

	"github.com/go-chi/chi/v5"
)

func ImageRoutes(ctrl *controllers.ImageController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Post("/background", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.ImageRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, apperrors.Validationf("malformed payload")
			}
			resp, err := ctrl.GenerateBackground(r.Context(), userID(r), req)
			if err != nil {
				return nil, 0, err
			}
			return resp, http.StatusCreated, nil
		}))
	})
	return r
}

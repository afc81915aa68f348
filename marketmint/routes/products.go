// marketmint/routes/products.go
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

func ProductRoutes(ctrl *controllers.ProductController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Post("/", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.ProductCreateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, apperrors.Validationf("malformed payload")
			}
			product, err := ctrl.Create(r.Context(), userID(r), req)
			if err != nil {
				return nil, 0, err
			}
			return product, http.StatusCreated, nil
		}))

		gr.Get("/", handleJSON(func(r *http.Request) (any, int, error) {
			products, err := ctrl.List(r.Context(), userID(r))
			if err != nil {
				return nil, 0, err
			}
			return products, http.StatusOK, nil
		}))

		gr.Get("/{id}", handleJSON(func(r *http.Request) (any, int, error) {
			product, err := ctrl.Get(r.Context(), userID(r), chi.URLParam(r, "id"))
			if err != nil {
				return nil, 0, err
			}
			return product, http.StatusOK, nil
		}))

		gr.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			if err := ctrl.Delete(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
				writeError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})
	return r
}

// marketmint/routes/social.go
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

func SocialRoutes(ctrl *controllers.SocialController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Post("/campaigns", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.CampaignRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, apperrors.Validationf("malformed payload")
			}
			campaign, err := ctrl.CreateCampaign(r.Context(), userID(r), req)
			if err != nil {
				return nil, 0, err
			}
			return campaign, http.StatusCreated, nil
		}))

		gr.Get("/campaigns/{product_id}", handleJSON(func(r *http.Request) (any, int, error) {
			campaigns, err := ctrl.ListCampaigns(r.Context(), userID(r), chi.URLParam(r, "product_id"))
			if err != nil {
				return nil, 0, err
			}
			return campaigns, http.StatusOK, nil
		}))
	})
	return r
}

// marketmint/routes/content.go
package routes

import (
	"encoding/json"
	"net/http"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/config"
	"marketmint/marketmint/controllers"
	"marketmint/marketmint/middlewares"
	"marketmint/marketmint/types"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

// streamChunkSize is how many bytes of the reply go into each websocket
// frame.
const streamChunkSize = 512

func ContentRoutes(contentCtrl *controllers.ContentController, chatCtrl *controllers.ChatController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Post("/generate", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.GenerateRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, apperrors.Validationf("malformed payload")
			}
			content, err := contentCtrl.Generate(r.Context(), userID(r), req)
			if err != nil {
				return nil, 0, err
			}
			return content, http.StatusCreated, nil
		}))

		gr.Get("/history/{product_id}", handleJSON(func(r *http.Request) (any, int, error) {
			history, err := contentCtrl.History(r.Context(), userID(r), chi.URLParam(r, "product_id"))
			if err != nil {
				return nil, 0, err
			}
			return history, http.StatusOK, nil
		}))

		gr.Delete("/history/{content_id}", func(w http.ResponseWriter, r *http.Request) {
			if err := contentCtrl.Delete(r.Context(), userID(r), chi.URLParam(r, "content_id")); err != nil {
				writeError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})

		gr.Post("/chat", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.ChatRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, 0, apperrors.Validationf("malformed payload")
			}
			resp, err := chatCtrl.Chat(r.Context(), userID(r), req)
			if err != nil {
				return nil, 0, err
			}
			return resp, http.StatusOK, nil
		}))

		gr.Get("/chat/{product_id}/messages", handleJSON(func(r *http.Request) (any, int, error) {
			msgs, err := chatCtrl.Messages(r.Context(), userID(r), chi.URLParam(r, "product_id"))
			if err != nil {
				return nil, 0, err
			}
			return msgs, http.StatusOK, nil
		}))
	})

	// Websocket variant: the token rides in the first frame, the reply is
	// streamed back in chunks.
	r.HandleFunc("/chat/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "internal error")

		ctx := r.Context()
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			conn.Close(websocket.StatusUnsupportedData, "unsupported data")
			return
		}
		var input struct {
			Token       string            `json:"token"`
			ChatRequest types.ChatRequest `json:"chat_request"`
		}
		if err := json.Unmarshal(data, &input); err != nil {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid json"}`))
			return
		}

		token, err := jwt.Parse(input.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			conn.Write(ctx, websocket.MessageText, []byte(`{"error":"invalid token"}`))
			conn.Close(websocket.StatusPolicyViolation, "invalid token")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			conn.Close(websocket.StatusPolicyViolation, "invalid claims")
			return
		}
		uidf, ok := claims["user_id"].(float64)
		if !ok {
			conn.Close(websocket.StatusPolicyViolation, "invalid user_id")
			return
		}

		resp, err := chatCtrl.Chat(ctx, int(uidf), input.ChatRequest)
		if err != nil {
			payload, _ := json.Marshal(map[string]string{"error": err.Error()})
			conn.Write(ctx, websocket.MessageText, payload)
			conn.Close(websocket.StatusInternalError, "chat error")
			return
		}

		reply := []byte(resp.Content)
		for len(reply) > 0 {
			n := streamChunkSize
			if n > len(reply) {
				n = len(reply)
			}
			if err := conn.Write(ctx, websocket.MessageText, reply[:n]); err != nil {
				return
			}
			reply = reply[n:]
		}
		conn.Close(websocket.StatusNormalClosure, "")
	})
	return r
}

// marketmint/controllers/chat.go
package controllers

import (
	"context"
	"strings"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/services/prompt"
	"marketmint/marketmint/services/search"
	"marketmint/marketmint/sources/psql/dao"
	"marketmint/marketmint/sources/psql/models"
	"marketmint/marketmint/types"
	"marketmint/marketmint/utils/logging"
)

// ChatController runs one conversation turn: append the user message, decide
// on enrichment, compose the transcript-bearing system prompt, generate, and
// append the bot reply.
//
// Persistence policy on generation failure: the user message stays stored,
// no bot message is appended, and the upstream error is returned.
type ChatController struct {
	productDAO *dao.ProductDAO
	chatDAO    *dao.ChatMessageDAO
	composer   *prompt.Composer
	enricher   Enricher
	generator  TextGenerator
	format     prompt.OutputFormat
}

func NewChatController(
	productDAO *dao.ProductDAO,
	chatDAO *dao.ChatMessageDAO,
	composer *prompt.Composer,
	enricher Enricher,
	generator TextGenerator,
	format prompt.OutputFormat,
) *ChatController {
	return &ChatController{
		productDAO: productDAO,
		chatDAO:    chatDAO,
		composer:   composer,
		enricher:   enricher,
		generator:  generator,
		format:     format,
	}
}

func (c *ChatController) Chat(ctx context.Context, userID int, req types.ChatRequest) (*types.ChatResponse, error) {
	defer logging.LogDuration(ctx, "chat_turn")()

	if strings.TrimSpace(req.Message) == "" {
		return nil, apperrors.Validationf("message is required")
	}
	productID, err := parseID(req.ProductID, "product")
	if err != nil {
		return nil, err
	}
	product, err := c.productDAO.GetForOwner(ctx, productID, userID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product not found")
	}

	// Prior transcript, before this turn's user message.
	transcript, err := c.chatDAO.GetConversation(ctx, productID, userID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	if _, err := c.chatDAO.SaveMessage(ctx, productID, userID, models.SenderUser, req.Message); err != nil {
		return nil, apperrors.Storage(err)
	}

	var snippet search.Snippet
	if req.SearchWeb {
		snippet = c.enricher.Enrich(ctx, c.composer.ChatSearchQuery(product, req.Message))
	}

	system := c.composer.ChatSystemPrompt(product, transcript, snippet)
	reply, err := c.generator.GenerateText(ctx, system, req.Message)
	if err != nil {
		return nil, err
	}

	if _, err := c.chatDAO.SaveMessage(ctx, productID, userID, models.SenderBot, reply); err != nil {
		return nil, apperrors.Storage(err)
	}

	return &types.ChatResponse{
		Content:     reply,
		Format:      string(c.format),
		WebDataUsed: !snippet.Empty(),
	}, nil
}

// Messages returns the stored conversation for a product, oldest first.
func (c *ChatController) Messages(ctx context.Context, userID int, productID string) ([]models.ChatMessage, error) {
	id, err := parseID(productID, "product")
	if err != nil {
		return nil, err
	}
	product, err := c.productDAO.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product not found")
	}
	msgs, err := c.chatDAO.GetConversation(ctx, id, userID)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return msgs, nil
}

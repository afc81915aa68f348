package controllers

import (
	"context"
	"strings"
	"testing"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/services/prompt"
	"marketmint/marketmint/services/search"
	"marketmint/marketmint/sources/psql/dao"
	"marketmint/marketmint/sources/psql/models"
	"marketmint/marketmint/types"

	"gorm.io/gorm"
)

func newChatController(db *gorm.DB, gen *stubGenerator, enr *stubEnricher) *ChatController {
	composer, _ := prompt.NewComposer(prompt.FormatPlain, "")
	return NewChatController(
		dao.NewProductDAO(db),
		dao.NewChatMessageDAO(db),
		composer,
		enr,
		gen,
		prompt.FormatPlain,
	)
}

func TestChatTurnFromEmptyConversation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	product := createTestProduct(t, db, user.ID, "Wireless Mouse", "Electronics")

	gen := &stubGenerator{reply: "It works great with laptops."}
	enr := &stubEnricher{}
	ctrl := newChatController(db, gen, enr)

	resp, err := ctrl.Chat(context.Background(), user.ID, types.ChatRequest{
		ProductID: product.ID.String(),
		Message:   "does it work with laptops?",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Content != gen.reply {
		t.Errorf("content = %q, want upstream reply", resp.Content)
	}
	if resp.WebDataUsed {
		t.Error("web_data_used should be false when search was not requested")
	}

	msgs, err := ctrl.Messages(context.Background(), user.ID, product.ID.String())
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("stored %d messages, want 2", len(msgs))
	}
	if msgs[0].Sender != models.SenderUser || msgs[0].Content != "does it work with laptops?" {
		t.Errorf("first message = %+v, want the user turn", msgs[0])
	}
	if msgs[1].Sender != models.SenderBot || msgs[1].Content != gen.reply {
		t.Errorf("second message = %+v, want the bot turn", msgs[1])
	}
}

func TestChatSearchWebDefaultsOff(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	product := createTestProduct(t, db, user.ID, "Wireless Mouse", "Electronics")

	enr := &stubEnricher{snippet: search.Snippet{Text: "fresh", Date: "25 June 2025"}}
	ctrl := newChatController(db, &stubGenerator{reply: "ok"}, enr)

	if _, err := ctrl.Chat(context.Background(), user.ID, types.ChatRequest{
		ProductID: product.ID.String(),
		Message:   "what is the price now",
	}); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if enr.calls != 0 {
		t.Errorf("enricher called %d times without search_web, want 0", enr.calls)
	}
}

func TestChatSearchWebRequested(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	product := createTestProduct(t, db, user.ID, "Wireless Mouse", "Electronics")

	gen := &stubGenerator{reply: "ok"}
	enr := &stubEnricher{snippet: search.Snippet{Text: "fresh data", Date: "25 June 2025"}}
	ctrl := newChatController(db, gen, enr)

	resp, err := ctrl.Chat(context.Background(), user.ID, types.ChatRequest{
		ProductID: product.ID.String(),
		Message:   "what is the price now",
		SearchWeb: true,
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if enr.calls != 1 {
		t.Fatalf("enricher calls = %d, want 1", enr.calls)
	}
	if !resp.WebDataUsed {
		t.Error("web_data_used should be true when a snippet came back")
	}
	if !strings.Contains(gen.lastSystem, "fresh data") {
		t.Error("system prompt should embed the enrichment text")
	}
	if !strings.Contains(enr.snippet.Query, "price") {
		t.Errorf("search query %q should follow the price heuristic", enr.snippet.Query)
	}
}

func TestChatFailedGenerationKeepsUserMessage(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	product := createTestProduct(t, db, user.ID, "Wireless Mouse", "Electronics")

	gen := &stubGenerator{err: apperrors.Upstream(503, "model overloaded")}
	ctrl := newChatController(db, gen, &stubEnricher{})

	_, err := ctrl.Chat(context.Background(), user.ID, types.ChatRequest{
		ProductID: product.ID.String(),
		Message:   "hello",
	})
	if !apperrors.IsKind(err, apperrors.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	msgs, err := ctrl.Messages(context.Background(), user.ID, product.ID.String())
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("stored %d messages, want only the user turn", len(msgs))
	}
	if msgs[0].Sender != models.SenderUser {
		t.Errorf("stored sender = %q, want user", msgs[0].Sender)
	}
}

func TestChatTranscriptExcludesCurrentMessage(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	product := createTestProduct(t, db, user.ID, "Wireless Mouse", "Electronics")
	chatDAO := dao.NewChatMessageDAO(db)

	if _, err := chatDAO.SaveMessage(context.Background(), product.ID, user.ID, models.SenderUser, "earlier question"); err != nil {
		t.Fatalf("seed message: %v", err)
	}

	gen := &stubGenerator{reply: "ok"}
	ctrl := newChatController(db, gen, &stubEnricher{})
	if _, err := ctrl.Chat(context.Background(), user.ID, types.ChatRequest{
		ProductID: product.ID.String(),
		Message:   "current question",
	}); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(gen.lastSystem, "earlier question") {
		t.Error("system prompt should carry the prior transcript")
	}
	if strings.Contains(gen.lastSystem, "current question") {
		t.Error("the message being answered belongs in the user turn, not the transcript")
	}
}

func TestChatEmptyMessageRejected(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	product := createTestProduct(t, db, user.ID, "Wireless Mouse", "Electronics")

	gen := &stubGenerator{reply: "ok"}
	ctrl := newChatController(db, gen, &stubEnricher{})

	_, err := ctrl.Chat(context.Background(), user.ID, types.ChatRequest{
		ProductID: product.ID.String(),
		Message:   "   ",
	})
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if gen.calls != 0 {
		t.Error("generator must not run for an empty message")
	}
}

func TestChatForeignProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	product := createTestProduct(t, db, owner.ID, "Wireless Mouse", "Electronics")

	ctrl := newChatController(db, &stubGenerator{reply: "ok"}, &stubEnricher{})
	_, err := ctrl.Chat(context.Background(), other.ID, types.ChatRequest{
		ProductID: product.ID.String(),
		Message:   "hello",
	})
	if !apperrors.IsKind(err, apperrors.KindNotFound) {
		t.Fatalf("expected not-found for foreign product, got %v", err)
	}
}

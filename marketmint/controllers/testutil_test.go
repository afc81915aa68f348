package controllers

import (
	"context"
	"testing"

	"marketmint/marketmint/services/search"
	"marketmint/marketmint/sources/psql"
	"marketmint/marketmint/sources/psql/dao"
	"marketmint/marketmint/sources/psql/models"
	"marketmint/marketmint/utils/logging"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- Helpers ---

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logging.InitTestLogger()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := psql.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Username: "tester", Email: email, PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, userID int, name, category string) *models.Product {
	t.Helper()
	product := &models.Product{
		UserID:   userID,
		Name:     name,
		Category: category,
		Currency: "USD",
	}
	if err := dao.NewProductDAO(db).Create(context.Background(), product); err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	return product
}

// stubGenerator is a TextGenerator double capturing the last prompt.
type stubGenerator struct {
	reply      string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (s *stubGenerator) GenerateText(ctx context.Context, system, user string) (string, error) {
	s.calls++
	s.lastSystem = system
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

// stubEnricher is an Enricher double returning a fixed snippet.
type stubEnricher struct {
	snippet search.Snippet
	calls   int
}

func (s *stubEnricher) Enrich(ctx context.Context, query string) search.Snippet {
	s.calls++
	s.snippet.Query = query
	return s.snippet
}

package controllers

import (
	"context"
	"strings"
	"testing"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/sources/psql/dao"
	"marketmint/marketmint/sources/psql/models"
	"marketmint/marketmint/types"

	"github.com/google/uuid"
)

type stubImageGenerator struct {
	image string
	err   error
	calls int
}

func (s *stubImageGenerator) GenerateImage(ctx context.Context, prompt string, steps int) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.image, nil
}

type stubImageStore struct {
	key     string
	uploads int
}

func (s *stubImageStore) UploadImage(ctx context.Context, productID uuid.UUID, imageBase64 string) (string, error) {
	s.uploads++
	return s.key, nil
}

func TestGenerateBackgroundStoresProject(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	product := createTestProduct(t, db, user.ID, "Wireless Mouse", "Electronics")

	gen := &stubImageGenerator{image: "aGVsbG8="}
	store := &stubImageStore{key: "images/x/y.png"}
	ctrl := NewImageController(dao.NewProductDAO(db), dao.NewImageProjectDAO(db), gen, store)

	resp, err := ctrl.GenerateBackground(context.Background(), user.ID, types.ImageRequest{
		ProductID: product.ID.String(),
		Scene:     "marble countertop with soft morning light",
	})
	if err != nil {
		t.Fatalf("GenerateBackground: %v", err)
	}
	if resp.Image != "aGVsbG8=" || resp.ObjectKey != "images/x/y.png" {
		t.Errorf("unexpected response %+v", resp)
	}
	if store.uploads != 1 {
		t.Errorf("uploads = %d, want 1", store.uploads)
	}

	var projects []models.ImageProject
	if err := db.Find(&projects).Error; err != nil {
		t.Fatalf("load projects: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("stored %d projects, want 1", len(projects))
	}
	if !strings.Contains(projects[0].Prompt, "marble countertop") {
		t.Errorf("stored prompt should embed the scene, got %q", projects[0].Prompt)
	}
}

func TestGenerateBackgroundRequiresScene(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	product := createTestProduct(t, db, user.ID, "Wireless Mouse", "Electronics")

	gen := &stubImageGenerator{image: "x"}
	ctrl := NewImageController(dao.NewProductDAO(db), dao.NewImageProjectDAO(db), gen, &stubImageStore{})

	_, err := ctrl.GenerateBackground(context.Background(), user.ID, types.ImageRequest{
		ProductID: product.ID.String(),
		Scene:     " ",
	})
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if gen.calls != 0 {
		t.Error("generator must not run without a scene")
	}
}

func TestGenerateBackgroundUpstreamFailure(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "a@example.com")
	product := createTestProduct(t, db, user.ID, "Wireless Mouse", "Electronics")

	gen := &stubImageGenerator{err: apperrors.Upstream(500, "boom")}
	store := &stubImageStore{key: "k"}
	ctrl := NewImageController(dao.NewProductDAO(db), dao.NewImageProjectDAO(db), gen, store)

	_, err := ctrl.GenerateBackground(context.Background(), user.ID, types.ImageRequest{
		ProductID: product.ID.String(),
		Scene:     "beach",
	})
	if !apperrors.IsKind(err, apperrors.KindUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if store.uploads != 0 {
		t.Error("nothing may be uploaded when generation fails")
	}
	var n int64
	db.Model(&models.ImageProject{}).Count(&n)
	if n != 0 {
		t.Errorf("stored %d projects after failure, want 0", n)
	}
}

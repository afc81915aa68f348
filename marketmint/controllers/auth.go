// marketmint/controllers/auth.go
package controllers

import (
	"context"
	"strings"
	"time"

	"marketmint/marketmint/apperrors"
	"marketmint/marketmint/config"
	"marketmint/marketmint/sources/psql/dao"
	"marketmint/marketmint/sources/psql/models"
	"marketmint/marketmint/types"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthController struct {
	userDAO *dao.UserDAO
	cfg     config.Config
}

func NewAuthController(userDAO *dao.UserDAO, cfg config.Config) *AuthController {
	return &AuthController{
		userDAO: userDAO,
		cfg:     cfg,
	}
}

func (c *AuthController) Register(ctx context.Context, req types.RegisterRequest) (*models.User, error) {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperrors.Validationf("username, email and password are required")
	}

	existing, err := c.userDAO.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if existing != nil {
		return nil, apperrors.Validationf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user, err := c.userDAO.CreateUser(ctx, req.Username, req.Email, string(hash))
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	return user, nil
}

func (c *AuthController) Login(ctx context.Context, req types.LoginRequest) (*types.TokenResponse, error) {
	user, err := c.userDAO.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Storage(err)
	}
	if user == nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}
	return &types.TokenResponse{AccessToken: signed, TokenType: "bearer"}, nil
}

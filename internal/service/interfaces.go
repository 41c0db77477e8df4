package service

import (
	"context"

	"github.com/forkfeed/backend/internal/models"
	"github.com/forkfeed/backend/internal/types"
)

// IAuthService is the surface the API layer and middleware need from auth.
type IAuthService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IEmailService delivers transactional mail.
type IEmailService interface {
	SendEmail(to, subject, body string) error
	SendVerificationEmail(user *models.User, code string) error
	SendWelcomeEmail(user *models.User) error
}

// IImageService stores user-provided images and returns public URLs.
type IImageService interface {
	UploadImage(ctx context.Context, data []byte, contentType, prefix string) (string, error)
}

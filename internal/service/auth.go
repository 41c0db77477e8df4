package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/forkfeed/backend/internal/models"
	"github.com/forkfeed/backend/internal/types"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrWrongCode          = errors.New("wrong verification code")
	ErrCodeExpired        = errors.New("verification code expired")
)

const verificationCodeTTL = 15 * time.Minute

// AuthService handles registration, login, email verification and JWT
// issue/validation.
type AuthService struct {
	db        *gorm.DB
	email     IEmailService
	jwtSecret string
}

func NewAuthService(db *gorm.DB, email IEmailService, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		email:     email,
		jwtSecret: jwtSecret,
	}
}

// Register creates an unverified user, issues a verification code and mails
// it. The returned user still needs to verify before voting or commenting.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}
	if err := s.db.WithContext(ctx).Where("LOWER(username) = LOWER(?)", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:                username,
		Email:                   email,
		PasswordHash:            string(hashedPassword),
		VerificationCode:        code,
		VerificationCodeExpires: time.Now().Add(verificationCodeTTL),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	if err := s.email.SendVerificationEmail(&user, code); err != nil {
		// Registration stands even when the mail bounces; the user can
		// request a new code.
		log.Printf("failed to send verification email to %s: %v", user.Email, err)
	}

	return &user, nil
}

// Login checks credentials and returns a signed token for the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// VerifyEmail checks the six-digit code and marks the user verified. On
// success the code is cleared, a welcome mail goes out and a token is issued.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, ErrUserNotFound
	}

	if user.EmailVerified {
		return "", nil, ErrAlreadyVerified
	}
	if user.VerificationCode != code {
		return "", nil, ErrWrongCode
	}
	if time.Now().After(user.VerificationCodeExpires) {
		return "", nil, ErrCodeExpired
	}

	user.EmailVerified = true
	user.VerificationCode = ""
	user.VerificationCodeExpires = time.Time{}
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return "", nil, err
	}

	if err := s.email.SendWelcomeEmail(&user); err != nil {
		log.Printf("failed to send welcome email to %s: %v", user.Email, err)
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// ResendCode issues a fresh verification code for an unverified user.
func (s *AuthService) ResendCode(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return ErrUserNotFound
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}

	code, err := generateVerificationCode()
	if err != nil {
		return err
	}
	user.VerificationCode = code
	user.VerificationCodeExpires = time.Now().Add(verificationCodeTTL)
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return err
	}

	return s.email.SendVerificationEmail(&user, code)
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GenerateToken signs a 24h HS256 token for the user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a token string.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &types.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*types.TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// generateVerificationCode produces a random six-digit code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

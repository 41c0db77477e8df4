package mocks

import (
	"sync"

	"github.com/forkfeed/backend/internal/models"
)

// EmailService records outgoing mail instead of sending it. Tests read the
// captured codes to drive the verification flow.
type EmailService struct {
	mu sync.Mutex

	Sent              []SentEmail
	VerificationCodes map[string]string
	WelcomesSent      []string
}

type SentEmail struct {
	To      string
	Subject string
	Body    string
}

func NewEmailService() *EmailService {
	return &EmailService{VerificationCodes: make(map[string]string)}
}

func (m *EmailService) SendEmail(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *EmailService) SendVerificationEmail(user *models.User, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.VerificationCodes[user.Email] = code
	return nil
}

func (m *EmailService) SendWelcomeEmail(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WelcomesSent = append(m.WelcomesSent, user.Email)
	return nil
}

// LastCode returns the most recent verification code sent to email.
func (m *EmailService) LastCode(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.VerificationCodes[email]
}

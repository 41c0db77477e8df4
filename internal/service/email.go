package service

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/forkfeed/backend/internal/models"
)

type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func NewEmailService() IEmailService {
	return &EmailService{
		smtpHost:     readSecret("smtp_host"),
		smtpPort:     readSecret("smtp_port"),
		smtpUsername: readSecret("smtp_username"),
		smtpPassword: readSecret("smtp_password"),
		fromEmail:    readSecret("email_from"),
		fromName:     readSecret("email_from_name"),
	}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	// If SMTP is not configured, log the email instead
	if s.smtpHost == "" || s.smtpPort == "" {
		log.Printf("SMTP not configured, logging email:")
		log.Printf("To: %s", to)
		log.Printf("Subject: %s", subject)
		log.Printf("Body:\n%s", body)
		return nil
	}

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, from, subject, body))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *EmailService) SendVerificationEmail(user *models.User, code string) error {
	subject := "Your ForkFeed Verification Code"
	body := s.buildVerificationEmailBody(user, code)
	return s.SendEmail(user.Email, subject, body)
}

func (s *EmailService) SendWelcomeEmail(user *models.User) error {
	subject := "Welcome to ForkFeed!"
	body := s.buildWelcomeEmailBody(user)
	return s.SendEmail(user.Email, subject, body)
}

func (s *EmailService) buildVerificationEmailBody(user *models.User, code string) string {
	caser := cases.Title(language.English)
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Your ForkFeed Verification Code</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background-color: #EA580C; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="margin: 0; font-size: 28px;">🍴 ForkFeed</h1>
		<p style="margin: 10px 0 0 0; font-size: 16px;">Share what you cook</p>
	</div>

	<div style="background-color: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
		<h2 style="color: #EA580C; margin-top: 0;">Hello, %s!</h2>
		<p>Thanks for signing up for ForkFeed. Enter this code to verify your email address:</p>

		<div style="text-align: center; margin: 30px 0;">
			<span style="background-color: #eee; padding: 15px 30px; border-radius: 5px; font-weight: bold; font-size: 28px; letter-spacing: 8px; display: inline-block;">%s</span>
		</div>

		<div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd;">
			<p style="color: #666; font-size: 12px; margin: 0;">
				This code expires in 15 minutes. If you didn't sign up for ForkFeed, you can safely ignore this email.
			</p>
		</div>
	</div>
</body>
</html>
	`, caser.String(user.Username), code)
}

func (s *EmailService) buildWelcomeEmailBody(user *models.User) string {
	caser := cases.Title(language.English)
	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173" // Development fallback
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Welcome to ForkFeed!</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background-color: #EA580C; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="margin: 0; font-size: 28px;">🎉 Welcome to ForkFeed!</h1>
	</div>

	<div style="background-color: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
		<h2 style="color: #EA580C; margin-top: 0;">Hello %s!</h2>
		<p>Your email has been verified. You're all set.</p>

		<h3 style="color: #EA580C;">What can you do now?</h3>
		<ul style="padding-left: 20px;">
			<li style="margin-bottom: 10px;">🍳 <strong>Publish recipes:</strong> Share your best dishes with the community</li>
			<li style="margin-bottom: 10px;">🔍 <strong>Search by ingredients:</strong> Find recipes you can cook with what's in your fridge</li>
			<li style="margin-bottom: 10px;">👍 <strong>Like and comment:</strong> Tell other cooks what worked</li>
			<li style="margin-bottom: 10px;">👥 <strong>Follow cooks:</strong> Build your own feed of favorite authors</li>
		</ul>

		<div style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #EA580C; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; font-weight: bold; font-size: 16px; display: inline-block;">
				Start Cooking
			</a>
		</div>
	</div>
</body>
</html>
	`, caser.String(user.Username), frontendURL)
}

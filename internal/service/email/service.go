package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v3"

	"project-catalog/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendProjectStatusEmail(ctx context.Context, msg ProjectStatusEmail) error
}

type ProjectStatusEmail struct {
	ToEmail       string
	RecipientName string
	ProjectID     uuid.UUID
	ProjectTitle  string
	ReviewerName  string
	Approved      bool
	Reason        string
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

func render(templateName string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout.html", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	html, err := render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Project Catalog <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func projectStatusData(msg ProjectStatusEmail, appURL string) interface{} {
	status, color := "approved", "#10b981"
	if !msg.Approved {
		status, color = "rejected", "#ef4444"
	}

	return struct {
		Title        string
		Name         string
		ReviewerName string
		ProjectTitle string
		Status       string
		Color        string
		Reason       string
		Link         string
	}{
		Title:        fmt.Sprintf("Project %s", status),
		Name:         msg.RecipientName,
		ReviewerName: msg.ReviewerName,
		ProjectTitle: msg.ProjectTitle,
		Status:       status,
		Color:        color,
		Reason:       msg.Reason,
		Link:         fmt.Sprintf("%s/projects/%s", appURL, msg.ProjectID),
	}
}

func (s *service) SendProjectStatusEmail(ctx context.Context, msg ProjectStatusEmail) error {
	subject := fmt.Sprintf("Your project \"%s\" was approved", msg.ProjectTitle)
	if !msg.Approved {
		subject = fmt.Sprintf("Your project \"%s\" was rejected", msg.ProjectTitle)
	}
	return s.sendEmail(msg.ToEmail, subject, "project_status.html", projectStatusData(msg, s.config.AppURL))
}

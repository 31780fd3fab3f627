package contact

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Message is a contact-form submission.
type Message struct {
	ID      uint
	Name    string
	Email   string
	Subject string
	Body    string
	SentAt  time.Time
}

func NewMessage(name, email, subject, body string) (*Message, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)

	if name == "" || len(name) > 200 {
		return nil, fmt.Errorf("name must be between 1 and 200 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address: %w", err)
	}
	if subject == "" || len(subject) > 200 {
		return nil, fmt.Errorf("subject must be between 1 and 200 characters")
	}
	if body == "" || len(body) > 500 {
		return nil, fmt.Errorf("message must be between 1 and 500 characters")
	}

	return &Message{
		Name:    name,
		Email:   email,
		Subject: subject,
		Body:    body,
		SentAt:  time.Now(),
	}, nil
}

type Repository interface {
	Create(message *Message) error
	GetByID(id uint) (*Message, error)
	List(offset, limit int) ([]*Message, int64, error)
}

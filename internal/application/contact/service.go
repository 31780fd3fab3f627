package contact

import (
	"time"

	"github.com/joshuahale/portfolio-backend/internal/domain/contact"
	"github.com/joshuahale/portfolio-backend/internal/shared/errors"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
)

// NotificationSender delivers the owner notification for a submission.
type NotificationSender interface {
	SendContactNotification(to, name, fromEmail, subject, body string, sentAt time.Time) error
}

// MessageDTO is the acknowledgement returned to the visitor.
type MessageDTO struct {
	ID      uint   `json:"id"`
	SentAt  string `json:"sent_at"`
	Message string `json:"message"`
}

type SubmitCommand struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

type Service struct {
	messages  contact.Repository
	sender    NotificationSender
	recipient string
	logger    logger.Interface
}

func NewService(messages contact.Repository, sender NotificationSender, recipient string, log logger.Interface) *Service {
	return &Service{
		messages:  messages,
		sender:    sender,
		recipient: recipient,
		logger:    log,
	}
}

// Submit persists the message and then notifies the site owner by email.
// Email delivery failure is logged but never fails the submission; the
// message is already stored and can be read from the admin listing.
func (s *Service) Submit(cmd SubmitCommand) (*MessageDTO, error) {
	msg, err := contact.NewMessage(cmd.Name, cmd.Email, cmd.Subject, cmd.Body)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.messages.Create(msg); err != nil {
		return nil, err
	}
	s.logger.Infow("contact message saved", "message_id", msg.ID)

	if err := s.sender.SendContactNotification(s.recipient, msg.Name, msg.Email, msg.Subject, msg.Body, msg.SentAt); err != nil {
		s.logger.Errorw("failed to send contact notification", "message_id", msg.ID, "error", err)
	}

	return &MessageDTO{
		ID:      msg.ID,
		SentAt:  msg.SentAt.UTC().Format(time.RFC3339),
		Message: "Thank you for your message!",
	}, nil
}

// List returns stored submissions for the authenticated owner.
func (s *Service) List(page, pageSize int) ([]*contact.Message, int64, error) {
	offset := (page - 1) * pageSize
	return s.messages.List(offset, pageSize)
}

package contact

import (
	"context"
	"time"

	"github.com/karthikurao/portfolio/internal/utils"
)

// Archive keeps a copy of every submission.
type Archive interface {
	SaveMessage(ctx context.Context, s Submission, delivered bool) error
}

// Service forwards a submission and archives it whether or not delivery
// worked. archive may be nil.
type Service struct {
	sender  Sender
	archive Archive
	now     func() time.Time
}

func NewService(sender Sender, archive Archive) *Service {
	return &Service{sender: sender, archive: archive, now: time.Now}
}

func (s *Service) Submit(ctx context.Context, f Form) (Submission, error) {
	sub := NewSubmission(f, s.now())
	log := utils.Log.WithField("submission", sub.ID)

	sendErr := s.sender.Send(ctx, sub)
	if sendErr != nil {
		log.WithError(sendErr).Error("Error forwarding contact message")
	} else {
		log.Info("Contact message forwarded")
	}

	if s.archive != nil {
		if err := s.archive.SaveMessage(ctx, sub, sendErr == nil); err != nil {
			log.WithError(err).Error("Error archiving contact message")
		}
	}
	return sub, sendErr
}

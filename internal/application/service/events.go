package service

import (
	"context"

	"github.com/khoahotran/portfolio/internal/domain/contact"
)

type ContactEventPublisher interface {
	PublishContactSubmitted(ctx context.Context, s *contact.Submission) error
}

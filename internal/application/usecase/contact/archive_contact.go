package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/contact"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// ArchiveFolder is the media-store folder that holds archived submissions.
const ArchiveFolder = "contacts"

const (
	defaultArchiveAttempts = 5
	defaultArchiveBackoff  = 2 * time.Second
)

// ArchiveContactUseCase copies a stored submission to the media store. It
// runs in the worker, off the request path.
type ArchiveContactUseCase struct {
	uploader    service.Uploader
	logger      logger.Logger
	maxAttempts int
	backoff     time.Duration
}

type ArchiveOption func(*ArchiveContactUseCase)

// WithArchiveRetry sets how many uploads are attempted per submission and
// the delay before the second one. The delay doubles after each failure.
func WithArchiveRetry(attempts int, backoff time.Duration) ArchiveOption {
	return func(uc *ArchiveContactUseCase) {
		if attempts < 1 {
			attempts = 1
		}
		uc.maxAttempts = attempts
		uc.backoff = backoff
	}
}

func NewArchiveContactUseCase(up service.Uploader, log logger.Logger, opts ...ArchiveOption) *ArchiveContactUseCase {
	uc := &ArchiveContactUseCase{
		uploader:    up,
		logger:      log,
		maxAttempts: defaultArchiveAttempts,
		backoff:     defaultArchiveBackoff,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type ArchiveContactOutput struct {
	URL string
}

func (uc *ArchiveContactUseCase) Execute(ctx context.Context, s *contact.Submission) (*ArchiveContactOutput, error) {
	ctx, span := tracer.Start(ctx, "ArchiveContact")
	defer span.End()

	if s == nil || s.ID == "" {
		return nil, fmt.Errorf("archive contact: submission has no id")
	}

	body, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("encode submission %s failed: %w", s.ID, err)
	}

	url, err := uc.upload(ctx, body, "contact_"+s.ID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("upload submission %s failed: %w", s.ID, err)
	}

	uc.logger.Info("Archived contact submission", zap.String("contact_id", s.ID), zap.String("url", url))
	return &ArchiveContactOutput{URL: url}, nil
}

func (uc *ArchiveContactUseCase) upload(ctx context.Context, body []byte, publicID string) (string, error) {
	delay := uc.backoff
	for attempt := 1; ; attempt++ {
		url, err := uc.uploader.Upload(ctx, bytes.NewReader(body), ArchiveFolder, publicID)
		if err == nil {
			return url, nil
		}
		if attempt >= uc.maxAttempts {
			return "", fmt.Errorf("after %d attempts: %w", attempt, err)
		}

		uc.logger.Warn("Archive upload failed, retrying",
			zap.String("public_id", publicID),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("retry aborted: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}
}

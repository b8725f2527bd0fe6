package contact

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/application/service"
	"github.com/khoahotran/portfolio/internal/domain/contact"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

var tracer = otel.Tracer("contact_usecase")

const missingFieldsMessage = "All fields are required"

type SubmitContactUseCase struct {
	contactRepo contact.Repository
	publisher   service.ContactEventPublisher
	newID       contact.IDGenerator
	now         func() time.Time
	logger      logger.Logger

	publishing sync.WaitGroup
}

// NewSubmitContactUseCase wires the submit flow. publisher may be nil when
// no event broker is configured.
func NewSubmitContactUseCase(repo contact.Repository, publisher service.ContactEventPublisher, newID contact.IDGenerator, log logger.Logger) *SubmitContactUseCase {
	if newID == nil {
		newID = contact.NewUUIDv7Generator()
	}
	return &SubmitContactUseCase{
		contactRepo: repo,
		publisher:   publisher,
		newID:       newID,
		now:         time.Now,
		logger:      log,
	}
}

type SubmitContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type SubmitContactOutput struct {
	ID string
}

func (uc *SubmitContactUseCase) Execute(ctx context.Context, input SubmitContactInput) (*SubmitContactOutput, error) {
	ctx, span := tracer.Start(ctx, "SubmitContact")
	defer span.End()

	in := contact.Input{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}
	if err := in.Validate(); err != nil {
		appErr := apperror.NewValidation(missingFieldsMessage, err.Error(), err)
		span.RecordError(appErr)
		return nil, appErr
	}

	submission := contact.NewSubmission(uc.newID(), in, uc.now())
	span.SetAttributes(attribute.String("contact.id", submission.ID))

	if err := uc.contactRepo.Append(ctx, submission); err != nil {
		uc.logger.Error("Failed to store contact submission", err, zap.String("contact_id", submission.ID))
		if !errors.Is(err, apperror.ErrPersistence) {
			err = apperror.NewPersistence("append contact submission failed", err)
		}
		span.RecordError(err)
		return nil, err
	}

	uc.logger.Info("Contact submission stored", zap.String("contact_id", submission.ID))

	if uc.publisher != nil {
		uc.publishing.Add(1)
		go func() {
			defer uc.publishing.Done()
			if err := uc.publisher.PublishContactSubmitted(context.WithoutCancel(ctx), submission); err != nil {
				uc.logger.Error("Failed to publish Kafka 'contact.submitted' event", err, zap.String("contact_id", submission.ID))
			}
		}()
	}

	return &SubmitContactOutput{ID: submission.ID}, nil
}

// Wait blocks until every event publish started by Execute has finished.
// Call it after the HTTP server has stopped and before closing the publisher.
func (uc *SubmitContactUseCase) Wait() {
	uc.publishing.Wait()
}

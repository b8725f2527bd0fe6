package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submission is a validated contact message. It is written once and never
// read back by the API.
type Submission struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Subject   string    `json:"subject" bson:"subject"`
	Message   string    `json:"message" bson:"message"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

var (
	ErrMissingFields = errors.New("all fields are required")
	ErrDuplicateID   = errors.New("submission id already exists")
)

// Validate reports every field that is empty or only whitespace.
func (in Input) Validate() error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"email", in.Email},
		{"subject", in.Subject},
		{"message", in.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

// NewSubmission stamps in with id and timestamp. in must already be valid.
func NewSubmission(id string, in Input, at time.Time) *Submission {
	return &Submission{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Timestamp: at.UTC(),
	}
}

type IDGenerator func() string

// NewUUIDv7Generator returns time-ordered ids. Falls back to a random v4 id
// if the v7 clock sequence cannot be read.
func NewUUIDv7Generator() IDGenerator {
	return func() string {
		id, err := uuid.NewV7()
		if err != nil {
			return uuid.NewString()
		}
		return id.String()
	}
}

type Repository interface {
	// Append stores s under s.ID. It returns ErrDuplicateID rather than
	// overwrite an existing submission.
	Append(ctx context.Context, s *Submission) error
}

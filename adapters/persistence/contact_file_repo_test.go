package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/internal/domain/contact"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

func newSubmission(id string) *contact.Submission {
	return contact.NewSubmission(id, contact.Input{
		Name:    "A",
		Email:   "a@b.com",
		Subject: "Hello",
		Message: "Let's talk",
	}, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
}

func TestFileContactRepo_WritesIndentedJSON(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo := NewFileContactRepo(fs, "/var/contacts", logger.NewNopLogger())

	require.NoError(t, repo.Append(context.Background(), newSubmission("0190a1b2")))

	raw, err := afero.ReadFile(fs, filepath.Join("/var/contacts", "contact_0190a1b2.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  \"email\": \"a@b.com\"")

	var got contact.Submission
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "0190a1b2", got.ID)
	assert.Equal(t, "2025-01-02T03:04:05Z", got.Timestamp.Format(time.RFC3339))
}

func TestFileContactRepo_NeverOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo := NewFileContactRepo(fs, "/var/contacts", logger.NewNopLogger())
	require.NoError(t, repo.Append(context.Background(), newSubmission("dup")))

	second := newSubmission("dup")
	second.Message = "overwrite attempt"
	err := repo.Append(context.Background(), second)

	require.ErrorIs(t, err, apperror.ErrPersistence)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.ErrorIs(t, appErr.Cause(), contact.ErrDuplicateID)

	raw, err := afero.ReadFile(fs, "/var/contacts/contact_dup.json")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "overwrite attempt")
}

func TestFileContactRepo_RejectsPathLikeIDs(t *testing.T) {
	repo := NewFileContactRepo(afero.NewMemMapFs(), "/var/contacts", logger.NewNopLogger())

	for _, id := range []string{"", "../escape", "a/b"} {
		err := repo.Append(context.Background(), newSubmission(id))
		assert.ErrorIs(t, err, apperror.ErrPersistence, id)
	}
}

func TestFileContactRepo_ReadOnlyFsIsPersistenceError(t *testing.T) {
	repo := NewFileContactRepo(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/var/contacts", logger.NewNopLogger())

	err := repo.Append(context.Background(), newSubmission("ro"))

	assert.ErrorIs(t, err, apperror.ErrPersistence)
}

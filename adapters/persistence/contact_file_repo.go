package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/contact"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type fileContactRepo struct {
	fs     afero.Fs
	dir    string
	logger logger.Logger
}

// NewFileContactRepo writes one contact_<id>.json file per submission
// under dir.
func NewFileContactRepo(fs afero.Fs, dir string, log logger.Logger) contact.Repository {
	return &fileContactRepo{fs: fs, dir: dir, logger: log}
}

func ContactFileName(id string) string {
	return "contact_" + id + ".json"
}

func (r *fileContactRepo) Append(_ context.Context, s *contact.Submission) error {
	if s.ID == "" || s.ID != filepath.Base(s.ID) {
		return apperror.NewPersistence("invalid submission id", fmt.Errorf("id %q cannot be used as a file name", s.ID))
	}

	body, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return apperror.NewPersistence("encode submission failed", err)
	}

	if err := r.fs.MkdirAll(r.dir, 0o755); err != nil {
		return apperror.NewPersistence("create contact directory failed", err)
	}

	path := filepath.Join(r.dir, ContactFileName(s.ID))
	f, err := r.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return apperror.NewPersistence("submission already stored", fmt.Errorf("%w: %s", contact.ErrDuplicateID, s.ID))
		}
		return apperror.NewPersistence("create contact file failed", err)
	}

	if _, err := f.Write(body); err != nil {
		f.Close()
		_ = r.fs.Remove(path)
		return apperror.NewPersistence("write contact file failed", err)
	}
	if err := f.Close(); err != nil {
		_ = r.fs.Remove(path)
		return apperror.NewPersistence("close contact file failed", err)
	}

	r.logger.Info("Stored contact submission", zap.String("path", path))
	return nil
}

package persistence

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/resume"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

//go:embed data/resume.json
var embeddedResume []byte

const maxRemoteResumeBytes = 5 << 20

type embeddedResumeRepo struct {
	raw []byte
}

// NewEmbeddedResumeRepo serves the resume compiled into the binary.
func NewEmbeddedResumeRepo() resume.Repository {
	return &embeddedResumeRepo{raw: embeddedResume}
}

func (r *embeddedResumeRepo) Load(_ context.Context) (*resume.Document, error) {
	doc, err := resume.Parse(r.raw)
	if err != nil {
		return nil, apperror.NewDataUnavailable("embedded resume is corrupt", err)
	}
	return doc, nil
}

type fileResumeRepo struct {
	fs     afero.Fs
	path   string
	logger logger.Logger
}

// NewFileResumeRepo reads path on every Load, so edits to the file show up
// without a restart.
func NewFileResumeRepo(fs afero.Fs, path string, log logger.Logger) resume.Repository {
	return &fileResumeRepo{fs: fs, path: path, logger: log}
}

func (r *fileResumeRepo) Load(_ context.Context) (*resume.Document, error) {
	raw, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		r.logger.Error("Failed to read resume file", err, zap.String("path", r.path))
		return nil, apperror.NewDataUnavailable(fmt.Sprintf("read resume file %s failed", r.path), err)
	}

	doc, err := resume.Parse(raw)
	if err != nil {
		r.logger.Error("Resume file is not a valid document", err, zap.String("path", r.path))
		return nil, apperror.NewDataUnavailable(fmt.Sprintf("resume file %s is corrupt", r.path), err)
	}
	return doc, nil
}

type urlResumeRepo struct {
	client *http.Client
	url    string
	logger logger.Logger
}

// NewURLResumeRepo fetches the resume from url, for example a raw gist.
// A nil client gets a 10 second timeout.
func NewURLResumeRepo(client *http.Client, url string, log logger.Logger) resume.Repository {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &urlResumeRepo{client: client, url: url, logger: log}
}

func (r *urlResumeRepo) Load(ctx context.Context) (*resume.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, apperror.NewDataUnavailable("invalid resume url", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to fetch resume", err, zap.String("url", r.url))
		return nil, apperror.NewDataUnavailable("fetch resume failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		r.logger.Error("Failed to fetch resume", err, zap.String("url", r.url))
		return nil, apperror.NewDataUnavailable("fetch resume failed", err)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteResumeBytes))
	if err != nil {
		return nil, apperror.NewDataUnavailable("read resume response failed", err)
	}

	doc, err := resume.Parse(raw)
	if err != nil {
		r.logger.Error("Remote resume is not a valid document", err, zap.String("url", r.url))
		return nil, apperror.NewDataUnavailable("remote resume is corrupt", err)
	}
	return doc, nil
}

package portfolio

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/internal/domain/resume"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

var tracer = otel.Tracer("portfolio_usecase")

type PortfolioUseCase struct {
	resumeRepo resume.Repository
	logger     logger.Logger
}

func NewPortfolioUseCase(repo resume.Repository, log logger.Logger) *PortfolioUseCase {
	return &PortfolioUseCase{
		resumeRepo: repo,
		logger:     log,
	}
}

type GetResumeOutput struct {
	Resume *resume.Document
}

func (uc *PortfolioUseCase) ExecuteGetResume(ctx context.Context) (*GetResumeOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteGetResume")
	defer span.End()

	doc, err := uc.loadResume(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("resume.bytes", len(doc.Raw)))
	return &GetResumeOutput{Resume: doc}, nil
}

type GetPortfolioOutput struct {
	Portfolio *portfolio.Portfolio
}

func (uc *PortfolioUseCase) ExecuteGetPortfolio(ctx context.Context) (*GetPortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "ExecuteGetPortfolio")
	defer span.End()

	doc, err := uc.loadResume(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	p := portfolio.Transform(doc)
	span.SetAttributes(
		attribute.Int("portfolio.experience", len(p.Experience)),
		attribute.Int("portfolio.skills", len(p.Skills)),
	)
	return &GetPortfolioOutput{Portfolio: p}, nil
}

// loadResume guarantees that every failure leaving this use case is a
// DataUnavailable error.
func (uc *PortfolioUseCase) loadResume(ctx context.Context) (*resume.Document, error) {
	doc, err := uc.resumeRepo.Load(ctx)
	if err != nil {
		uc.logger.Error("Failed to load resume", err)
		if errors.Is(err, apperror.ErrDataUnavailable) {
			return nil, err
		}
		return nil, apperror.NewDataUnavailable("load resume failed", err)
	}
	if doc == nil {
		return nil, apperror.NewDataUnavailable("resume store returned no document", nil)
	}
	return doc, nil
}

package persistence

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/portfolio/internal/domain/contact"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const contactTable = "contact_messages"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresContactRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresContactRepo(db *pgxpool.Pool, log logger.Logger) contact.Repository {
	return &postgresContactRepo{db: db, logger: log}
}

func (r *postgresContactRepo) Append(ctx context.Context, s *contact.Submission) error {
	query, args, err := psql.Insert(contactTable).
		Columns("id", "name", "email", "subject", "message", "created_at").
		Values(s.ID, s.Name, s.Email, s.Subject, s.Message, s.Timestamp).
		ToSql()
	if err != nil {
		return apperror.NewPersistence("build insert failed", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewPersistence("submission already stored", fmt.Errorf("%w: %s", contact.ErrDuplicateID, s.ID))
		}
		return apperror.NewPersistence("failed to save contact submission", err)
	}
	return nil
}

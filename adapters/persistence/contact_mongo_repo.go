package persistence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/khoahotran/portfolio/internal/domain/contact"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const contactCollection = "contact_messages"

type mongoContactRepo struct {
	coll   *mongo.Collection
	logger logger.Logger
}

// NewMongoContactRepo stores submissions in db.contact_messages with the
// submission id as _id.
func NewMongoContactRepo(db *mongo.Database, log logger.Logger) contact.Repository {
	return &mongoContactRepo{coll: db.Collection(contactCollection), logger: log}
}

func (r *mongoContactRepo) Append(ctx context.Context, s *contact.Submission) error {
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.NewPersistence("submission already stored", fmt.Errorf("%w: %s", contact.ErrDuplicateID, s.ID))
		}
		return apperror.NewPersistence("failed to save contact submission", err)
	}
	return nil
}

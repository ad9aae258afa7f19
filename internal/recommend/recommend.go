package recommend

import (
	"context"

	"github.com/meditrack/meditrack/internal/models"
)

// Recommender maps free-text symptoms onto the specialist taxonomy. It is
// an external classifier: this core consumes the returned category and
// ordering, never the model behind them.
type Recommender interface {
	Classify(ctx context.Context, symptoms string) (models.Specialty, error)
	RankBySimilarity(ctx context.Context, query string) ([]uint, error)
}

// DoctorLister is the slice of the directory a recommender may consult to
// turn a category into concrete doctor ids.
type DoctorLister interface {
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
}

package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meditrack/meditrack/internal/models"
)

type staticDoctors []models.Doctor

func (d staticDoctors) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	return d, nil
}

func TestStaticClassify(t *testing.T) {
	r := NewStaticRecommender(staticDoctors(nil))
	ctx := context.Background()

	tests := []struct {
		symptoms string
		want     models.Specialty
	}{
		{"sharp chest pain when climbing stairs", models.SpecialtyCardiologist},
		{"itchy RASH on both arms", models.SpecialtyDermatologist},
		{"recurring migraine with aura", models.SpecialtyNeurologist},
		{"joint stiffness in the morning", models.SpecialtyOrthopedic},
		{"my infant will not stop coughing", models.SpecialtyPediatrician},
		{"feeling generally tired", models.SpecialtyGeneral},
		{"", models.SpecialtyGeneral},
	}

	for _, tt := range tests {
		got, err := r.Classify(ctx, tt.symptoms)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "symptoms: %q", tt.symptoms)
	}
}

func TestStaticRank_MatchingSpecialtyFirst(t *testing.T) {
	doctors := staticDoctors{
		{Person: models.Person{ID: 1}, Name: "Dr. Rao", Specialty: models.SpecialtyGeneral},
		{Person: models.Person{ID: 2}, Name: "Dr. Mehta", Specialty: models.SpecialtyCardiologist},
		{Person: models.Person{ID: 3}, Name: "Dr. Iyer", Specialty: models.SpecialtyCardiologist},
	}
	r := NewStaticRecommender(doctors)

	ids, err := r.RankBySimilarity(context.Background(), "heart palpitations at night")
	require.NoError(t, err)
	require.Equal(t, []uint{2, 3, 1}, ids)
}

func TestStaticRank_NoMatchKeepsCatalogOrder(t *testing.T) {
	doctors := staticDoctors{
		{Person: models.Person{ID: 1}, Specialty: models.SpecialtyDermatologist},
		{Person: models.Person{ID: 2}, Specialty: models.SpecialtyOrthopedic},
	}
	r := NewStaticRecommender(doctors)

	ids, err := r.RankBySimilarity(context.Background(), "mild fever")
	require.NoError(t, err)
	require.Equal(t, []uint{1, 2}, ids)
}

package recommend

import (
	"context"
	"strings"

	"github.com/meditrack/meditrack/internal/models"
)

// StaticRecommender is a keyword classifier used when no model API key is
// configured, and by tests. Same contract, no network.
type StaticRecommender struct {
	doctors DoctorLister
}

func NewStaticRecommender(doctors DoctorLister) *StaticRecommender {
	return &StaticRecommender{doctors: doctors}
}

var keywordSpecialties = []struct {
	keyword   string
	specialty models.Specialty
}{
	{"chest", models.SpecialtyCardiologist},
	{"heart", models.SpecialtyCardiologist},
	{"palpitation", models.SpecialtyCardiologist},
	{"skin", models.SpecialtyDermatologist},
	{"rash", models.SpecialtyDermatologist},
	{"acne", models.SpecialtyDermatologist},
	{"headache", models.SpecialtyNeurologist},
	{"migraine", models.SpecialtyNeurologist},
	{"seizure", models.SpecialtyNeurologist},
	{"bone", models.SpecialtyOrthopedic},
	{"joint", models.SpecialtyOrthopedic},
	{"fracture", models.SpecialtyOrthopedic},
	{"child", models.SpecialtyPediatrician},
	{"infant", models.SpecialtyPediatrician},
}

func (s *StaticRecommender) Classify(ctx context.Context, symptoms string) (models.Specialty, error) {
	lower := strings.ToLower(symptoms)
	for _, ks := range keywordSpecialties {
		if strings.Contains(lower, ks.keyword) {
			return ks.specialty, nil
		}
	}
	return models.SpecialtyGeneral, nil
}

func (s *StaticRecommender) RankBySimilarity(ctx context.Context, query string) ([]uint, error) {
	specialty, err := s.Classify(ctx, query)
	if err != nil {
		return nil, err
	}

	doctors, err := s.doctors.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}

	var matched, rest []uint
	for _, d := range doctors {
		if d.Specialty == specialty {
			matched = append(matched, d.ID)
		} else {
			rest = append(rest, d.ID)
		}
	}
	return append(matched, rest...), nil
}

var _ Recommender = (*StaticRecommender)(nil)

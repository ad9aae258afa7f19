package appointment

import (
	"context"
	"time"

	"github.com/meditrack/meditrack/internal/availability"
	domain "github.com/meditrack/meditrack/internal/domain/appointment"
)

type ListSlots struct {
	repo   domain.Repository
	policy availability.Policy
}

func NewListSlots(repo domain.Repository, policy availability.Policy) *ListSlots {
	return &ListSlots{repo: repo, policy: policy}
}

func (uc *ListSlots) Execute(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) ([]availability.Slot, error) {

	if _, err := uc.repo.GetDoctorByID(ctx, doctorID); err != nil {
		return nil, err
	}

	// Only appointments still occupying the calendar; cancelled ones have
	// released their interval.
	booked, err := uc.repo.ListDayAppointments(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	step := time.Duration(uc.policy.SlotMinutes()) * time.Minute
	starts := uc.policy.Slots(date, booked)

	slots := make([]availability.Slot, 0, len(starts))
	for _, s := range starts {
		slots = append(slots, availability.Slot{
			Start: s.Format("15:04"),
			End:   s.Add(step).Format("15:04"),
		})
	}
	return slots, nil
}

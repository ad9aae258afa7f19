package availability

import (
	"fmt"
	"time"

	"github.com/meditrack/meditrack/internal/config"
	"github.com/meditrack/meditrack/internal/models"
)

// Policy is the immutable working-hours grid shared by every doctor:
// day boundaries, slot granularity and hard break windows. Built once at
// startup, never mutated.
type Policy struct {
	dayStart    int // minutes from midnight
	dayEnd      int
	slotMinutes int
	breaks      []window
}

type window struct {
	start int
	end   int
}

type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func NewPolicy(cfg config.WorkingHours) (Policy, error) {
	dayStart, err := parseHM(cfg.DayStart)
	if err != nil {
		return Policy{}, fmt.Errorf("working hours start: %w", err)
	}
	dayEnd, err := parseHM(cfg.DayEnd)
	if err != nil {
		return Policy{}, fmt.Errorf("working hours end: %w", err)
	}
	if dayEnd <= dayStart {
		return Policy{}, fmt.Errorf("working hours end %q not after start %q", cfg.DayEnd, cfg.DayStart)
	}
	if cfg.SlotMinutes <= 0 {
		return Policy{}, fmt.Errorf("slot minutes must be positive, got %d", cfg.SlotMinutes)
	}

	p := Policy{
		dayStart:    dayStart,
		dayEnd:      dayEnd,
		slotMinutes: cfg.SlotMinutes,
	}

	for _, b := range cfg.Breaks {
		bs, err := parseHM(b.Start)
		if err != nil {
			return Policy{}, fmt.Errorf("break start: %w", err)
		}
		be, err := parseHM(b.End)
		if err != nil {
			return Policy{}, fmt.Errorf("break end: %w", err)
		}
		if be <= bs {
			return Policy{}, fmt.Errorf("break end %q not after start %q", b.End, b.Start)
		}
		p.breaks = append(p.breaks, window{start: bs, end: be})
	}

	return p, nil
}

func parseHM(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func (p Policy) SlotMinutes() int {
	return p.slotMinutes
}

// Slots enumerates every bookable start time on the given date: the full
// grid from day start to day end at slot granularity, minus boundaries
// inside a break window and minus starts already taken by the booked
// appointments. Callers pass only appointments that still occupy the
// calendar (cancelled ones released their interval).
func (p Policy) Slots(date time.Time, booked []models.Appointment) []time.Time {
	taken := make(map[int]bool, len(booked))
	for _, ap := range booked {
		if ap.StartTime == nil {
			continue
		}
		taken[minuteOfDay(*ap.StartTime)] = true
	}

	var slots []time.Time
	for cur := p.dayStart; cur < p.dayEnd; cur += p.slotMinutes {
		if p.inBreak(cur) || taken[cur] {
			continue
		}
		slots = append(slots, atMinute(date, cur))
	}
	return slots
}

func (p Policy) inBreak(minute int) bool {
	for _, b := range p.breaks {
		if minute >= b.start && minute < b.end {
			return true
		}
	}
	return false
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching boundaries do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// HasConflict is the in-memory overlap test against a doctor's existing
// appointments. Cancelled appointments have no window and never conflict.
func HasConflict(existing []models.Appointment, start, end time.Time) bool {
	for _, ap := range existing {
		if ap.StartTime == nil || ap.EndTime == nil {
			continue
		}
		if Overlaps(*ap.StartTime, *ap.EndTime, start, end) {
			return true
		}
	}
	return false
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func atMinute(date time.Time, minute int) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		minute/60, minute%60, 0, 0,
		date.Location(),
	)
}

// Package schedule derives the set of doses due today from the medication
// list and the dose history. It is pure: callers pass in both snapshots and
// the current time, and nothing here touches the clock or the database.
package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"medication-app-server/internal/models"
)

// Slot is one scheduled dose instance for today, enriched with the
// medication snapshot it was derived from.
type Slot struct {
	Medication    models.Medication `json:"medication"`
	DoseID        string            `json:"doseId"`
	ScheduledTime string            `json:"scheduledTime"` // HH:mm anchor
	ScheduledAt   time.Time         `json:"scheduledAt"`
	IsToday       bool              `json:"isToday"`
	IsMissed      bool              `json:"isMissed"`
}

// DayKey formats t's local calendar day as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// DoseID builds the deterministic dose identity for a medication, day and
// HH:mm anchor. Two log attempts for the same slot collide on this key.
func DoseID(medicationID, dayKey, anchor string) string {
	return medicationID + "::" + dayKey + "::" + anchor
}

// ParseAnchor parses an HH:mm time anchor. Hours outside 0-23 or minutes
// outside 0-59 are rejected.
func ParseAnchor(anchor string) (hour, minute int, ok bool) {
	parts := strings.SplitN(anchor, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// NormalizeAnchors drops malformed entries, zero-pads the rest, removes
// duplicates and sorts ascending. Lexicographic order works for HH:mm.
func NormalizeAnchors(times []string) []string {
	seen := make(map[string]struct{}, len(times))
	out := make([]string, 0, len(times))
	for _, raw := range times {
		h, m, ok := ParseAnchor(raw)
		if !ok {
			continue
		}
		norm := fmt.Sprintf("%02d:%02d", h, m)
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	sort.Strings(out)
	return out
}

// ExpandAnchors produces the ordered list of HH:mm anchors that apply for a
// single calendar day given the medication's frequency.
//
// daily/weekly use every anchor as an independent slot. every-8h/every-12h
// take only the first anchor as the day's starting point and add the
// interval while the hour stays below 24. as-needed never produces slots.
func ExpandAnchors(frequency models.Frequency, times []string) []string {
	base := NormalizeAnchors(times)

	switch frequency {
	case models.FrequencyAsNeeded:
		return nil

	case models.FrequencyEvery8h, models.FrequencyEvery12h:
		interval := 8
		if frequency == models.FrequencyEvery12h {
			interval = 12
		}
		if len(base) == 0 {
			return nil
		}
		h, m, ok := ParseAnchor(base[0])
		if !ok {
			return base
		}
		var out []string
		for ; h < 24; h += interval {
			out = append(out, fmt.Sprintf("%02d:%02d", h, m))
		}
		return out

	default:
		return base
	}
}

// BuildSchedule computes the due-today slots for the given medications,
// excluding any slot already present in the dose history. Missed slots sort
// first, then ascending by scheduled time.
func BuildSchedule(medications []models.Medication, history []models.DoseHistoryEntry, now time.Time) []Slot {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayKey := DayKey(midnight)

	// Doses already taken or skipped, keyed by dose identity. Older records
	// without a doseId match by their storage id instead.
	logged := make(map[string]struct{}, len(history))
	for _, entry := range history {
		if entry.DoseID != "" {
			logged[entry.DoseID] = struct{}{}
		} else if entry.ID != "" {
			logged[entry.ID] = struct{}{}
		}
	}

	var out []Slot

	for _, med := range medications {
		if med.Frequency == models.FrequencyAsNeeded || len(med.Times) == 0 {
			continue
		}

		// Weekly medications with a weekday restriction only apply on those days.
		if med.Frequency == models.FrequencyWeekly && len(med.WeekDays) > 0 {
			weekday := int(midnight.Weekday())
			if !containsInt(med.WeekDays, weekday) {
				continue
			}
		}

		for _, anchor := range ExpandAnchors(med.Frequency, med.Times) {
			h, m, ok := ParseAnchor(anchor)
			if !ok {
				continue
			}
			at := time.Date(midnight.Year(), midnight.Month(), midnight.Day(), h, m, 0, 0, midnight.Location())

			// Creation-day guard: a slot earlier than the medication's creation
			// belongs to the next day, which this engine does not materialize.
			effectiveKey := todayKey
			if !med.CreatedAt.IsZero() && med.CreatedAt.After(at) {
				at = at.AddDate(0, 0, 1)
				effectiveKey = DayKey(at)
			}
			if effectiveKey != todayKey {
				continue
			}

			doseID := DoseID(med.ID, effectiveKey, anchor)
			if _, done := logged[doseID]; done {
				continue
			}

			out = append(out, Slot{
				Medication:    med,
				DoseID:        doseID,
				ScheduledTime: anchor,
				ScheduledAt:   at,
				IsToday:       true,
				IsMissed:      at.Before(now),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsMissed != out[j].IsMissed {
			return out[i].IsMissed
		}
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})

	return out
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

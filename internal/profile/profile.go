// Package profile derives a CandidateProfile from a resume's skill list and
// work history. Total experience is summed from non-overlapping intervals so
// concurrent positions never double-count.
package profile

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jonathan/match-engine/internal/types"
)

const hoursPerYear = 24 * 365.25

// Build computes a CandidateProfile from skills and work history. Open-ended
// intervals (nil End) are clamped to now. Overlapping intervals are merged
// before summing so the result is the union of time actually worked.
func Build(skills []types.SkillVector, history []types.WorkInterval, now time.Time) (types.CandidateProfile, error) {
	years, err := TotalYears(history, now)
	if err != nil {
		return types.CandidateProfile{}, err
	}
	return types.CandidateProfile{
		Skills:               skills,
		TotalExperienceYears: years,
	}, nil
}

// TotalYears returns the union length of the given intervals in years,
// rounded to 2 decimals.
func TotalYears(history []types.WorkInterval, now time.Time) (float64, error) {
	type span struct {
		start, end time.Time
	}

	spans := make([]span, 0, len(history))
	for i, iv := range history {
		if iv.Start.IsZero() {
			return 0, fmt.Errorf("work interval %d: missing start date", i)
		}
		end := now
		if iv.End != nil {
			end = *iv.End
		}
		if end.Before(iv.Start) {
			return 0, fmt.Errorf("work interval %d: end %s before start %s",
				i, end.Format("2006-01"), iv.Start.Format("2006-01"))
		}
		if end.After(now) {
			end = now
		}
		if !iv.Start.Before(end) {
			continue // zero-length or entirely in the future
		}
		spans = append(spans, span{start: iv.Start, end: end})
	}

	if len(spans) == 0 {
		return 0, nil
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start.Before(spans[j].start) })

	// Merge overlapping or touching spans, then sum.
	total := time.Duration(0)
	cur := spans[0]
	for _, s := range spans[1:] {
		if !s.start.After(cur.end) {
			if s.end.After(cur.end) {
				cur.end = s.end
			}
			continue
		}
		total += cur.end.Sub(cur.start)
		cur = s
	}
	total += cur.end.Sub(cur.start)

	years := total.Hours() / hoursPerYear
	return math.Round(years*100) / 100, nil
}

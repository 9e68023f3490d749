package performance

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/workline-hq/hrms-backend-go/internal/domain/performance"
)

// GradeBand is one slice of the grade table. UpTo is the exclusive upper
// bound of the band; nil means unbounded.
type GradeBand struct {
	UpTo  *decimal.Decimal
	Grade string
}

// ParseGradeBands parses a grade table of the form "60:D,75:C,85:B,:A".
// Bounds must be strictly ascending and only the last band may omit its
// bound.
func ParseGradeBands(table string) ([]GradeBand, error) {
	parts := strings.Split(table, ",")
	if len(parts) == 0 || table == "" {
		return nil, fmt.Errorf("%w: empty table", performance.ErrGradeBandsInvalid)
	}

	bands := make([]GradeBand, 0, len(parts))
	var prev *decimal.Decimal

	for i, part := range parts {
		bound, grade, found := strings.Cut(strings.TrimSpace(part), ":")
		if !found || grade == "" {
			return nil, fmt.Errorf("%w: band %q has no grade", performance.ErrGradeBandsInvalid, part)
		}

		band := GradeBand{Grade: grade}
		if bound != "" {
			upTo, err := decimal.NewFromString(bound)
			if err != nil || !upTo.IsPositive() {
				return nil, fmt.Errorf("%w: band %q has invalid bound", performance.ErrGradeBandsInvalid, part)
			}
			if prev != nil && upTo.LessThanOrEqual(*prev) {
				return nil, fmt.Errorf("%w: bounds must be strictly ascending", performance.ErrGradeBandsInvalid)
			}
			band.UpTo = &upTo
			prev = &upTo
		} else if i != len(parts)-1 {
			return nil, fmt.Errorf("%w: only the last band may be unbounded", performance.ErrGradeBandsInvalid)
		}

		bands = append(bands, band)
	}

	if bands[len(bands)-1].UpTo != nil {
		return nil, fmt.Errorf("%w: last band must be unbounded", performance.ErrGradeBandsInvalid)
	}

	return bands, nil
}

// GradeFor maps a score to the first band whose bound it falls under.
func GradeFor(score decimal.Decimal, bands []GradeBand) string {
	for _, b := range bands {
		if b.UpTo == nil || score.LessThan(*b.UpTo) {
			return b.Grade
		}
	}
	return bands[len(bands)-1].Grade
}

// WeightedScore combines per-indicator scores into one 0-100 figure:
// the sum of score times weight over the total weight, rounded to two
// places. Rows whose picker returns nil are skipped together with their
// weight, so a weighted average over the scored rows remains.
func WeightedScore(scores []performance.IndicatorScore, pick func(performance.IndicatorScore) *decimal.Decimal) *decimal.Decimal {
	total := decimal.Zero
	weight := decimal.Zero

	for _, s := range scores {
		v := pick(s)
		if v == nil {
			continue
		}
		total = total.Add(v.Mul(s.Weight))
		weight = weight.Add(s.Weight)
	}

	if weight.IsZero() {
		return nil
	}

	result := total.Div(weight).Round(2)
	return &result
}

// FinalizeScores fixes each row's final score, preferring the appraiser's
// judgement over the self assessment, and returns the weighted total.
func FinalizeScores(scores []performance.IndicatorScore) ([]performance.IndicatorScore, *decimal.Decimal) {
	for i := range scores {
		switch {
		case scores[i].AppraiserScore != nil:
			scores[i].FinalScore = scores[i].AppraiserScore
		case scores[i].SelfScore != nil:
			scores[i].FinalScore = scores[i].SelfScore
		}
	}

	final := WeightedScore(scores, func(s performance.IndicatorScore) *decimal.Decimal {
		return s.FinalScore
	})
	return scores, final
}

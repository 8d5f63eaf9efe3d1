// Package form tracks short-horizon performance: rolling windows over a
// player's chronological per-match metric series, a consistency index, and
// trend detection against the preceding window.
package form

import (
	"errors"
	"fmt"
	"math"

	"cricmetrics/internal/model"
)

var ErrWindowSize = errors.New("window size must be at least 2")

// Window is one rolling-window snapshot ending at series position End.
// Early positions with fewer than the requested number of points are still
// emitted, flagged Partial, so the series has no silent gaps.
type Window struct {
	End         int // index into the series of the last point included
	Size        int // points actually included
	Partial     bool
	Mean        float64
	StdDev      float64
	Consistency model.Stat
}

// Rolling computes a window at every position of the series. Position i
// covers points max(0, i-w+1)..i in match order.
func Rolling(series model.FormSeries, w int) ([]Window, error) {
	if w < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrWindowSize, w)
	}
	out := make([]Window, 0, len(series.Points))
	for i := range series.Points {
		start := i - w + 1
		if start < 0 {
			start = 0
		}
		vals := values(series.Points[start : i+1])
		mean, sd := meanStdDev(vals)
		out = append(out, Window{
			End:         i,
			Size:        len(vals),
			Partial:     len(vals) < w,
			Mean:        mean,
			StdDev:      sd,
			Consistency: ConsistencyIndex(vals),
		})
	}
	return out, nil
}

// ConsistencyIndex is the inverted coefficient of variation on a 0–100
// scale: 100 means identical values every match, lower means streakier.
// Undefined when the mean is zero (the CV has no meaning there).
func ConsistencyIndex(vals []float64) model.Stat {
	if len(vals) == 0 {
		return model.NoStat()
	}
	mean, sd := meanStdDev(vals)
	if mean == 0 {
		return model.NoStat()
	}
	idx := 100 - 100*sd/mean
	if idx < 0 {
		idx = 0
	}
	return model.StatOf(idx)
}

// Trend compares the latest window against the one before it.
type Trend int

const (
	TrendInsufficientData Trend = iota
	TrendImproving
	TrendDeclining
	TrendStable
)

func (t Trend) String() string {
	switch t {
	case TrendImproving:
		return "improving"
	case TrendDeclining:
		return "declining"
	case TrendStable:
		return "stable"
	default:
		return "insufficient data"
	}
}

// DetectTrend compares the mean of the last w points to the mean of the w
// points before them. Movement within the relative delta counts as stable;
// higherIsBetter flips the direction for metrics like economy where lower
// is the improvement.
func DetectTrend(series model.FormSeries, w int, delta float64, higherIsBetter bool) Trend {
	n := len(series.Points)
	if w < 2 || n < 2*w {
		return TrendInsufficientData
	}
	recent, _ := meanStdDev(values(series.Points[n-w:]))
	prior, _ := meanStdDev(values(series.Points[n-2*w : n-w]))

	if prior == 0 {
		if recent == 0 {
			return TrendStable
		}
		if (recent > 0) == higherIsBetter {
			return TrendImproving
		}
		return TrendDeclining
	}

	change := (recent - prior) / math.Abs(prior)
	if math.Abs(change) <= delta {
		return TrendStable
	}
	if (change > 0) == higherIsBetter {
		return TrendImproving
	}
	return TrendDeclining
}

func values(points []model.FormPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}

// meanStdDev returns the mean and population standard deviation.
func meanStdDev(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var ss float64
	for _, v := range vals {
		d := v - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(vals)))
}

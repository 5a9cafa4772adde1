package orchestrator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// LogF0Floor is the clip value for log-F0 statistics. Frames at the floor
// are unvoiced and excluded.
const LogF0Floor = -10.0

func toFloat32(x []float64) []float32 {
	out := make([]float32, len(x))
	for i, v := range x {
		out[i] = float32(v)
	}
	return out
}

func toFloat32Matrix(x [][]float64) [][]float32 {
	out := make([][]float32, len(x))
	for i, row := range x {
		out[i] = toFloat32(row)
	}
	return out
}

// voicedLogF0 clips values at LogF0Floor and drops frames left on the floor.
func voicedLogF0(dst []float64, values []float32) []float64 {
	for _, v := range values {
		x := math.Max(float64(v), LogF0Floor)
		if x == LogF0Floor {
			continue
		}
		dst = append(dst, x)
	}
	return dst
}

// moments returns the population mean and standard deviation of x.
func moments(x []float64) Moments {
	if len(x) == 0 {
		return Moments{}
	}
	mean, std := stat.PopMeanStdDev(x, nil)
	return Moments{Mean: mean, Std: std}
}

func (r *Range) update(rows [][]float32) {
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		x := make([]float64, len(row))
		for i, v := range row {
			x[i] = float64(v)
		}
		r.Min = math.Min(r.Min, floats.Min(x))
		r.Max = math.Max(r.Max, floats.Max(x))
	}
}

func emptyRange() *Range {
	return &Range{Min: math.Inf(1), Max: math.Inf(-1)}
}

// sortedIndex numbers the distinct values in lexical order.
func sortedIndex(values map[string]struct{}) map[string]int {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]int, len(keys))
	for i, k := range keys {
		out[k] = i
	}
	return out
}

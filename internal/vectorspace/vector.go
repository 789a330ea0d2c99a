package vectorspace

import (
	"math"
	"sort"
)

// Vector is a sparse vector. Indices are strictly ascending and
// Values[i] belongs to Indices[i]. The zero value is the zero vector.
type Vector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v Vector) Len() int {
	return len(v.Indices)
}

// IsZero reports whether v has no non-zero entries.
func (v Vector) IsZero() bool {
	return len(v.Indices) == 0
}

// Dot returns the dot product of a and b.
// Entries are summed in ascending index order.
func Dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the Euclidean norm of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Normalized returns v scaled to unit length. The zero vector is returned as is.
func (v Vector) Normalized() Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	out := Vector{
		Indices: append([]int(nil), v.Indices...),
		Values:  make([]float64, len(v.Values)),
	}
	for i, x := range v.Values {
		out.Values[i] = x / n
	}
	return out
}

// fromCounts builds a vector from bucket sums, dropping exact zeros
// left by sign cancellation.
func fromCounts(counts map[int]float64) Vector {
	idx := make([]int, 0, len(counts))
	for k, val := range counts {
		if val != 0 {
			idx = append(idx, k)
		}
	}
	if len(idx) == 0 {
		return Vector{}
	}
	sort.Ints(idx)
	vals := make([]float64, len(idx))
	for i, k := range idx {
		vals[i] = counts[k]
	}
	return Vector{Indices: idx, Values: vals}
}

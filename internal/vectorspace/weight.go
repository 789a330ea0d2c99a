package vectorspace

import "math"

// Weight applies TF-IDF jointly across vectors and L2-normalises each result.
//
// Document frequencies are counted over exactly the given set, so callers
// stack every page vector with the question vector to have the question's
// rare terms judged against this corpus. idf = ln((1+n)/(1+df)) + 1.
// Zero vectors stay zero.
func Weight(vectors []Vector) []Vector {
	n := float64(len(vectors))
	df := make(map[int]int)
	for _, v := range vectors {
		for _, idx := range v.Indices {
			df[idx]++
		}
	}

	out := make([]Vector, len(vectors))
	for i, v := range vectors {
		if v.IsZero() {
			out[i] = Vector{}
			continue
		}
		w := Vector{
			Indices: append([]int(nil), v.Indices...),
			Values:  make([]float64, len(v.Values)),
		}
		for j, idx := range v.Indices {
			idf := math.Log((1+n)/(1+float64(df[idx]))) + 1
			w.Values[j] = v.Values[j] * idf
		}
		out[i] = w.Normalized()
	}
	return out
}

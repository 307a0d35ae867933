package engine

import "math"

// similarity scores two fingerprints in [0,1] as the mean of a
// content score (bucketed character-frequency cosine) and a style
// score (compatible column counts). Symmetric in its arguments.
func similarity(a, b string, dim int) float64 {
	content := cosine(vectorize(a, dim), vectorize(b, dim))
	style := styleSimilarity(a, b)
	return (content + style) / 2
}

// vectorize hashes each character into one of dim buckets,
// accumulating frequency, then L2-normalizes.
func vectorize(s string, dim int) []float64 {
	v := make([]float64, dim)
	for _, r := range s {
		v[int(r)%dim]++
	}
	var mag float64
	for _, x := range v {
		mag += x * x
	}
	mag = math.Sqrt(mag)
	if mag > 0 {
		for i := range v {
			v[i] /= mag
		}
	}
	return v
}

// cosine returns the cosine similarity of two equal-length vectors,
// or 0 when either has zero magnitude.
func cosine(a, b []float64) float64 {
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	magA = math.Sqrt(magA)
	magB = math.Sqrt(magB)
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (magA * magB)
}

// styleSimilarity is a coarse column-count compatibility test: 1.0
// when the smaller count is no more than twice the larger, else 0.
func styleSimilarity(a, b string) float64 {
	ca, cb := fingerprintColumns(a), fingerprintColumns(b)
	lo, hi := ca, cb
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo <= hi*2 {
		return 1.0
	}
	return 0.0
}

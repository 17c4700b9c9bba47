package stats

import "fmt"

// Bin is one equal-width histogram bin covering [Lo, Hi). The last bin also includes Hi.
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Histogram splits the range of b into bins equal-width bins and counts the samples in each.
// When every sample is equal all of them land in the first bin.
func Histogram(b []float64, bins int) ([]Bin, error) {
	if len(b) == 0 {
		return nil, ErrEmpty
	}
	if bins <= 0 {
		return nil, fmt.Errorf("%w: bin count must be positive, got %d", ErrInvalidArgument, bins)
	}

	lo, hi := b[0], b[0]
	for _, v := range b[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	width := (hi - lo) / float64(bins)

	out := make([]Bin, bins)
	for i := range out {
		out[i].Lo = lo + float64(i)*width
		out[i].Hi = lo + float64(i+1)*width
	}
	out[bins-1].Hi = hi

	for _, v := range b {
		i := 0
		if width > 0 {
			i = min(int((v-lo)/width), bins-1)
		}
		out[i].Count++
	}
	return out, nil
}

package preorder

import (
	"sort"

	"github.com/google/minimalloc/core"
	"github.com/google/minimalloc/sweep"
)

// Compute derives PreorderData for every buffer in p, given the sweep
// result already built for it.
func Compute(p *core.Problem, sw *sweep.Result) []PreorderData {
	out := make([]PreorderData, len(p.Buffers))
	for i, b := range p.Buffers {
		width := core.EffectiveDuration(b)

		var sections int
		for _, span := range sw.SectionSpans[i] {
			sections += int(span.SectionRange.Upper - span.SectionRange.Lower)
		}

		var total int64
		for _, ov := range sw.Overlaps[i] {
			total += int64(ov.EffectiveSize)
		}

		out[i] = PreorderData{
			Area:     int64(b.Size) * int64(width),
			Size:     b.Size,
			Width:    width,
			Lower:    b.Lifespan.Lower,
			Upper:    b.Lifespan.Upper,
			Overlaps: len(sw.Overlaps[i]),
			Sections: sections,
			Total:    total,
		}
	}

	return out
}

// rankOrder implements sort.Interface over buffer indices, ranked by a
// fixed sequence of metrics: descending on each in turn, buffer index
// ascending as the final tiebreak. The comparator is built once from
// precomputed data, never re-dispatched on a heuristic string inside the
// loop.
type rankOrder struct {
	idx     []int
	data    []PreorderData
	metrics [3]metric
}

func (r rankOrder) Len() int { return len(r.idx) }
func (r rankOrder) Swap(i, j int) { r.idx[i], r.idx[j] = r.idx[j], r.idx[i] }
func (r rankOrder) Less(i, j int) bool {
	a, b := r.idx[i], r.idx[j]
	for _, m := range r.metrics {
		va, vb := m(r.data[a]), m(r.data[b])
		if va != vb {
			return va > vb // descending
		}
	}

	return a < b
}

// Order ranks buffer indices [0, len(data)) under the named heuristic code
//. A code is exactly three letters, each one of W, A, T, S, O;
// the comparator sorts descending on the first letter's metric, breaking
// ties on the second, then the third, then buffer_idx ascending.
func Order(data []PreorderData, code string) ([]int, error) {
	if len(code) != 3 {
		return nil, ErrUnknownHeuristic
	}
	var ms [3]metric
	for i := 0; i < 3; i++ {
		m, ok := metrics[code[i]]
		if !ok {
			return nil, ErrUnknownHeuristic
		}
		ms[i] = m
	}

	idx := make([]int, len(data))
	for i := range idx {
		idx[i] = i
	}

	sort.Stable(rankOrder{idx: idx, data: data, metrics: ms})

	return idx, nil
}

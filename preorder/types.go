package preorder

import "errors"

// ErrUnknownHeuristic is returned by Order when a heuristic code contains a
// letter outside the recognized metric set, or is not exactly three letters
// long.
var ErrUnknownHeuristic = errors.New("preorder: unknown heuristic code")

// PreorderData holds the derived metrics used to rank one buffer.
// All fields are computed once, up front, from the sweep result.
type PreorderData struct {
	Area     int64 // Size * Width
	Size     int32
	Width    int32 // effective duration, full gaps removed
	Lower    int32
	Upper    int32
	Overlaps int   // len(overlaps[i])
	Sections int   // number of sections this buffer occupies
	Total    int64 // sum of effective_size over overlaps[i]
}

// metric identifies one of the five named scoring dimensions a heuristic
// letter can select.
type metric func(PreorderData) int64

// metrics maps each recognized heuristic letter to its scoring function.
// Every metric is read as "bigger is more constrained, place it first":
// the comparator built from these always sorts descending.
var metrics = map[byte]metric{
	'W': func(d PreorderData) int64 { return int64(d.Width) },
	'A': func(d PreorderData) int64 { return d.Area },
	'T': func(d PreorderData) int64 { return d.Total },
	'S': func(d PreorderData) int64 { return int64(d.Size) },
	'O': func(d PreorderData) int64 { return int64(d.Overlaps) },
}

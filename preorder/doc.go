// Package preorder ranks a problem's buffers before search begins.
// Each buffer is scored by a small set of derived metrics
// (PreorderData); a three-letter heuristic code such as WAT or TAW selects
// which metrics break ties and in what order.
//
// The comparator is built once per heuristic code as a static slice of
// metric accessors: a sort.Interface value driven by precomputed data
// rather than a per-call string switch, so the hot comparison path never
// re-parses the code.
package preorder

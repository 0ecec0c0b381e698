// Package solve implements the backtracking offset-assignment search:
// given a Problem and its sweep.Result, assign every buffer a
// byte offset such that no two simultaneously-live buffers overlap and
// none exceeds capacity, or prove no such assignment exists.
//
// The engine processes each sweep.Partition independently (a partition is
// an isolated search sub-problem) with a classical
// depth-first search over per-section floors: every section carries a
// monotonically non-decreasing "floor", the lowest offset at which a new
// buffer may still land without conflicting with buffers already placed
// there. Candidates for the next buffer are generated directly from that
// floor plus alignment, rather than from an explicit free-interval list:
// a sparse cut domain realized as a small candidate set (tightest fit above
// the floor, the top of the available range, and the tightest fit beneath
// each already-assigned overlapping buffer).
//
// All search state lives in one dedicated engine struct (no anonymous
// closures), with a sparse deadline check and deterministic branching
// order.
package solve

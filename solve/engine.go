package solve

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/minimalloc/core"
	"github.com/google/minimalloc/sweep"
)

// outcome is the ternary result of a search frame: Solved is a
// full assignment, backtrack means this frame's candidates are exhausted,
// abort means a deadline or cancel signal unwound the stack.
type outcome int

const (
	outcomeSolved outcome = iota
	outcomeBacktrack
	outcomeAbort
)

// undoKind tags one entry in the engine's undo log.
type undoKind int

const (
	undoFloor undoKind = iota
	undoAssign
	undoLastOffset
	undoCanonical
)

type undoEntry struct {
	kind undoKind

	section   int
	prevFloor int32

	buf          int
	prevAssigned bool
	prevOffset   int32

	prevLastOffset int32
	prevBuf        int

	sig    string
	offset int32
}

// engine holds all per-Solve search state in one dedicated struct instead
// of closures, so state is explicit and the hot path predictable.
type engine struct {
	p    *core.Problem
	sw   *sweep.Result
	opts Options

	offsets  []int32
	assigned []bool
	floor    []int32

	lastOffset int32
	lastBuf    int

	canonTried map[string]map[int32]bool

	undo []undoEntry

	backtracks int

	useDeadline bool
	deadline    time.Time
	steps       int
	cancel      *int32
}

func newEngine(p *core.Problem, sw *sweep.Result, opts Options, cancel *int32) *engine {
	e := &engine{
		p:          p,
		sw:         sw,
		opts:       opts,
		offsets:    make([]int32, len(p.Buffers)),
		assigned:   make([]bool, len(p.Buffers)),
		floor:      make([]int32, len(sw.Sections)),
		lastBuf:    -1,
		canonTried: make(map[string]map[int32]bool),
		cancel:     cancel,
	}
	if opts.Timeout > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(opts.Timeout)
	}

	return e
}

// deadlineOrCancelled performs a sparse check: the cancel flag every call,
// the wall clock only every 1024 node events.
func (e *engine) deadlineOrCancelled() bool {
	e.steps++
	if atomic.LoadInt32(e.cancel) != 0 {
		return true
	}
	if !e.useDeadline || (e.steps&1023) != 0 {
		return false
	}

	return time.Now().After(e.deadline)
}

func (e *engine) mark() int { return len(e.undo) }

func (e *engine) undoTo(mark int) {
	for len(e.undo) > mark {
		ent := e.undo[len(e.undo)-1]
		e.undo = e.undo[:len(e.undo)-1]
		switch ent.kind {
		case undoFloor:
			e.floor[ent.section] = ent.prevFloor
		case undoAssign:
			e.assigned[ent.buf] = ent.prevAssigned
			e.offsets[ent.buf] = ent.prevOffset
		case undoLastOffset:
			e.lastOffset = ent.prevLastOffset
			e.lastBuf = ent.prevBuf
		case undoCanonical:
			delete(e.canonTried[ent.sig], ent.offset)
		}
	}
}

// raiseFloor returns the lower bound a candidate offset for buffer i must
// satisfy: the maximum floor across every section i occupies.
func (e *engine) raiseFloor(i int) int32 {
	var lo int32
	for _, span := range e.sw.SectionSpans[i] {
		for s := span.SectionRange.Lower; s < span.SectionRange.Upper; s++ {
			if e.floor[s] > lo {
				lo = e.floor[s]
			}
		}
	}

	return lo
}

func alignUp(v, alignment int32) int32 {
	if r := v % alignment; r != 0 {
		v += alignment - r
	}

	return v
}

// alignDown returns the largest multiple of alignment that is <= v,
// correct for negative v as well (Go's % keeps the dividend's sign).
func alignDown(v, alignment int32) int32 {
	r := v % alignment
	if r < 0 {
		r += alignment
	}

	return v - r
}

// candidatesFor builds the admissible offset domain ("cuts") for buffer i:
// the tightest aligned fit above every touched section's
// floor, the top of the legal range, and, for every already-assigned
// buffer i overlaps, the tightest aligned fit immediately below it.
// Floor propagation alone only ever stacks buffers upward; a still-free
// gap below an assigned buffer (e.g. left by a fixed-offset buffer that
// doesn't reach down to 0) is only reachable through this last source.
func (e *engine) candidatesFor(i int) []int32 {
	b := e.p.Buffers[i]
	if b.Offset != nil {
		return []int32{*b.Offset}
	}

	set := make(map[int32]struct{})

	lower := alignUp(e.raiseFloor(i), b.Alignment)
	upper := e.p.Capacity - b.Size
	if lower <= upper {
		top := upper - upper%b.Alignment // largest aligned value <= upper
		if top < lower {
			top = lower
		}
		set[lower] = struct{}{}
		set[top] = struct{}{}
	}

	for _, ov := range e.sw.Overlaps[i] {
		if !e.assigned[ov.J] {
			continue
		}
		// i's own reservation against j (not j's against i): the length of
		// the window i itself occupies while both are live, which is what
		// must fit below j's assigned offset for a tight, non-conflicting
		// placement underneath it.
		need, ok := core.EffectiveSize(b, e.p.Buffers[ov.J])
		if !ok {
			continue
		}
		below := alignDown(e.offsets[ov.J]-need, b.Alignment)
		if below >= 0 {
			set[below] = struct{}{}
		}
	}

	if len(set) == 0 {
		return nil
	}

	out := make([]int32, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })

	return out
}

// fits reports whether off is a legal placement for buffer i: aligned,
// within [0, capacity-size], matching any fixed offset, and free of
// conflict with every already-assigned buffer i overlaps. This precise
// pairwise check (rather than the conservative floor) is what lets a
// buffer settle into a gap below an already-placed one.
func (e *engine) fits(i int, off int32) bool {
	b := e.p.Buffers[i]
	if off < 0 || off+b.Size > e.p.Capacity {
		return false
	}
	if off%b.Alignment != 0 {
		return false
	}
	if b.Offset != nil && *b.Offset != off {
		return false
	}

	for _, ov := range e.sw.Overlaps[i] {
		if !e.assigned[ov.J] {
			continue
		}
		if core.Conflicts(b, off, e.p.Buffers[ov.J], e.offsets[ov.J]) {
			return false
		}
	}

	return true
}

// assign commits buffer i at off: records undo entries, then raises the
// floor of every section i occupies to the top of the window it claims
// there (off + Window.Upper).
func (e *engine) assign(i int, off int32) {
	e.undo = append(e.undo, undoEntry{kind: undoAssign, buf: i, prevAssigned: e.assigned[i], prevOffset: e.offsets[i]})
	e.assigned[i] = true
	e.offsets[i] = off

	e.undo = append(e.undo, undoEntry{kind: undoLastOffset, prevLastOffset: e.lastOffset, prevBuf: e.lastBuf})
	if off > e.lastOffset {
		e.lastOffset = off
	}
	e.lastBuf = i

	for _, span := range e.sw.SectionSpans[i] {
		newFloor := off + span.Window.Upper
		for s := span.SectionRange.Lower; s < span.SectionRange.Upper; s++ {
			if newFloor > e.floor[s] {
				e.undo = append(e.undo, undoEntry{kind: undoFloor, section: int(s), prevFloor: e.floor[s]})
				e.floor[s] = newFloor
			}
		}
	}
}

// signature groups buffers that are interchangeable for canonical-only
// symmetry breaking: identical size, alignment, and section footprint.
func signature(p *core.Problem, sw *sweep.Result, i int) string {
	b := p.Buffers[i]
	s := fmt.Sprintf("%d|%d", b.Size, b.Alignment)
	for _, span := range sw.SectionSpans[i] {
		s += fmt.Sprintf("|%d-%d:%d-%d", span.SectionRange.Lower, span.SectionRange.Upper, span.Window.Lower, span.Window.Upper)
	}

	return s
}

// minSizeTouchingSection returns the smallest Size among remaining whose
// own SectionSpans still cover section s, so a section-inference check
// for s can be scoped to buffers that could actually still need room
// there; a buffer that will never touch s again cannot be blocked by it.
func (e *engine) minSizeTouchingSection(remaining []int, s int32) (int32, bool) {
	var (
		min   int32
		found bool
	)
	for _, b := range remaining {
		for _, span := range e.sw.SectionSpans[b] {
			if s < span.SectionRange.Lower || s >= span.SectionRange.Upper {
				continue
			}
			sz := e.p.Buffers[b].Size
			if !found || sz < min {
				min, found = sz, true
			}

			break
		}
	}

	return min, found
}

// overlapsAny reports whether buffer i co-occupies a section with any
// buffer in others.
func (e *engine) overlapsAny(i int, others []int) bool {
	set := make(map[int]bool, len(others))
	for _, o := range others {
		set[o] = true
	}
	for _, ov := range e.sw.Overlaps[i] {
		if set[ov.J] {
			return true
		}
	}

	return false
}

// connected reports whether a and b co-occupy a section.
func (e *engine) connected(a, b int) bool {
	for _, ov := range e.sw.Overlaps[a] {
		if ov.J == b {
			return true
		}
	}

	return false
}

// pickPool narrows remaining to the subset DynamicDecomposition and
// MonotonicFloor should prefer to branch on next, without ever excluding
// a buffer permanently: both are ordering preferences, never a
// correctness-affecting filter.
func (e *engine) pickPool(remaining []int) []int {
	pool := remaining
	if e.opts.DynamicDecomposition && e.lastBuf >= 0 {
		var component []int
		for _, b := range remaining {
			if e.connected(b, e.lastBuf) {
				component = append(component, b)
			}
		}
		if len(component) > 0 {
			pool = component
		}
	}
	if e.opts.MonotonicFloor {
		var aboveFloor []int
		for _, b := range pool {
			if e.raiseFloor(b) >= e.lastOffset {
				aboveFloor = append(aboveFloor, b)
			}
		}
		if len(aboveFloor) > 0 {
			pool = aboveFloor
		}
	}

	return pool
}

// pickNext selects the next buffer to decide and returns it plus the
// remaining slice with it removed (order preserved).
func (e *engine) pickNext(remaining []int) (int, []int) {
	pool := e.pickPool(remaining)

	chosen := pool[0]
	if e.opts.DynamicOrdering {
		bestDomain := -1
		for _, b := range pool {
			n := len(e.candidatesFor(b))
			if bestDomain == -1 || n < bestDomain {
				bestDomain, chosen = n, b
			}
		}
	}

	rest := make([]int, 0, len(remaining)-1)
	for _, b := range remaining {
		if b != chosen {
			rest = append(rest, b)
		}
	}

	return chosen, rest
}

// solve runs the depth-first search over remaining.
func (e *engine) solve(remaining []int) outcome {
	if e.deadlineOrCancelled() {
		return outcomeAbort
	}
	if len(remaining) == 0 {
		return outcomeSolved
	}

	i, rest := e.pickNext(remaining)
	candidates := e.candidatesFor(i)

	if e.opts.HatlessPruning && len(candidates) > 1 && !e.overlapsAny(i, rest) {
		// Nothing left to place above i, so the highest legal offset is
		// optimal and the lower ones only fragment the space beneath it.
		// The highest candidate isn't necessarily legal (it may collide
		// with an assigned buffer), so keep the highest that fits.
		for k := len(candidates) - 1; k >= 0; k-- {
			if e.fits(i, candidates[k]) {
				candidates = candidates[k : k+1]

				break
			}
		}
	}

	if e.opts.SectionInference {
		filtered := candidates[:0:0]
		for _, off := range candidates {
			if e.violatesSectionInference(i, off, rest) {
				continue
			}
			filtered = append(filtered, off)
		}
		candidates = filtered
	}

	sig := signature(e.p, e.sw, i)
	seenFloorSig := make(map[string]bool)

	for _, off := range candidates {
		if e.opts.CanonicalOnly && e.canonTried[sig][off] {
			continue
		}
		if !e.fits(i, off) {
			continue
		}
		if e.opts.CheckDominance {
			fsig := e.floorSignatureAfter(i, off)
			if seenFloorSig[fsig] {
				continue
			}
			seenFloorSig[fsig] = true
		}

		mark := e.mark()
		if e.opts.CanonicalOnly {
			if e.canonTried[sig] == nil {
				e.canonTried[sig] = make(map[int32]bool)
			}
			e.canonTried[sig][off] = true
			e.undo = append(e.undo, undoEntry{kind: undoCanonical, sig: sig, offset: off})
		}

		e.assign(i, off)
		result := e.solve(rest)
		if result == outcomeSolved {
			return outcomeSolved
		}
		e.undoTo(mark)
		if result == outcomeAbort {
			return outcomeAbort
		}
		e.backtracks++
	}

	return outcomeBacktrack
}

// violatesSectionInference reports whether placing i at off would leave
// some touched section with no room for the smallest buffer still needing
// it, among the buffers still unassigned in rest. Room is checked both
// above the raised floor and beneath i's own claim: candidatesFor can
// tuck a later buffer under an assigned one, so space below i must count
// as available even though the floor no longer reaches it.
func (e *engine) violatesSectionInference(i int, off int32, rest []int) bool {
	for _, span := range e.sw.SectionSpans[i] {
		newFloor := off + span.Window.Upper
		below := off + span.Window.Lower
		for s := span.SectionRange.Lower; s < span.SectionRange.Upper; s++ {
			if newFloor <= e.floor[s] {
				continue
			}
			minSz, ok := e.minSizeTouchingSection(rest, s)
			if !ok {
				continue
			}
			if newFloor > e.p.Capacity-minSz && below < minSz {
				return true
			}
		}
	}

	return false
}

// floorSignatureAfter computes a string key for the per-section floors
// that would result from placing i at off, used by CheckDominance to
// collapse offsets that would leave an identical residual state.
func (e *engine) floorSignatureAfter(i int, off int32) string {
	sig := ""
	for _, span := range e.sw.SectionSpans[i] {
		newFloor := off + span.Window.Upper
		for s := span.SectionRange.Lower; s < span.SectionRange.Upper; s++ {
			f := e.floor[s]
			if newFloor > f {
				f = newFloor
			}
			sig += fmt.Sprintf("%d:%d,", s, f)
		}
	}

	return sig
}

// preAssignFixed commits every buffer with a fixed offset in buffers,
// in index order, before any real decision is made. It returns
// false the moment one does not fit, which makes the whole partition
// immediately infeasible.
func (e *engine) preAssignFixed(buffers []int) bool {
	ordered := append([]int(nil), buffers...)
	sort.Ints(ordered)
	for _, i := range ordered {
		if e.p.Buffers[i].Offset == nil {
			continue
		}
		off := *e.p.Buffers[i].Offset
		if !e.fits(i, off) {
			return false
		}
		e.assign(i, off)
	}

	return true
}

// Package sweep converts a core.Problem's continuous-time buffers into the
// discrete representation the solver operates on: Sections
// (maximal time ranges with a constant live-buffer set), Partitions
// (maximal runs of sections connected by a straddling buffer, each an
// independent search sub-problem), per-buffer SectionSpans, and per-buffer
// Overlaps.
//
// The algorithm is a single left-to-right line sweep over every buffer's
// lifespan and gap boundaries, a classic sorted-endpoint scan:
// build the sorted SweepPoint sequence once, fold it into Sections in one
// pass, then derive SectionSpans, Overlaps, and Partitions from that.
//
// A sweep Result is read-only after construction and may be
// shared across capacity-minimizer probes that only vary Problem.Capacity,
// since nothing about buffer timing depends on capacity.
package sweep

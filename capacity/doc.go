// Package capacity finds the smallest Capacity a Problem's buffers admit a
// solution under, by binary search over the solver. The sweep
// is computed once and shared across every probe, since it depends only on
// buffer lifespans, gaps, and sizes, never on Capacity.
package capacity

// Package iis extracts an Irreducible Infeasible Subset from a Problem the
// solver has already proven infeasible: one buffer at a time,
// try solving without it, and drop it permanently if the rest is still
// infeasible. What survives the full pass is a minimal witness.
package iis

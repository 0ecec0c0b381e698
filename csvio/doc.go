// Package csvio converts between Buffers and their CSV table form:
// one row per buffer, a required id/lower/upper/size column set
// with accepted aliases, and optional alignment/hint/gaps/offset columns.
// Capacity is never carried in CSV, so FromCSV returns bare Buffers; callers
// combine them with a capacity via core.NewProblem.
package csvio

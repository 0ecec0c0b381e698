package csvio

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/google/minimalloc/core"
)

// FromCSV parses r into Buffers. CSV carries no capacity, so callers must
// pair the result with one via core.NewProblem.
//
// The header may name required columns under any of their accepted
// aliases (id/buffer/buffer_id, lower/start/begin, upper or end) plus the
// optional alignment, hint, gaps, and offset columns, in any order.
// Unrecognized columns are ignored.
func FromCSV(r io.Reader) ([]core.Buffer, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "csvio: read")
	}
	if len(records) == 0 {
		return nil, ErrMissingColumn
	}

	cols, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	buffers := make([]core.Buffer, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) != len(records[0]) {
			return nil, errors.Wrapf(ErrRowFieldCount, "row %d", i+2)
		}
		b, err := parseRow(cols, row)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+2)
		}
		buffers = append(buffers, b)
	}

	return buffers, nil
}

func parseRow(cols columns, row []string) (core.Buffer, error) {
	lower, err := parseInt32(row[cols.lower])
	if err != nil {
		return core.Buffer{}, errors.Wrap(err, "lower")
	}
	upper, err := parseInt32(row[cols.upper])
	if err != nil {
		return core.Buffer{}, errors.Wrap(err, "upper")
	}
	if cols.endInclusive {
		upper++
	}
	size, err := parseInt32(row[cols.size])
	if err != nil {
		return core.Buffer{}, errors.Wrap(err, "size")
	}

	var opts []core.BufferOption

	if cols.alignment != -1 {
		a, err := parseInt32(row[cols.alignment])
		if err != nil {
			return core.Buffer{}, errors.Wrap(err, "alignment")
		}
		opts = append(opts, core.WithAlignment(a))
	}
	if cols.hint != -1 {
		h, err := parseInt32(row[cols.hint])
		if err != nil {
			return core.Buffer{}, errors.Wrap(err, "hint")
		}
		if h != -1 {
			opts = append(opts, core.WithHint(h))
		}
	}
	if cols.gaps != -1 {
		gaps, err := parseGaps(row[cols.gaps], cols.endInclusive)
		if err != nil {
			return core.Buffer{}, errors.Wrap(err, "gaps")
		}
		if len(gaps) > 0 {
			opts = append(opts, core.WithGaps(gaps...))
		}
	}
	if cols.offset != -1 && row[cols.offset] != "" {
		o, err := parseInt32(row[cols.offset])
		if err != nil {
			return core.Buffer{}, errors.Wrap(err, "offset")
		}
		opts = append(opts, core.WithOffset(o))
	}

	b, err := core.NewBuffer(row[cols.id], core.Interval{Lower: lower, Upper: upper}, size, opts...)
	if err != nil {
		return core.Buffer{}, err
	}

	return *b, nil
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrUnparsableField, "%q", s)
	}

	return int32(v), nil
}

// parseGaps parses a whitespace-separated list of gap tokens, each either
// "L-U" (a full gap) or "L-U@WL:WU" (a windowed gap). When endInclusive,
// the matching lifespan's U token is itself inclusive and is widened by
// one to form the half-open upper bound; window bounds are memory offsets
// and are never shifted.
func parseGaps(s string, endInclusive bool) ([]core.Gap, error) {
	fields := strings.Fields(s)
	gaps := make([]core.Gap, 0, len(fields))

	for _, tok := range fields {
		lifespanTok, windowTok, hasWindow := strings.Cut(tok, "@")

		l, u, err := parseRange(lifespanTok, "-")
		if err != nil {
			return nil, errors.Wrapf(err, "gap %q", tok)
		}
		if endInclusive {
			u++
		}
		lifespan, err := core.NewInterval(l, u)
		if err != nil {
			return nil, errors.Wrapf(err, "gap %q", tok)
		}

		if !hasWindow {
			gaps = append(gaps, core.NewGap(lifespan))
			continue
		}

		wl, wu, err := parseRange(windowTok, ":")
		if err != nil {
			return nil, errors.Wrapf(err, "gap %q", tok)
		}
		window, err := core.NewInterval(wl, wu)
		if err != nil {
			return nil, errors.Wrapf(err, "gap %q", tok)
		}
		gaps = append(gaps, core.NewWindowedGap(lifespan, window))
	}

	return gaps, nil
}

func parseRange(s, sep string) (int32, int32, error) {
	lo, hi, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, errors.Wrapf(ErrUnparsableField, "%q", s)
	}
	l, err := parseInt32(lo)
	if err != nil {
		return 0, 0, err
	}
	u, err := parseInt32(hi)
	if err != nil {
		return 0, 0, err
	}

	return l, u, nil
}

package csvio

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/google/minimalloc/core"
)

// Mode selects which column names and bound convention ToCSV emits.
type Mode int

const (
	// ModeNew emits "lower,upper" with half-open upper bounds, matching
	// the format FromCSV accepts by default.
	ModeNew Mode = iota
	// ModeOld emits "start,end" with end inclusive (end = upper-1), the
	// legacy convention some callers still round-trip through.
	ModeOld
)

// ToCSV writes p's buffers as CSV to w. If offsets is non-nil it is used
// as the per-buffer offset column (emitting a solved Solution); otherwise
// a buffer's own fixed Offset, if set, is emitted. The alignment, hint,
// gaps, and offset columns only appear when at least one row has a
// non-default value for them.
func ToCSV(w io.Writer, p *core.Problem, offsets []int32, mode Mode) error {
	cp := detectColumns(p, offsets)

	header := []string{"id"}
	if mode == ModeOld {
		header = append(header, "start", "end")
	} else {
		header = append(header, "lower", "upper")
	}
	header = append(header, "size")
	if cp.alignment {
		header = append(header, "alignment")
	}
	if cp.hint {
		header = append(header, "hint")
	}
	if cp.gaps {
		header = append(header, "gaps")
	}
	if cp.offset {
		header = append(header, "offset")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, b := range p.Buffers {
		upper := b.Lifespan.Upper
		if mode == ModeOld {
			upper--
		}
		row := []string{b.ID, itoa(b.Lifespan.Lower), itoa(upper), itoa(b.Size)}
		if cp.alignment {
			row = append(row, itoa(b.Alignment))
		}
		if cp.hint {
			if b.Hint != nil {
				row = append(row, itoa(*b.Hint))
			} else {
				row = append(row, "-1")
			}
		}
		if cp.gaps {
			row = append(row, formatGaps(b.Gaps, mode))
		}
		if cp.offset {
			if off, ok := effectiveOffset(p, offsets, i); ok {
				row = append(row, itoa(off))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

type columnPresence struct {
	alignment, hint, gaps, offset bool
}

func detectColumns(p *core.Problem, offsets []int32) columnPresence {
	var cp columnPresence
	for i, b := range p.Buffers {
		if b.Alignment != 1 {
			cp.alignment = true
		}
		if b.Hint != nil {
			cp.hint = true
		}
		if len(b.Gaps) > 0 {
			cp.gaps = true
		}
		if _, ok := effectiveOffset(p, offsets, i); ok {
			cp.offset = true
		}
	}

	return cp
}

func effectiveOffset(p *core.Problem, offsets []int32, i int) (int32, bool) {
	if offsets != nil {
		return offsets[i], true
	}
	if off := p.Buffers[i].Offset; off != nil {
		return *off, true
	}

	return 0, false
}

func formatGaps(gaps []core.Gap, mode Mode) string {
	toks := make([]string, len(gaps))
	for i, g := range gaps {
		upper := g.Lifespan.Upper
		if mode == ModeOld {
			upper--
		}
		tok := itoa(g.Lifespan.Lower) + "-" + itoa(upper)
		if g.Window != nil {
			tok += "@" + itoa(g.Window.Lower) + ":" + itoa(g.Window.Upper)
		}
		toks[i] = tok
	}

	return strings.Join(toks, " ")
}

func itoa(v int32) string { return strconv.FormatInt(int64(v), 10) }

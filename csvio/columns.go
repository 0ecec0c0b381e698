package csvio

// columns records which header index holds each recognized field, or -1
// if that field's column is absent from this particular file.
type columns struct {
	id, lower, upper, size        int
	alignment, hint, gaps, offset int
	endInclusive                  bool // header used "end" rather than "upper"
}

func mapColumns(header []string) (columns, error) {
	cols := columns{id: -1, lower: -1, upper: -1, size: -1, alignment: -1, hint: -1, gaps: -1, offset: -1}

	set := func(dst *int, i int) error {
		if *dst != -1 {
			return ErrDuplicateColumn
		}
		*dst = i

		return nil
	}

	for i, h := range header {
		var err error
		switch h {
		case "id", "buffer", "buffer_id":
			err = set(&cols.id, i)
		case "lower", "start", "begin":
			err = set(&cols.lower, i)
		case "upper":
			err = set(&cols.upper, i)
		case "end":
			if cols.upper != -1 {
				err = ErrDuplicateColumn
			} else {
				cols.upper = i
				cols.endInclusive = true
			}
		case "size":
			err = set(&cols.size, i)
		case "alignment":
			err = set(&cols.alignment, i)
		case "hint":
			err = set(&cols.hint, i)
		case "gaps":
			err = set(&cols.gaps, i)
		case "offset":
			err = set(&cols.offset, i)
		}
		if err != nil {
			return columns{}, err
		}
	}

	if cols.id == -1 || cols.lower == -1 || cols.upper == -1 || cols.size == -1 {
		return columns{}, ErrMissingColumn
	}

	return cols, nil
}

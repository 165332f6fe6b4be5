package indent

// Levels is the set of candidate indentation columns for a line, ascending,
// with a cursor over them. Column 0 is always first and the computed target
// is always last.
type Levels struct {
	cols  []int
	index int
}

// ComputeLevels builds the candidate columns for a target: every multiple
// of offset up to the target, plus the target itself when it is not a
// multiple. The cursor starts on the target.
func ComputeLevels(target, offset int) Levels {
	if offset <= 0 {
		offset = DefaultOffset
	}
	cols := []int{0}
	if target > 0 {
		for c := offset; c <= target; c += offset {
			cols = append(cols, c)
		}
		if target%offset != 0 {
			cols = append(cols, target)
		}
	}
	return Levels{cols: cols, index: len(cols) - 1}
}

// Current returns the column under the cursor.
func (l *Levels) Current() int {
	if len(l.cols) == 0 {
		return 0
	}
	return l.cols[l.index]
}

// Toggle steps the cursor to the next shallower column, wrapping from 0
// back to the deepest, and returns the new column.
func (l *Levels) Toggle() int {
	if len(l.cols) == 0 {
		return 0
	}
	l.index--
	if l.index < 0 {
		l.index = len(l.cols) - 1
	}
	return l.cols[l.index]
}

// Len returns the number of candidate columns.
func (l *Levels) Len() int {
	return len(l.cols)
}

// Columns returns a copy of the candidate columns.
func (l *Levels) Columns() []int {
	out := make([]int, len(l.cols))
	copy(out, l.cols)
	return out
}

package textbuf

import "fmt"

// Pos is a byte offset into the buffer.
type Pos = int

// Point represents a position as line and column.
// Both are 0-indexed; Col is a byte offset within the line.
type Point struct {
	Line int
	Col  int
}

// NewPoint creates a new Point.
func NewPoint(line, col int) Point {
	return Point{Line: line, Col: col}
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Compare returns -1 if p is before other, 0 if equal, 1 if after.
func (p Point) Compare(other Point) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Col != other.Col {
		if p.Col < other.Col {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

package kle

import (
	"fmt"
	"strings"

	"github.com/matzehuels/kle/pkg/errors"
)

// Alignment is the editor's legend alignment code (property "a"). It selects
// which legend slots a newline-separated legend string fills, and in which
// order. Valid codes are 0 through 7; bit 0 centers legends horizontally, bit 1
// centers them vertically and bit 2 centers the front legend.
type Alignment int

// DefaultAlignment is the alignment in effect before any "a" property.
const DefaultAlignment Alignment = 4

// NoSlot marks a legend line position that an alignment does not use.
const NoSlot = -1

// slotTable maps a legend line position to its slot, per alignment code.
// -1 is NoSlot. Trailing NoSlot entries are trimmed by positionCounts.
var slotTable = [8][NumLegends]int{
	// line: 0  1   2   3   4   5   6   7   8   9  10  11
	{0, 6, 2, 8, 9, 11, 3, 5, 1, 4, 7, 10},          // 0: no centering
	{1, 7, -1, -1, 9, 11, 4, -1, -1, -1, -1, 10},    // 1: center x
	{3, -1, 5, -1, 9, 11, -1, -1, 4, -1, -1, 10},    // 2: center y
	{4, -1, -1, -1, 9, 11, -1, -1, -1, -1, -1, 10},  // 3: center x & y
	{0, 6, 2, 8, 10, -1, 3, 5, 1, 4, 7, -1},         // 4: center front (default)
	{1, 7, -1, -1, 10, -1, 4, -1, -1, -1, -1, -1},   // 5: center front & x
	{3, -1, 5, -1, 10, -1, -1, -1, 4, -1, -1, -1},   // 6: center front & y
	{4, -1, -1, -1, 10, -1, -1, -1, -1, -1, -1, -1}, // 7: center front, x & y
}

// positionCounts is the number of legend lines each alignment accepts: the
// index of its last used position plus one.
var positionCounts [8]int

// slotPositions is the inverse of slotTable: the line position feeding each
// slot, or NoSlot.
var slotPositions [8][NumLegends]int

func init() {
	for a, row := range slotTable {
		for s := range slotPositions[a] {
			slotPositions[a][s] = NoSlot
		}
		for pos, slot := range row {
			if slot == NoSlot {
				continue
			}
			positionCounts[a] = pos + 1
			slotPositions[a][slot] = pos
		}
	}
}

// Valid reports whether a is one of the eight defined alignment codes.
func (a Alignment) Valid() bool {
	return a >= 0 && int(a) < len(slotTable)
}

// Positions returns, for each legend line position, the slot that line fills
// or [NoSlot] when the alignment does not use that position. The length
// depends only on a and is at most [NumLegends]. It returns nil for an invalid
// code.
func (a Alignment) Positions() []int {
	if !a.Valid() {
		return nil
	}
	out := make([]int, positionCounts[a])
	copy(out, slotTable[a][:positionCounts[a]])
	return out
}

// ActiveSlots returns the slots a can fill, in the order legend lines fill
// them. Every entry is in [0, NumLegends). It returns nil for an invalid code.
func (a Alignment) ActiveSlots() []int {
	if !a.Valid() {
		return nil
	}
	var out []int
	for _, slot := range slotTable[a][:positionCounts[a]] {
		if slot != NoSlot {
			out = append(out, slot)
		}
	}
	return out
}

// position returns the line position that feeds slot under a, or NoSlot.
func (a Alignment) position(slot int) int {
	return slotPositions[a][slot]
}

func (a Alignment) String() string {
	return fmt.Sprintf("alignment %d", int(a))
}

// checkAlignment validates a raw alignment value.
func checkAlignment(v float64) (Alignment, error) {
	a := Alignment(v)
	if float64(a) != v || !a.Valid() {
		return 0, &DecodeError{
			Kind:  errors.ErrCodeInvalidAlignment,
			Row:   -1,
			Item:  -1,
			Field: "a",
			Value: v,
			Msg:   fmt.Sprintf("alignment must be an integer in [0, 7], got %v", v),
		}
	}
	return a, nil
}

// placeLegends splits text on newlines and assigns each line to its slot.
// Trailing empty lines are ignored.
func placeLegends(text string, a Alignment) ([NumLegends]string, error) {
	var out [NumLegends]string
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if n := positionCounts[a]; len(lines) > n {
		return out, &DecodeError{
			Kind:  errors.ErrCodeTooManyLegends,
			Row:   -1,
			Item:  -1,
			Value: text,
			Msg:   fmt.Sprintf("%d legend lines given, %s accepts at most %d", len(lines), a, n),
		}
	}

	for pos, line := range lines {
		slot := slotTable[a][pos]
		if slot == NoSlot {
			if line != "" {
				return out, &DecodeError{
					Kind:  errors.ErrCodeTooManyLegends,
					Row:   -1,
					Item:  -1,
					Value: text,
					Msg:   fmt.Sprintf("legend line %d (%q) has no slot under %s", pos, line, a),
				}
			}
			continue
		}
		out[slot] = line
	}
	return out, nil
}

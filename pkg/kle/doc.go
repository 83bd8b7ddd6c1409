// Package kle decodes the raw JSON layout format written by the browser-based
// keyboard-layout editor into a normalized [Layout].
//
// # Overview
//
// A raw document is an array of rows. Each row is an array whose items are
// either legend strings (one per key) or property objects that change the
// attributes of every key that follows. Most attributes are omitted and
// inherited from the previous key, so decoding is a single stateful pass:
//
//	[
//	  {"name": "example"},
//	  [{"a": 7, "w": 1.5}, "Tab", "Q", "W"],
//	  [{"c": "#444444", "t": "#ffffff"}, "Caps", "A"]
//	]
//
// [Decode] walks the already-tokenized document tree and returns every key
// with its position, size, rotation, legends, colors and flags fully resolved.
// [Unmarshal] tokenizes raw bytes with encoding/json first.
//
// # Legend Slots
//
// Every key has [NumLegends] legend slots, numbered left to right and top to
// bottom over a 3×3 grid on the cap face, followed by three front legends:
//
//	0  1  2
//	3  4  5
//	6  7  8
//	---------
//	9  10 11
//
// A legend string is split on newlines, and the key's [Alignment] decides which
// slot each line lands in. See [Alignment.Positions] for the full table.
//
// # Inheritance
//
// Property fields that are absent leave the current state untouched. Size,
// rotation, color, profile, alignment, legend sizes and colors, switch ids and
// the homing flag persist until overridden. The secondary rectangle and the
// decal, ghost and stepped flags apply to exactly one key. [WithEditorCarry]
// switches to the editor's own reset set, where the size also returns to 1×1
// after every key.
//
// Within a row, x and y in a property object are offsets added to the current
// position. At the end of each row the cursor moves down one unit and back to
// the row's starting offset (the rotation origin x).
//
// # Errors
//
// Decoding never returns a partial layout. The first problem aborts the whole
// document with a [*DecodeError] whose code is one of the decode codes in
// [github.com/matzehuels/kle/pkg/errors]. The error records the row and item
// index of the offending value.
//
// # Concurrency
//
// Decode holds no shared state; concurrent decodes of independent documents
// need no synchronization.
package kle

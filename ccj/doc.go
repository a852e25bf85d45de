// Package ccj decodes CCJ crossword files and re-encodes them in a
// simplified variant of the AcrossLite .puz format.
//
// CCJ is an undocumented, length-prefixed binary layout used to ship
// cryptic crosswords with some newspaper applets. Everything here was
// worked out by inspecting example files: the decoder recovers the grid,
// the answers and both clue lists with positional heuristics (magic
// bytes, skippable filler blocks, probed text encodings, clue references
// whose direction must sometimes be inferred from grid topology).
//
// Basic usage:
//
//	puzzle, err := ccj.Decode(data, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := puzzle.EncodePUZ()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The .puz output omits checksums, so strict loaders will reject it;
// xword loads it fine. Details of the richer format are described at
// http://joshisanerd.com/puz/
package ccj

// Package shape builds the 3D geometry of a glyph in one of several
// presentation styles.
//
// A [Builder] dispatches on [Variant] through a handler table:
//
//   - [Plain]: the extruded glyph at the origin.
//   - [Plaque]: the glyph standing in front of a bevelled cube.
//   - [Badge]: the glyph standing on a thin dark plate.
//   - [Carved]: a sphere with the glyph cut through it.
//
// Styled glyphs are rotated to stand up and face -Y. The builder only
// creates geometry; the caller assigns the materials named in each
// [Part] and marks [Result.Final] for export.
package shape

// Package batch turns a font and a glyph set into one model file per
// glyph.
//
// Run validates everything up front, so a bad font path, output directory,
// glyph source or style fails before any file is written. It then builds
// the glyphs one at a time in a single scene, in glyph set order:
//
//	clear transient objects
//	build the style variant          (shape.Builder)
//	assign part materials            (material.Assign)
//	select the final objects         (kernel.Scene.SetFinal)
//	write {id}[_s{style}].{ext}      (export.Exporter)
//
// The first error aborts the batch. Files already written stay on disk.
// A rerun with the same inputs rewrites the same files with identical
// bytes.
package batch

// Package cache provides a small generic LRU cache.
//
//	outlines := cache.New[text.GlyphID, *text.GlyphOutline](512)
//	outlines.Set(gid, outline)
//	o, ok := outlines.Get(gid)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

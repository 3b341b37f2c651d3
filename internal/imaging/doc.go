// Package imaging provides the loading and analysis support around the
// comparison engine: a thread-safe decode cache for file-based tools,
// dominant-palette extraction with a perceptual (CIE-Lab) palette distance,
// and optional pre-compare denoising.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The analysis functions are
// stateless and can be called concurrently on different images.
//
// # Memory Management
//
// Cached images remain in memory until removed via Evict() or Clear().
// Long-running servers that handle many distinct files should clear the
// cache between batches to avoid unbounded growth.
package imaging

// Package translation orchestrates neural machine translation between the
// supported language pairs. It loads opus-mt models through an engine,
// caches them per model name for the lifetime of the Orchestrator, and falls
// back to chaining two models through English when no direct model exists.
package translation

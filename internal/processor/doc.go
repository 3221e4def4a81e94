// Package processor contains the top-level run modes of anuvad. It builds
// the configured translation engine and drives it from the command line,
// the model listing, or the GUI.
package processor

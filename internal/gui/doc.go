// Package gui implements the Fyne desktop window of anuvad: a language pair
// selector, input and output text areas, Translate and Clear buttons, a
// status line and a log viewer. Translations run on a background goroutine
// through the dispatch package and every widget update is posted back to
// the Fyne thread.
package gui

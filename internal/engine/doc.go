// Package engine defines the contract anuvad expects from a neural
// machine-translation backend: load a tokenizer and a model by name, encode
// text, generate output tokens and decode them back to text. Concrete
// backends live in sub-packages (hfhub, openaicompat, gemini) and are built
// by the factory package.
package engine

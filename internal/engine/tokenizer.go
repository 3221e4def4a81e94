package engine

import (
	"strings"
	"unicode/utf8"
)

// Special token IDs used by RuneTokenizer.
const (
	PadID int64 = iota
	EOSID
	UnkID

	runeOffset
)

// RuneTokenizer encodes text as one token per Unicode code point followed by
// an end-of-sequence token. Remote backends tokenize on the server side and
// use it to carry text through the Tokenizer/Model contract unchanged.
type RuneTokenizer struct{}

// Encode implements Tokenizer.
func (RuneTokenizer) Encode(text string) (Tensor, error) {
	ids := make([]int64, 0, utf8.RuneCountInString(text)+1)
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		text = text[size:]
		// Invalid UTF-8; a literal U+FFFD decodes with size 3
		if r == utf8.RuneError && size == 1 {
			ids = append(ids, UnkID)
			continue
		}
		ids = append(ids, int64(r)+runeOffset)
	}
	ids = append(ids, EOSID)
	return Tensor{IDs: ids}, nil
}

// Decode implements Tokenizer.
func (RuneTokenizer) Decode(t Tensor, skipSpecialTokens bool) (string, error) {
	var b strings.Builder
	for _, id := range t.IDs {
		switch {
		case id >= runeOffset:
			b.WriteRune(rune(id - runeOffset))
		case skipSpecialTokens:
		case id == PadID:
			b.WriteString("<pad>")
		case id == EOSID:
			b.WriteString("</s>")
		default:
			b.WriteString("<unk>")
		}
	}
	return b.String(), nil
}

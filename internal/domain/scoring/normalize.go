package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
)

var punctuationFolder = strings.NewReplacer(
	"׳", "'",
	"״", "\"",
	"’", "'",
	"‘", "'",
	"“", "\"",
	"”", "\"",
)

// DefaultTeamAliases folds common alternate spellings of national teams.
func DefaultTeamAliases() map[string]string {
	return map[string]string{
		"ארה\"ב":                    "ארצות הברית",
		"ארהב":                      "ארצות הברית",
		"USA":                       "ארצות הברית",
		"דרום קוריאה":               "קוריאה הדרומית",
		"חוף שנהב":                  "חוף השנהב",
		"בוסניה":                    "בוסניה והרצגובינה",
		"איחוד האמירויות":           "איחוד האמירויות הערביות",
		"צכיה":                      "צ'כיה",
		"הרפובליקה הצ'כית":          "צ'כיה",
		"קייפ ורדה":                 "כף ורדה",
		"הרפובליקה הדמוקרטית קונגו": "קונגו הדמוקרטית",
	}
}

// Normalizer canonicalizes team names and result strings.
type Normalizer struct {
	aliases map[string]string
}

func NewNormalizer(aliases map[string]string) *Normalizer {
	folded := make(map[string]string, len(aliases))
	for from, to := range aliases {
		folded[collapseWhitespace(punctuationFolder.Replace(from))] = collapseWhitespace(punctuationFolder.Replace(to))
	}
	return &Normalizer{aliases: folded}
}

func DefaultNormalizer() *Normalizer {
	return NewNormalizer(DefaultTeamAliases())
}

// NormalizeTeamName trims, collapses inner whitespace and folds aliases.
func (n *Normalizer) NormalizeTeamName(name string) string {
	if name == "" {
		return name
	}
	out := collapseWhitespace(punctuationFolder.Replace(name))
	if n == nil {
		return out
	}
	if canonical, ok := n.aliases[out]; ok {
		return canonical
	}
	return out
}

// NormalizeResult removes every whitespace rune, so " 2 - 1 " becomes "2-1".
func (n *Normalizer) NormalizeResult(text string) string {
	if text == "" {
		return text
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		writeRune(buf, r)
	}
	return buf.String()
}

func collapseWhitespace(s string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = buf.Len() > 0
			continue
		}
		if pendingSpace {
			_ = buf.WriteByte(' ')
			pendingSpace = false
		}
		writeRune(buf, r)
	}
	return buf.String()
}

func writeRune(buf *bytebufferpool.ByteBuffer, r rune) {
	var tmp [utf8.UTFMax]byte
	n := utf8.EncodeRune(tmp[:], r)
	_, _ = buf.Write(tmp[:n])
}

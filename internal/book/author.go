package book

import "strings"

// Role markers embedded in the provider's author field.
const (
	AuthorMarker     = "(지은이)"
	TranslatorMarker = "옮긴이"

	// NoTranslator is used when no token carries the translator marker.
	NoTranslator = "-"
)

// SplitAuthors separates a raw author field such as
// "로버트 마틴 (지은이), 박재호 (옮긴이)" into the author list and translator.
// Tokens containing TranslatorMarker never appear in the author list.
func SplitAuthors(raw string) (author, translator string) {
	var authors, translators []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if strings.Contains(tok, TranslatorMarker) {
			name := strings.ReplaceAll(tok, "("+TranslatorMarker+")", "")
			name = strings.TrimSpace(strings.ReplaceAll(name, TranslatorMarker, ""))
			if name != "" {
				translators = append(translators, name)
			}
			continue
		}
		authors = append(authors, strings.TrimSpace(strings.ReplaceAll(tok, AuthorMarker, "")))
	}

	translator = NoTranslator
	if len(translators) > 0 {
		translator = strings.Join(translators, ", ")
	}
	return strings.Join(authors, ", "), translator
}

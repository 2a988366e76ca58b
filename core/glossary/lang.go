package glossary

import (
	"strings"

	"golang.org/x/text/language"
)

// NormalizeLang canonicalizes a BCP 47 language code ("EN_us" -> "en-US").
// Values that do not parse are returned trimmed but otherwise unchanged, so
// free-form names such as "English" survive.
func NormalizeLang(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return code
	}
	return tag.String()
}

// NormalizeLangs canonicalizes the source and target language info values
// in place.
func (g *Glossary) NormalizeLangs() {
	for _, key := range []string{InfoSourceLang, InfoTargetLang} {
		if v := g.GetInfo(key); v != "" {
			g.SetInfo(key, NormalizeLang(v))
		}
	}
}

// Package lang enumerates the language codes a localized text mapping may
// carry. Translation catalogs themselves live outside the entity layer; this
// list only gates which keys a localized field accepts.
package lang

// Codes is the set of supported language codes.
var Codes = []string{
	"ar", "bg", "bs", "ca", "cs", "da", "de", "el", "en", "es",
	"et", "fa", "fi", "fr", "he", "hr-HR", "hu-HU", "it", "ja", "ka",
	"ko", "nb-NO", "nl", "pl", "pt-BR", "pt-PT", "ro", "ru", "sk", "sl-SI",
	"sq", "sr-RS", "sv", "ta", "th", "tr", "uk", "ur", "vi",
	"zh-CN", "zh-TW",
}

var codeSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Codes))
	for _, c := range Codes {
		m[c] = struct{}{}
	}
	return m
}()

// Supported reports whether code is a known language code.
func Supported(code string) bool {
	_, ok := codeSet[code]
	return ok
}

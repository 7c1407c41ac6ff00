// Package i18n provides localized user-facing error messages.
//
// Messages are registered with golang.org/x/text/message at init time and
// looked up by error code. Codes are duplicated as strings to avoid an import
// cycle with the errors package.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the canonical locale and the fallback for unknown ones.
const BaseLocale = "en-US"

var supported = []language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

// entry is one message: a printf-style format and the metadata keys that
// fill its positional arguments.
type entry struct {
	format string
	args   []string
}

// argKeys lists, per code, the metadata keys passed to the format.
var argKeys = map[string][]string{}

func init() {
	register(language.AmericanEnglish, enUS)
	register(language.BrazilianPortuguese, ptBR)
}

func register(tag language.Tag, messages map[string]entry) {
	for code, e := range messages {
		if err := message.SetString(tag, code, e.format); err != nil {
			panic(err)
		}
		argKeys[code] = e.args
	}
}

// Resolve maps a requested locale onto the closest supported one.
func Resolve(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return BaseLocale
	}
	requested, err := language.Parse(locale)
	if err != nil {
		return BaseLocale
	}
	_, idx, confidence := matcher.Match(requested)
	if confidence == language.No {
		return BaseLocale
	}
	return supported[idx].String()
}

// Format renders the message for code in locale using metadata.
// Unknown codes render as the code itself.
func Format(locale, code string, metadata map[string]string) string {
	printer := message.NewPrinter(language.MustParse(Resolve(locale)))
	keys, ok := argKeys[code]
	if !ok {
		return code
	}
	args := make([]any, len(keys))
	for i, key := range keys {
		args[i] = metadata[key]
	}
	return printer.Sprintf(code, args...)
}

// Locales returns the supported locale identifiers.
func Locales() []string {
	out := make([]string, len(supported))
	for i, tag := range supported {
		out[i] = tag.String()
	}
	return out
}

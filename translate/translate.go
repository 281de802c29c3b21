// Package translate formats user visible messages for the host locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// FALLBACK_LOCALE is used when the host reports no locale.
const FALLBACK_LOCALE = "en-US"

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("tern: locale: %v", err)
	}

	SetLocales(locales...)
}

// SetLocales replaces the detected locales, in order of preference.
func SetLocales(locales ...string) {
	if len(locales) == 0 {
		locales = []string{FALLBACK_LOCALE}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From formats an en-US Sprintf() style key in the selected locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

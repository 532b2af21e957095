// Package models defines the core domain models for the AI Hub admin service.
package models

import "errors"

// ErrMissingDefaultLocale is returned when a localized text has no "en" entry.
var ErrMissingDefaultLocale = errors.New("localized text requires an 'en' entry")

// LocalizedText maps a locale code ("en", "de", ...) to a translated string.
// The "en" entry is mandatory and acts as the fallback for unknown locales.
type LocalizedText map[string]string

func (lt LocalizedText) Validate() error {
	if lt["en"] == "" {
		return ErrMissingDefaultLocale
	}

	return nil
}

// Resolve returns the text for the given locale, falling back to "en".
func (lt LocalizedText) Resolve(locale string) string {
	if text, ok := lt[locale]; ok && text != "" {
		return text
	}

	return lt["en"]
}

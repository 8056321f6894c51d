// Package config manages user preferences for the MotoVision client:
// dark mode, the alternate palette, the UI locale and an optional API origin
// override. Preferences live in the shared key-value store alongside the
// credential keys, under their own names.
package config

import (
	"strconv"

	"github.com/motovision/motovision/internal/api"
	"github.com/motovision/motovision/internal/i18n"
	"github.com/motovision/motovision/internal/storage"
)

// Storage keys. Shared namespace documented in package storage.
const (
	LocaleKey     = "locale"
	DarkModeKey   = "theme_dark"
	AltPaletteKey = "theme_alt_palette"
	BaseURLKey    = "base_url"
)

// Preferences is the presentation configuration threaded explicitly into
// screens; nothing reads it through ambient globals.
type Preferences struct {
	DarkMode   bool
	AltPalette bool
	Locale     string
	BaseURL    string
}

// Load reads preferences from the store, applying defaults for absent or
// unparseable values.
func Load(kv *storage.Store) Preferences {
	p := Preferences{
		Locale:  i18n.DefaultLocale,
		BaseURL: api.DefaultBaseURL,
	}

	if v, ok := kv.Get(DarkModeKey); ok {
		p.DarkMode, _ = strconv.ParseBool(v)
	}
	if v, ok := kv.Get(AltPaletteKey); ok {
		p.AltPalette, _ = strconv.ParseBool(v)
	}
	if v, ok := kv.Get(LocaleKey); ok && supported(v) {
		p.Locale = v
	}
	if v, ok := kv.Get(BaseURLKey); ok && v != "" {
		p.BaseURL = v
	}
	return p
}

// Save persists the preferences in one write.
func (p Preferences) Save(kv *storage.Store) error {
	return kv.SetMulti(map[string]string{
		DarkModeKey:   strconv.FormatBool(p.DarkMode),
		AltPaletteKey: strconv.FormatBool(p.AltPalette),
		LocaleKey:     p.Locale,
		BaseURLKey:    p.BaseURL,
	})
}

// Translator returns the translation function for the configured locale.
func (p Preferences) Translator() i18n.Translator {
	return i18n.For(p.Locale)
}

func supported(locale string) bool {
	for _, l := range i18n.Supported() {
		if l == locale {
			return true
		}
	}
	return false
}

package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"luxio/internal/storage"
)

// SupportedLanguages lists the storefront languages. French is the default.
var SupportedLanguages = []string{"fr", "en", "pl", "es", "pt", "it", "hu"}

// countryToLanguage maps ISO country codes to storefront languages, used
// when resolving a language for a visitor with no stored preference.
var countryToLanguage = map[string]string{
	"fr": "fr",
	"gb": "en",
	"us": "en",
	"ca": "en",
	"au": "en",
	"pl": "pl",
	"es": "es",
	"pt": "pt",
	"br": "pt",
	"it": "it",
	"hu": "hu",
}

// Translations holds the text table: translation key to language code to text.
type Translations map[string]map[string]string

// LanguageService owns multi-language text lookup and the visitor's persisted
// language preference.
type LanguageService struct {
	translations    Translations
	defaultLanguage string
	store           storage.Store
	storageKey      string
	mu              sync.Mutex
}

// NewLanguageService creates a LanguageService with the given translation
// table. The preference is persisted under storageKey.
func NewLanguageService(translations Translations, defaultLanguage string, store storage.Store, storageKey string) *LanguageService {
	if translations == nil {
		translations = Translations{}
	}
	return &LanguageService{
		translations:    translations,
		defaultLanguage: defaultLanguage,
		store:           store,
		storageKey:      storageKey,
	}
}

// LoadTranslations reads a translation table from a JSON file
// (key -> language -> text).
func LoadTranslations(path string) (Translations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read translations file %s: %w", path, err)
	}
	var translations Translations
	if err := json.Unmarshal(data, &translations); err != nil {
		return nil, fmt.Errorf("failed to parse translations file %s: %w", path, err)
	}
	return translations, nil
}

// IsSupported reports whether lang is a storefront language.
func IsSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// Translate returns the text for key in the given language. Missing keys or
// missing languages return the key itself so untranslated UI shows the key
// instead of nothing.
func (s *LanguageService) Translate(key, lang string) string {
	entry, ok := s.translations[key]
	if !ok {
		return key
	}
	if text, ok := entry[lang]; ok && text != "" {
		return text
	}
	if text, ok := entry[s.defaultLanguage]; ok && text != "" {
		return text
	}
	return key
}

// Table returns the translations for one language as a flat key-to-text map,
// falling back per key as Translate does.
func (s *LanguageService) Table(lang string) map[string]string {
	table := make(map[string]string, len(s.translations))
	for key := range s.translations {
		table[key] = s.Translate(key, lang)
	}
	return table
}

// StoredLanguage returns the persisted language preference, if any.
func (s *LanguageService) StoredLanguage() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Get(s.storageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Failed to load language preference: %v", err)
		}
		return "", false
	}
	lang := string(data)
	if !IsSupported(lang) {
		return "", false
	}
	return lang, true
}

// SetLanguage persists the language preference. Unsupported languages are
// rejected.
func (s *LanguageService) SetLanguage(lang string) error {
	if !IsSupported(lang) {
		return fmt.Errorf("unsupported language: %s", lang)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(s.storageKey, []byte(lang)); err != nil {
		// Same availability policy as the cart: the in-session choice still
		// applies even if it won't survive a restart.
		log.Printf("Failed to store language preference: %v", err)
	}
	return nil
}

// ResolveLanguage picks a language for a visitor: the stored preference if
// any, else the first supported language in the Accept-Language header, else
// the visitor's country, else the default.
func (s *LanguageService) ResolveLanguage(acceptLanguage, countryCode string) string {
	if stored, ok := s.StoredLanguage(); ok {
		return stored
	}

	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		lang := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if IsSupported(lang) {
			return lang
		}
	}

	if lang, ok := countryToLanguage[strings.ToLower(countryCode)]; ok {
		return lang
	}
	return s.defaultLanguage
}

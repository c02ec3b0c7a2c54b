package services_test

import (
	"testing"

	"luxio/internal/services"
	"luxio/internal/storage"

	"github.com/stretchr/testify/assert"
)

func testTranslations() services.Translations {
	return services.Translations{
		"cart.title": {
			"fr": "Votre panier",
			"en": "Your cart",
		},
		"cart.empty": {
			"fr": "Votre panier est vide",
		},
	}
}

func newLanguageService() *services.LanguageService {
	return services.NewLanguageService(testTranslations(), "fr", storage.NewMemoryStore(), "luxio-language")
}

func TestLanguageService_Translate(t *testing.T) {
	languageService := newLanguageService()

	assert.Equal(t, "Your cart", languageService.Translate("cart.title", "en"))
	assert.Equal(t, "Votre panier", languageService.Translate("cart.title", "fr"))

	// A language without the key falls back to the default language.
	assert.Equal(t, "Votre panier est vide", languageService.Translate("cart.empty", "en"))

	// An unknown key falls back to the key itself.
	assert.Equal(t, "nav.missing", languageService.Translate("nav.missing", "en"))
}

func TestLanguageService_Table(t *testing.T) {
	languageService := newLanguageService()

	table := languageService.Table("en")
	assert.Equal(t, "Your cart", table["cart.title"])
	assert.Equal(t, "Votre panier est vide", table["cart.empty"])
}

func TestLanguageService_SetAndStoreLanguage(t *testing.T) {
	languageService := newLanguageService()

	_, ok := languageService.StoredLanguage()
	assert.False(t, ok)

	err := languageService.SetLanguage("pl")
	assert.NoError(t, err)

	stored, ok := languageService.StoredLanguage()
	assert.True(t, ok)
	assert.Equal(t, "pl", stored)

	// Unsupported languages are rejected and do not overwrite the stored one.
	err = languageService.SetLanguage("de")
	assert.Error(t, err)
	stored, _ = languageService.StoredLanguage()
	assert.Equal(t, "pl", stored)
}

func TestLanguageService_ResolveLanguage(t *testing.T) {
	languageService := newLanguageService()

	// Accept-Language wins when nothing is stored.
	assert.Equal(t, "es", languageService.ResolveLanguage("es-ES,es;q=0.9,en;q=0.8", ""))

	// Unsupported browser languages fall through to the country mapping.
	assert.Equal(t, "pt", languageService.ResolveLanguage("de-DE,de;q=0.9", "BR"))

	// No signal at all yields the default.
	assert.Equal(t, "fr", languageService.ResolveLanguage("", ""))

	// A stored preference beats everything else.
	err := languageService.SetLanguage("hu")
	assert.NoError(t, err)
	assert.Equal(t, "hu", languageService.ResolveLanguage("en-US", "US"))
}

// Package i18n provides internationalization support for error messages.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// BaseLocale is the locale used when a request does not match any catalog.
const BaseLocale = "en-US"

// supported lists catalog locales; the first entry is the matcher fallback.
var supported = []language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale  string
	printer *message.Printer
}

var (
	catalogsMu sync.RWMutex
	// catalogs holds override and runtime-built catalogs by locale.
	catalogs = map[string]*Catalog{}

	defaultBuilder = mustBuildDefault()
)

// GetCatalog returns the catalog for the given locale.
// The locale may be a single tag or an Accept-Language value.
// Falls back to en-US if the locale is not found.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}

	if c, ok := lookupCatalog(requested); ok {
		return c
	}

	resolved := Resolve(requested)
	if c, ok := lookupCatalog(resolved); ok {
		return c
	}

	tag := language.MustParse(resolved)
	built := &Catalog{
		locale:  resolved,
		printer: message.NewPrinter(tag, message.Catalog(defaultBuilder)),
	}
	return storeCatalogIfAbsent(resolved, built)
}

// Resolve negotiates the best supported locale for an Accept-Language value.
func Resolve(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return BaseLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return BaseLocale
	}
	return supported[index].String()
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
// Templates are always executed even with nil/empty metadata to ensure
// consistent output (template variables without metadata render as empty).
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	if c == nil || c.printer == nil {
		return code
	}
	tmpl := c.printer.Sprintf(code)

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// RegisterCatalog registers a new catalog for the given locale.
// This is primarily for testing purposes.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	builder := catalog.NewBuilder(catalog.Fallback(tag))
	for key, value := range messages {
		_ = builder.SetString(tag, key, value)
	}
	return &Catalog{
		locale:  locale,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}
}

func mustBuildDefault() *catalog.Builder {
	builder := catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish))
	for tag, messages := range localeMessages {
		for code, msg := range messages {
			if err := builder.SetString(tag, code, msg); err != nil {
				panic("register error message " + code + ": " + err.Error())
			}
		}
	}
	return builder
}

func lookupCatalog(locale string) (*Catalog, bool) {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	cat, ok := catalogs[locale]
	return cat, ok
}

func storeCatalogIfAbsent(locale string, candidate *Catalog) *Catalog {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	if existing, ok := catalogs[locale]; ok {
		return existing
	}
	catalogs[locale] = candidate
	return candidate
}

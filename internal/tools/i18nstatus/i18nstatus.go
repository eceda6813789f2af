// Package i18nstatus renders translation coverage of the error message
// catalogs.
package i18nstatus

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/louisbranch/homerun/internal/platform/errors/i18n"
)

type report struct {
	BaseLocale string         `json:"base_locale"`
	Locales    []localeStatus `json:"locales"`
}

type localeStatus struct {
	Locale      string   `json:"locale"`
	BaseKeys    int      `json:"base_keys"`
	Translated  int      `json:"translated"`
	Missing     int      `json:"missing"`
	Extra       int      `json:"extra"`
	Completion  float64  `json:"completion"`
	MissingKeys []string `json:"missing_keys"`
	ExtraKeys   []string `json:"extra_keys"`
}

// Run writes the coverage report as markdown, or JSON when jsonOutput is set.
// It fails when any locale is missing a message so CI can gate on it.
func Run(out io.Writer, jsonOutput bool) error {
	if out == nil {
		return fmt.Errorf("output is required")
	}
	rep := buildReport(i18n.CoverageReport())
	var err error
	if jsonOutput {
		err = writeJSON(out, rep)
	} else {
		err = writeMarkdown(out, rep)
	}
	if err != nil {
		return err
	}
	for _, locale := range rep.Locales {
		if locale.Missing > 0 {
			return fmt.Errorf("locale %s is missing %d messages", locale.Locale, locale.Missing)
		}
	}
	return nil
}

func buildReport(coverage []i18n.Coverage) report {
	statuses := make([]localeStatus, 0, len(coverage))
	for _, entry := range coverage {
		statuses = append(statuses, localeStatus{
			Locale:      entry.Locale,
			BaseKeys:    entry.BaseKeys,
			Translated:  entry.Translated,
			Missing:     len(entry.Missing),
			Extra:       len(entry.Extra),
			Completion:  math.Round(entry.Completion()*10) / 10,
			MissingKeys: nonNil(entry.Missing),
			ExtraKeys:   nonNil(entry.Extra),
		})
	}
	return report{BaseLocale: i18n.BaseLocale, Locales: statuses}
}

func nonNil(keys []string) []string {
	if keys == nil {
		return []string{}
	}
	return keys
}

func writeJSON(out io.Writer, rep report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}

func writeMarkdown(out io.Writer, rep report) error {
	var b strings.Builder
	b.WriteString("# Error message i18n status\n\n")
	b.WriteString("Base locale: `")
	b.WriteString(rep.BaseLocale)
	b.WriteString("`.\n\n")

	b.WriteString("| Locale | Base Keys | Translated | Missing | Extra | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
	for _, locale := range rep.Locales {
		b.WriteString(fmt.Sprintf("| `%s` | %d | %d | %d | %d | %.1f%% |\n", locale.Locale, locale.BaseKeys, locale.Translated, locale.Missing, locale.Extra, locale.Completion))
	}

	for _, locale := range rep.Locales {
		if len(locale.MissingKeys) == 0 && len(locale.ExtraKeys) == 0 {
			continue
		}
		b.WriteString("\n## Locale: `")
		b.WriteString(locale.Locale)
		b.WriteString("`\n")
		writeKeys(&b, "Missing Keys", locale.MissingKeys)
		writeKeys(&b, "Extra Keys", locale.ExtraKeys)
	}

	_, err := io.WriteString(out, b.String())
	return err
}

func writeKeys(b *strings.Builder, title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	b.WriteString("\n### ")
	b.WriteString(title)
	b.WriteString("\n\n")
	for _, key := range keys {
		b.WriteString("- `")
		b.WriteString(key)
		b.WriteString("`\n")
	}
}

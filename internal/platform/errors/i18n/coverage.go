package i18n

import (
	"slices"

	"golang.org/x/text/language"
)

// Coverage summarizes how much of the base catalog one locale translates.
type Coverage struct {
	Locale     string
	BaseKeys   int
	Translated int
	Missing    []string
	Extra      []string
}

// Completion returns the translated share of base keys in percent.
func (c Coverage) Completion() float64 {
	if c.BaseKeys == 0 {
		return 100
	}
	return float64(c.Translated) * 100 / float64(c.BaseKeys)
}

// CoverageReport compares every supported locale against BaseLocale.
func CoverageReport() []Coverage {
	base := localeMessages[language.AmericanEnglish]
	report := make([]Coverage, 0, len(supported))
	for _, tag := range supported {
		messages := localeMessages[tag]
		entry := Coverage{Locale: tag.String(), BaseKeys: len(base)}
		for code := range base {
			if _, ok := messages[code]; ok {
				entry.Translated++
			} else {
				entry.Missing = append(entry.Missing, code)
			}
		}
		for code := range messages {
			if _, ok := base[code]; !ok {
				entry.Extra = append(entry.Extra, code)
			}
		}
		slices.Sort(entry.Missing)
		slices.Sort(entry.Extra)
		report = append(report, entry)
	}
	return report
}

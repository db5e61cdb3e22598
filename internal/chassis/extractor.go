// Package chassis extracts chassis codes and price values from free text.
package chassis

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/chassis-price-bot/internal/domain/constants"
)

// Patterns are tried strictly in order. The first pattern with at least one
// match wins and its first match is returned, so specific shapes must come
// before the catch-all.
var chassisPatterns = []*regexp.Regexp{
	// NZE141-9012345, GRS182-0012345
	regexp.MustCompile(`\b[A-Z]{3}\d{3}-\d{6,7}\b`),
	// ZVW30-1234567, ZRR70-0123456
	regexp.MustCompile(`\b[A-Z]{3}\d{2}-\d{6,7}\b`),
	// NT32-504837, HR15-123456
	regexp.MustCompile(`\b[A-Z]{2}\d{2}-\d{6,7}\b`),
	// GP5-3012345, GK3-1234567
	regexp.MustCompile(`\b[A-Z]{2}\d-\d{6,7}\b`),
	// GDH201V-1012345, DA17V-123456
	regexp.MustCompile(`\b[A-Z]{2,4}\d{1,3}[A-Z]{1,2}-\d{5,7}\b`),
	// catch-all: any alphanumeric block, hyphen, digit block
	regexp.MustCompile(`\b[A-Z0-9]{2,10}-\d{4,8}\b`),
}

var (
	bundledPriceRe = regexp.MustCompile(`\b\d{` + strconv.Itoa(constants.MinBundledPriceDigits) + `,` + strconv.Itoa(constants.MaxBundledPriceDigits) + `}\b`)
	priceShapeRe   = regexp.MustCompile(`^[0-9][0-9, ]*$`)
)

// Extract returns the best-guess chassis code in text.
func Extract(text string) (string, bool) {
	upper := strings.ToUpper(text)
	if strings.TrimSpace(upper) == "" {
		return "", false
	}
	for _, re := range chassisPatterns {
		if m := re.FindString(upper); m != "" {
			return m, true
		}
	}
	return "", false
}

// BundledPrice finds a bare 4-6 digit run in text outside the given chassis code.
func BundledPrice(text, chassisCode string) (int64, bool) {
	upper := strings.ToUpper(text)
	if chassisCode != "" {
		upper = strings.ReplaceAll(upper, strings.ToUpper(chassisCode), " ")
	}
	m := bundledPriceRe.FindString(upper)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(m, 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// LooksLikePrice reports whether text consists only of digits, commas and spaces.
func LooksLikePrice(text string) bool {
	return priceShapeRe.MatchString(strings.TrimSpace(text))
}

// ParsePrice accepts digit groups with comma separators and internal spaces.
func ParsePrice(text string) (int64, bool) {
	trimmed := strings.TrimSpace(text)
	if !priceShapeRe.MatchString(trimmed) {
		return 0, false
	}
	digits := strings.NewReplacer(",", "", " ", "").Replace(trimmed)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// months maps Portuguese month names, full and 3-letter, to their number.
// Lookups go through Fold first, so accented spellings land here too.
var months = map[string]int{
	"janeiro": 1, "fevereiro": 2, "marco": 3, "abril": 4, "maio": 5, "junho": 6,
	"julho": 7, "agosto": 8, "setembro": 9, "outubro": 10, "novembro": 11, "dezembro": 12,
	"jan": 1, "fev": 2, "mar": 3, "abr": 4, "mai": 5, "jun": 6,
	"jul": 7, "ago": 8, "set": 9, "out": 10, "nov": 11, "dez": 12,
}

var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold strips diacritics so anchor and month matching is accent-insensitive.
func Fold(s string) string {
	out, _, err := transform.String(folder, s)
	if err != nil {
		return s
	}
	return out
}

// MonthNumber resolves a Portuguese month name (full or abbreviated,
// any case, with or without diacritics) to 1..12. Returns 0 when the
// name is unknown.
func MonthNumber(name string) int {
	return months[strings.ToLower(Fold(strings.TrimSpace(name)))]
}

var dateSeparators = regexp.MustCompile(`[\s.\-]`)

// DateOrder says how the components of a raw date string are laid out.
type DateOrder int

const (
	DayMonthYear DateOrder = iota
	YearMonthDay
)

// NormalizeDate converts a locale-formatted date into canonical
// YYYY/MM/DD. Connector words are stripped, separator runs become
// slashes, and with monthName the middle component may be a Portuguese
// month name. Any failure yields "", never a partial date.
func NormalizeDate(raw string, order DateOrder, monthName bool) string {
	if raw == "" {
		return ""
	}

	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " de ", " ")
	s = strings.ReplaceAll(s, "  ", " ")
	s = strings.ReplaceAll(s, " de ", " ")
	s = dateSeparators.ReplaceAllString(s, "/")

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return ""
	}

	if monthName {
		if m := MonthNumber(parts[1]); m > 0 {
			parts[1] = strconv.Itoa(m)
		}
	}

	var y, m, d string
	switch order {
	case DayMonthYear:
		y, m, d = parts[2], parts[1], parts[0]
	default:
		y, m, d = parts[0], parts[1], parts[2]
	}

	t, err := time.Parse("2006/1/2", fmt.Sprintf("%s/%s/%s", y, m, d))
	if err != nil {
		return ""
	}
	return t.Format("2006/01/02")
}

// ParseCanonicalDate parses a normalized YYYY/MM/DD string. Nil on
// anything invalid.
func ParseCanonicalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006/1/2", s)
	if err != nil {
		return nil
	}
	return &t
}

var nonAmount = regexp.MustCompile(`[^0-9,]`)

// CleanAmount strips everything except digits and the decimal comma.
func CleanAmount(raw string) string {
	if raw == "" {
		return ""
	}
	return nonAmount.ReplaceAllString(raw, "")
}

// ParseAmount parses a cleaned amount string with comma as the decimal
// separator. Nil on failure.
func ParseAmount(cleaned string) *float64 {
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(cleaned, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &v
}

// lastDayOfMonth returns the last calendar day of the month, leap years
// included.
func lastDayOfMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// stripSpaces removes every space from an identity field.
func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

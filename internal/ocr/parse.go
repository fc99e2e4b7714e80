package ocr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	tokenPattern      = regexp.MustCompile(`[0-9.,'\x{2019}]+[Kk]?`)
	digitsOnly        = regexp.MustCompile(`^[0-9]+$`)
	whitespaceStrip   = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "\n", "", "\r", "", "\t", "")
	apostropheStrip   = strings.NewReplacer("'", "", "’", "")
	errNoNumber       = fmt.Errorf("no numeric token found")
	errNegativeNumber = fmt.Errorf("negative value")
)

// ParseNumeric extracts a non-negative number from raw OCR text. Thousands
// separators (comma, dot, or apostrophe) are stripped, decimal separators
// normalized, and a trailing K multiplies the value by 1000, so "17,929K"
// parses to 17929000 and "1,250" to 1250.
func ParseNumeric(text string) (float64, error) {
	cleaned := whitespaceStrip.Replace(text)
	token := tokenPattern.FindString(cleaned)
	if token == "" {
		return 0, errNoNumber
	}

	multiplier := 1.0
	if strings.HasSuffix(token, "K") || strings.HasSuffix(token, "k") {
		multiplier = 1000
		token = token[:len(token)-1]
	}
	token = apostropheStrip.Replace(token)
	if token == "" {
		return 0, errNoNumber
	}

	token = normalizeSeparators(token)

	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable numeric token %q: %w", token, err)
	}
	if value < 0 {
		return 0, errNegativeNumber
	}
	return value * multiplier, nil
}

// normalizeSeparators rewrites token so that it carries at most one '.'
// acting as decimal point. OCR output mixes locales, so both "1,234.56"
// and "1.234,56" must come out as 1234.56.
func normalizeSeparators(token string) string {
	hasComma := strings.Contains(token, ",")
	hasDot := strings.Contains(token, ".")

	var decimalSep, thousandsSep string
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(token, ",") > strings.LastIndex(token, ".") {
			decimalSep, thousandsSep = ",", "."
		} else {
			decimalSep, thousandsSep = ".", ","
		}
	case hasComma:
		switch {
		case looksLikeThousands(token, ","):
			thousandsSep = ","
		case hasDecimalSuffix(token, ","):
			decimalSep = ","
		default:
			thousandsSep = ","
		}
	case hasDot:
		switch {
		case looksLikeThousands(token, "."):
			thousandsSep = "."
		case hasDecimalSuffix(token, "."):
			decimalSep = "."
		default:
			thousandsSep = "."
		}
	}

	if thousandsSep != "" {
		token = strings.ReplaceAll(token, thousandsSep, "")
	}
	if decimalSep != "" {
		if decimalSep != "." {
			token = strings.ReplaceAll(token, decimalSep, ".")
		}
	} else {
		token = strings.ReplaceAll(token, ",", "")
		token = strings.ReplaceAll(token, ".", "")
	}
	return token
}

// hasDecimalSuffix reports whether token ends in sep followed by one or two
// digits, the shape of a decimal fraction.
func hasDecimalSuffix(token, sep string) bool {
	idx := strings.LastIndex(token, sep)
	if idx < 0 {
		return false
	}
	tail := token[idx+len(sep):]
	return len(tail) >= 1 && len(tail) <= 2 && digitsOnly.MatchString(tail)
}

// looksLikeThousands reports whether every group after the first consists of
// exactly three digits, the shape of a grouped integer like 17,929,000.
func looksLikeThousands(token, sep string) bool {
	parts := strings.Split(token, sep)
	if len(parts) < 2 {
		return false
	}
	for _, mid := range parts[1:] {
		if len(mid) != 3 || !digitsOnly.MatchString(mid) {
			return false
		}
	}
	return digitsOnly.MatchString(parts[0])
}

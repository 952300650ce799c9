package sorttable

import (
	"cmp"
	"math"
	"strconv"
	"strings"
)

// Comparator orders two extracted keys: negative, zero or positive.
type Comparator func(a, b string) int

var comparators = map[TypeTag]Comparator{
	TypeText:           CompareAlpha,
	TypeNumericPoint:   CompareNumeric,
	TypeNumericComma:   CompareNumericComma,
	TypeDateDayFirst:   CompareDayFirst,
	TypeDateMonthFirst: CompareMonthFirst,
}

// ComparatorFor returns the comparator for a tag; unknown tags compare as text.
func ComparatorFor(t TypeTag) Comparator {
	if c, ok := comparators[t]; ok {
		return c
	}
	return CompareAlpha
}

// CompareNumeric compares point-decimal numbers. Values are truncated to
// integers before comparing, so 1.2 and 1.7 are equal.
func CompareNumeric(a, b string) int {
	return cmp.Compare(numericValue(a, '.'), numericValue(b, '.'))
}

// CompareNumericComma compares comma-decimal numbers, truncated like CompareNumeric.
func CompareNumericComma(a, b string) int {
	return cmp.Compare(numericValue(a, ','), numericValue(b, ','))
}

// CompareAlpha is a plain byte-wise lexicographic comparison.
func CompareAlpha(a, b string) int {
	return strings.Compare(a, b)
}

// CompareDayFirst compares D/M/YYYY dates.
func CompareDayFirst(a, b string) int {
	return cmp.Compare(dateValue(a, false), dateValue(b, false))
}

// CompareMonthFirst compares M/D/YYYY dates.
func CompareMonthFirst(a, b string) int {
	return cmp.Compare(dateValue(a, true), dateValue(b, true))
}

// DateKey packs a date key into an integer that increases with calendar
// order: day + month*32 + year*512. It is not a true day count.
func DateKey(key string, monthFirst bool) (int, bool) {
	first, second, year, ok := MatchDate(key)
	if !ok {
		return 0, false
	}
	day, month := first, second
	if monthFirst {
		day, month = second, first
	}
	return day | month<<5 | year<<9, true
}

// malformed keys sort as the earliest date
func dateValue(key string, monthFirst bool) int {
	v, _ := DateKey(key, monthFirst)
	return v
}

// numericValue keeps digits, '-' and the decimal marker, reads the longest
// leading number and truncates it. Unparseable input is 0.
func numericValue(key string, decimal byte) float64 {
	var b strings.Builder
	replaced := false
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= '0' && c <= '9', c == '-':
			b.WriteByte(c)
		case c == decimal:
			if decimal == ',' && !replaced {
				c = '.'
				replaced = true
			}
			b.WriteByte(c)
		}
	}
	f := leadingFloat(b.String())
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return math.Trunc(f)
}

// leadingFloat parses the longest prefix of s of the form -?digits[.digits].
func leadingFloat(s string) float64 {
	end := 0
	if end < len(s) && s[end] == '-' {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && s[frac] >= '0' && s[frac] <= '9' {
			frac++
		}
		if frac > end+1 || digits > 0 {
			digits += frac - end - 1
			end = frac
		}
	}
	if digits == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return f
}

package sorttable

import (
	"regexp"
	"strconv"
)

var (
	// sign/currency prefix, digit groups with grouping or decimal markers,
	// optional percent/currency suffix. Groups: 1 first marker, 2 last
	// repeated marker, 3 trailing digits, 4 leading decimal marker (".5").
	// Padding also accepts Unicode spaces and BOM, so "12&nbsp;€" matches.
	numericRe = regexp.MustCompile(`^[+\-£$¤¥]{0,2}[\s\p{Zs}\x{feff}]*(?:\d+(?:([ ',.])(?:\d{3}([ ',.]))*(\d*))?|([,.])\d+)[\s\p{Zs}\x{feff}]*[€₽%]?$`)

	// D[/.-]M[/.-]YYYY with one or two digit day and month.
	dateRe = regexp.MustCompile(`^(\d\d?)[/.\-](\d\d?)[/.\-](\d{4})$`)
)

// candidate bits for the classifier
const (
	numericPoint uint8 = 1 << iota
	numericComma
	dateDayFirst
	dateMonthFirst

	numericAny = numericPoint | numericComma
	dateAny    = dateDayFirst | dateMonthFirst
	allTypes   = numericAny | dateAny
)

// MatchNumeric reports whether key looks like a number and, if the match
// exposes one, the character used as decimal marker (0 when ambiguous).
func MatchNumeric(key string) (decimal byte, ok bool) {
	m := numericRe.FindStringSubmatch(key)
	if m == nil {
		return 0, false
	}
	first, last, tail, lead := m[1], m[2], m[3], m[4]
	switch {
	case lead != "":
		return lead[0], true
	case first != "" && last != "":
		// "1,234.5": the last marker differs from the grouping one
		if first != last {
			return last[0], true
		}
	case first != "" && len(tail) != 3:
		// "1,5" cannot be a thousands group
		return first[0], true
	}
	return 0, true
}

// MatchDate splits a D/M/YYYY key into its three numeric groups.
func MatchDate(key string) (first, second, year int, ok bool) {
	m := dateRe.FindStringSubmatch(key)
	if m == nil {
		return 0, 0, 0, false
	}
	first, _ = strconv.Atoi(m[1])
	second, _ = strconv.Atoi(m[2])
	year, _ = strconv.Atoi(m[3])
	return first, second, year, true
}

// ClassifyColumn infers a column's type from its extracted keys by
// eliminating candidates. Empty keys carry no information. The result
// depends only on the multiset of non-empty keys, not their order.
func ClassifyColumn(keys []string) TypeTag {
	guess := allTypes
	for _, key := range keys {
		if key == "" {
			continue
		}
		if guess&numericAny != 0 {
			if decimal, ok := MatchNumeric(key); ok {
				guess &^= dateAny
				switch decimal {
				case 0:
				case ',':
					guess &^= numericPoint
				default:
					guess &^= numericComma
				}
				continue
			}
		}
		if guess&dateAny != 0 {
			guess &^= numericAny
			first, second, _, ok := MatchDate(key)
			if !ok {
				guess &^= dateAny
				continue
			}
			// independent checks: a key with both groups above 12 rules out
			// both readings, unlike sorttable.js which keeps day-first
			if first > 12 {
				guess &^= dateMonthFirst
			}
			if second > 12 {
				guess &^= dateDayFirst
			}
			continue
		}
		guess = 0
		break
	}
	return tagFor(guess)
}

func tagFor(guess uint8) TypeTag {
	switch guess {
	case numericComma:
		return TypeNumericComma
	case numericPoint, numericAny:
		return TypeNumericPoint
	case dateMonthFirst:
		return TypeDateMonthFirst
	case dateDayFirst, dateAny:
		return TypeDateDayFirst
	}
	return TypeText
}

// Package timeparse turns messy free-text time ranges ("9am - 5pm", "from
// nine thirty to noon") into normalized 24-hour HH:MM pairs. The scheduler
// itself never sees free text; callers normalize through this package first.
package timeparse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"studyflow/internal/timeutil"
)

// ErrNoTime is returned when no time interval can be recognized in the
// input.
var ErrNoTime = errors.New("no time found")

// Interval is a normalized 24-hour time range.
type Interval struct {
	Start string // HH:MM
	End   string // HH:MM
}

type period int

const (
	periodUnknown period = iota
	periodAM
	periodPM
)

type parsedTime struct {
	hours   int
	minutes int
	period  period
}

var wordNumbers = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
	"twenty-one": 21, "twenty-two": 22, "twenty-three": 23,
	"thirty": 30, "forty": 40, "fifty": 50,
}

var (
	amPattern      = regexp.MustCompile(`(?:^|[^a-z])a\.?m\.?(?:$|[^a-z])`)
	pmPattern      = regexp.MustCompile(`(?:^|[^a-z])p\.?m\.?(?:$|[^a-z])`)
	morningPattern = regexp.MustCompile(`\bmorning\b`)
	eveningPattern = regexp.MustCompile(`\b(afternoon|evening|night|tonight)\b`)
	fromToPattern  = regexp.MustCompile(`(?:from|between)\s+(.+?)\s+(?:to|and)\s+(.+)`)
	nonClockChars  = regexp.MustCompile(`[^\d:]`)
)

// ParseInterval parses a free-text time range. Single times without a range
// connector are rejected; availability windows always need both ends.
func ParseInterval(input string) (Interval, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return Interval{}, ErrNoTime
	}

	startText, endText, ok := splitRange(trimmed)
	if !ok {
		return Interval{}, ErrNoTime
	}

	start, ok := parseOne(startText)
	if !ok {
		return Interval{}, ErrNoTime
	}
	end, ok := parseOne(endText)
	if !ok {
		return Interval{}, ErrNoTime
	}

	inferPeriods(&start, &end, extractPeriod(trimmed))

	startMin, ok := toMinutes(start)
	if !ok {
		return Interval{}, ErrNoTime
	}
	endMin, ok := toMinutes(end)
	if !ok {
		return Interval{}, ErrNoTime
	}

	return Interval{
		Start: timeutil.FormatClock(startMin),
		End:   timeutil.FormatClock(endMin),
	}, nil
}

func splitRange(text string) (string, string, bool) {
	if m := fromToPattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
	}
	if left, right, ok := splitOnHyphen(text); ok {
		return left, right, true
	}
	for _, connector := range []string{"–", "—", " to ", " til ", " until ", " through ", " thru "} {
		if strings.Contains(text, connector) {
			parts := strings.SplitN(text, connector, 2)
			left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
			if left != "" && right != "" {
				return left, right, true
			}
		}
	}
	return "", "", false
}

// splitOnHyphen treats "-" as a range connector, skipping hyphens that join
// two letters so spelled-out numbers like "twenty-one" stay whole.
func splitOnHyphen(text string) (string, string, bool) {
	for i := 0; i < len(text); i++ {
		if text[i] != '-' {
			continue
		}
		if i > 0 && i+1 < len(text) && isLetter(text[i-1]) && isLetter(text[i+1]) {
			continue
		}
		left, right := strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
		if left != "" && right != "" {
			return left, right, true
		}
	}
	return "", "", false
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}

func parseOne(text string) (parsedTime, bool) {
	if pt, ok := parsePhrase(text); ok {
		applyLocalPeriod(&pt, text)
		return pt, true
	}
	if pt, ok := parseNumeric(text); ok {
		applyLocalPeriod(&pt, text)
		return pt, true
	}
	return parsedTime{}, false
}

func applyLocalPeriod(pt *parsedTime, text string) {
	if p := extractPeriod(text); p != periodUnknown {
		pt.period = p
	}
}

// parsePhrase handles spelled-out times like "nine thirty" and the special
// words noon and midnight.
func parsePhrase(text string) (parsedTime, bool) {
	if strings.Contains(text, "noon") {
		return parsedTime{hours: 12, minutes: 0, period: periodPM}, true
	}
	if strings.Contains(text, "midnight") {
		return parsedTime{hours: 0, minutes: 0, period: periodAM}, true
	}

	words := strings.Fields(text)
	for i, word := range words {
		num, ok := wordNumbers[word]
		if !ok || num < 1 || num > 23 {
			continue
		}
		pt := parsedTime{hours: num}
		if i+1 < len(words) {
			if next, ok := wordNumbers[words[i+1]]; ok && next <= 59 {
				pt.minutes = next
			}
		}
		return pt, true
	}
	return parsedTime{}, false
}

// parseNumeric handles digit forms: "9", "9:30", "930", "1430".
func parseNumeric(text string) (parsedTime, bool) {
	cleaned := nonClockChars.ReplaceAllString(text, "")
	if cleaned == "" {
		return parsedTime{}, false
	}

	var hours, minutes int
	if strings.Contains(cleaned, ":") {
		parts := strings.SplitN(cleaned, ":", 2)
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return parsedTime{}, false
		}
		hours, minutes = h, m
	} else {
		num, err := strconv.Atoi(cleaned)
		if err != nil {
			return parsedTime{}, false
		}
		switch {
		case num < 24:
			hours = num
		case num < 100:
			hours, minutes = 0, num
		case num < 2400:
			hours, minutes = num/100, num%100
		default:
			return parsedTime{}, false
		}
	}

	hours += minutes / 60
	minutes %= 60
	if hours > 23 {
		return parsedTime{}, false
	}
	return parsedTime{hours: hours, minutes: minutes}, true
}

func extractPeriod(text string) period {
	switch {
	case amPattern.MatchString(text):
		return periodAM
	case pmPattern.MatchString(text):
		return periodPM
	case morningPattern.MatchString(text):
		return periodAM
	case eveningPattern.MatchString(text):
		return periodPM
	}
	return periodUnknown
}

// inferPeriods fills missing AM/PM markers: a shared global marker applies
// to both ends, an end before its start implies the range crosses noon, and
// a marker on one end carries over to the other.
func inferPeriods(start, end *parsedTime, global period) {
	switch {
	case start.period == periodUnknown && end.period == periodUnknown:
		if global != periodUnknown {
			start.period = global
			end.period = global
		} else if end.hours < start.hours {
			start.period = periodAM
			end.period = periodPM
		} else {
			start.period = periodAM
			end.period = periodAM
		}
	case start.period == periodUnknown:
		if end.period == periodPM && asPM(start.hours) > asPM(end.hours) {
			// Copying PM over would put the start after the end, as in
			// "nine thirty to noon"; the range must cross from the morning.
			start.period = periodAM
		} else {
			start.period = end.period
		}
	case end.period == periodUnknown:
		if start.period == periodAM && end.hours < start.hours {
			end.period = periodPM
		} else {
			end.period = start.period
		}
	}
}

// asPM maps an hour to its 24-hour value under a PM reading.
func asPM(hours int) int {
	if hours == 12 || hours > 12 {
		return hours
	}
	return hours + 12
}

// toMinutes converts a parsed time to minutes after midnight in 24-hour
// terms, rounding minutes to the nearest five.
func toMinutes(pt parsedTime) (int, bool) {
	hours := pt.hours
	minutes := (pt.minutes + 2) / 5 * 5
	hours += minutes / 60
	minutes %= 60

	// Hours given in 24-hour form keep their meaning regardless of period.
	if hours <= 12 {
		switch pt.period {
		case periodPM:
			if hours != 12 {
				hours += 12
			}
		case periodAM:
			if hours == 12 {
				hours = 0
			}
		}
	}

	if hours > 23 || hours < 0 || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

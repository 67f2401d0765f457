// Package chatbot turns free-text chat transcripts into partial booking
// data. Extraction is heuristic pattern matching, bilingual
// (English/Albanian), and deliberately re-scans the whole transcript on
// every turn so a field once captured survives later noisy messages.
package chatbot

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"hotel-backend/internal/domain/models"
	"hotel-backend/internal/utils"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	phoneRes = []*regexp.Regexp{
		// international, e.g. +355 69 123 4567
		regexp.MustCompile(`\+\d{1,3}[ \-]?\d{2,3}[ \-]?\d{3}[ \-]?\d{3,4}`),
		// local, e.g. 069 123 4567 / 0691234567
		regexp.MustCompile(`\b0\d{1,2}[ \-]?\d{3}[ \-]?\d{3,5}\b`),
	}

	// introduction phrases; the capture runs to the next punctuation and
	// is trimmed down to name-looking tokens afterwards.
	nameIntroRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bmy name is\s+([^,.!?\n]+)`),
		regexp.MustCompile(`(?i)\bi am\s+([^,.!?\n]+)`),
		regexp.MustCompile(`(?i)\bi'm\s+([^,.!?\n]+)`),
		regexp.MustCompile(`(?i)\bthis is\s+([^,.!?\n]+)`),
		regexp.MustCompile(`(?i)\bquhem\s+([^,.!?\n]+)`),
		regexp.MustCompile(`(?i)\bemri im (?:është|eshte)\s+([^,.!?\n]+)`),
		regexp.MustCompile(`(?i)\bun[ëe] jam\s+([^,.!?\n]+)`),
	}

	// a message that is nothing but "Firstname Lastname"
	bareNameRe = regexp.MustCompile(`^\s*([A-ZÇË][a-zçë]+(?:\s+[A-ZÇË][a-zçë]+){1,2})\s*$`)

	// words that end a name capture; the list absorbs the usual
	// "I am looking for ..." style false positives.
	nameStopWords = map[string]bool{
		"and": true, "i": true, "we": true, "from": true, "the": true,
		"a": true, "an": true, "not": true, "so": true, "very": true,
		"here": true, "just": true, "also": true, "still": true,
		"looking": true, "interested": true, "wondering": true,
		"planning": true, "trying": true, "going": true, "booking": true,
		"searching": true, "asking": true, "writing": true, "sure": true,
		"dhe": true, "nga": true, "une": true, "unë": true, "duke": true,
		"po": true, "nuk": true,
	}

	// tokens that look like names but never are
	nameRejects = []string{"standard", "deluxe", "premium", "suite", "alpin", "resort", "room", "dhome", "dhomë"}

	guestRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:person|people|guest|guests|persona|vet[ëe]|adult|adults)\b`),
		regexp.MustCompile(`(?i)\bfor\s+(\d{1,2})\b(\s*(?:night|nights|net|nat))?`),
		regexp.MustCompile(`(?i)\bp[ëe]r\s+(\d{1,2})\b(\s*(?:night|nights|net|nat))?`),
	}

	isoDateRe     = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	numericDateRe = regexp.MustCompile(`\b(\d{1,2})[/.](\d{1,2})(?:[/.](\d{2,4}))?\b`)

	dayMonthRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(` + monthAlternatives + `)\b(?:,?\s+(\d{4}))?`)
	monthDayRe = regexp.MustCompile(`(?i)\b(` + monthAlternatives + `)\s+(\d{1,2})(?:st|nd|rd|th)?\b(?:,?\s+(\d{4}))?`)
)

const monthAlternatives = `january|february|march|april|may|june|july|august|september|october|november|december|` +
	`janar|shkurt|mars|prill|maj|qershor|korrik|gusht|shtator|tetor|n[ëe]ntor|dhjetor`

var monthByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
	"janar": time.January, "shkurt": time.February, "mars": time.March,
	"prill": time.April, "maj": time.May, "qershor": time.June,
	"korrik": time.July, "gusht": time.August, "shtator": time.September,
	"tetor": time.October, "nëntor": time.November, "nentor": time.November,
	"dhjetor": time.December,
}

// Extract re-scans every user turn of the transcript and accumulates
// whatever booking fields can be confidently parsed. Per field, pattern
// iteration order is fixed and the first match wins.
func Extract(turns []models.Turn, now time.Time) models.PartialBookingInfo {
	var parts []string
	for _, t := range turns {
		if t.Role == models.RoleUser {
			parts = append(parts, t.Text)
		}
	}
	transcript := strings.Join(parts, "\n")

	info := models.PartialBookingInfo{
		Name:     extractName(parts),
		Email:    strings.ToLower(emailRe.FindString(transcript)),
		Phone:    extractPhone(transcript),
		RoomType: extractRoomType(transcript),
		Guests:   extractGuests(transcript),
	}
	info.CheckIn, info.CheckOut = extractStayDates(transcript, now)
	return info
}

func extractName(messages []string) string {
	transcript := strings.Join(messages, "\n")
	for _, re := range nameIntroRes {
		if m := re.FindStringSubmatch(transcript); m != nil {
			if name := cleanName(m[1]); name != "" {
				return name
			}
		}
	}
	for _, msg := range messages {
		if m := bareNameRe.FindStringSubmatch(msg); m != nil {
			if name := cleanName(m[1]); name != "" {
				return name
			}
		}
	}
	return ""
}

// cleanName cuts a raw capture down to at most three name tokens and
// rejects known non-name words (room types, the resort itself).
func cleanName(raw string) string {
	var kept []string
	for _, tok := range strings.Fields(raw) {
		if nameStopWords[strings.ToLower(tok)] {
			break
		}
		if !isWordLetters(tok) {
			break
		}
		kept = append(kept, titleCase(tok))
		if len(kept) == 3 {
			break
		}
	}
	if len(kept) == 0 {
		return ""
	}
	name := strings.Join(kept, " ")
	lower := strings.ToLower(name)
	for _, reject := range nameRejects {
		if strings.Contains(lower, reject) {
			return ""
		}
	}
	return name
}

func isWordLetters(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == 'ç' || r == 'Ç' || r == 'ë' || r == 'Ë' || r == '-') {
			return false
		}
	}
	return s != ""
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func extractPhone(transcript string) string {
	for _, re := range phoneRes {
		if m := re.FindString(transcript); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func extractRoomType(transcript string) string {
	code, _, ok := models.MatchRoomMention(transcript)
	if !ok {
		return ""
	}
	return code
}

func extractGuests(transcript string) int {
	for _, re := range guestRes {
		for _, m := range re.FindAllStringSubmatch(transcript, -1) {
			// "for 2 nights" is a duration, not a guest count
			if len(m) > 2 && strings.TrimSpace(m[2]) != "" {
				continue
			}
			n := atoiSafe(m[1])
			if n >= 1 && n <= 10 {
				return n
			}
		}
	}
	return 0
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// extractStayDates collects every date mention in the transcript, sorts
// them, and pairs the earliest two as check-in/check-out. A single date
// defaults to a two-night stay. Dates without a year land on the next
// occurrence of that calendar day.
func extractStayDates(transcript string, now time.Time) (*time.Time, *time.Time) {
	today := utils.DateOnly(now)
	seen := map[time.Time]bool{}
	var dates []time.Time

	add := func(t time.Time, ok bool) {
		if !ok || seen[t] {
			return
		}
		seen[t] = true
		dates = append(dates, t)
	}

	for _, m := range isoDateRe.FindAllStringSubmatch(transcript, -1) {
		add(makeDate(atoiSafe(m[3]), atoiSafe(m[2]), atoiSafe(m[1]), today))
	}
	for _, m := range numericDateRe.FindAllStringSubmatch(transcript, -1) {
		year := 0
		if m[3] != "" {
			year = atoiSafe(m[3])
			if year < 100 {
				year += 2000
			}
		}
		add(makeDateMaybeYear(atoiSafe(m[1]), time.Month(atoiSafe(m[2])), year, today))
	}
	for _, m := range dayMonthRe.FindAllStringSubmatch(transcript, -1) {
		month, ok := monthByName[strings.ToLower(m[2])]
		if !ok {
			continue
		}
		add(makeDateMaybeYear(atoiSafe(m[1]), month, atoiSafe(m[3]), today))
	}
	for _, m := range monthDayRe.FindAllStringSubmatch(transcript, -1) {
		month, ok := monthByName[strings.ToLower(m[1])]
		if !ok {
			continue
		}
		add(makeDateMaybeYear(atoiSafe(m[2]), month, atoiSafe(m[3]), today))
	}

	if len(dates) == 0 {
		return nil, nil
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	checkIn := dates[0]
	var checkOut time.Time
	if len(dates) >= 2 {
		checkOut = dates[1]
	} else {
		checkOut = checkIn.AddDate(0, 0, 2)
	}
	return &checkIn, &checkOut
}

func makeDate(day int, month int, year int, today time.Time) (time.Time, bool) {
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 2000 || year > 2100 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func makeDateMaybeYear(day int, month time.Month, year int, today time.Time) (time.Time, bool) {
	if day < 1 || day > 31 || month < time.January || month > time.December {
		return time.Time{}, false
	}
	if year != 0 {
		return makeDate(day, int(month), year, today)
	}
	t := time.Date(today.Year(), month, day, 0, 0, 0, 0, time.UTC)
	if int(t.Month()) != int(month) || t.Day() != day {
		return time.Time{}, false
	}
	if t.Before(today) {
		t = t.AddDate(1, 0, 0)
	}
	return t, true
}

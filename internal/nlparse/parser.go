// Package nlparse turns free-form quick-add text into a structured task.
//
// The parser is a keyword/regex scanner. Each facet (due date, priority,
// location) is matched independently, the first match wins, and the matched
// fragment is stripped from the remaining title text. Category keywords are
// content words, so they are detected but never stripped.
package nlparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/plandeck/backend/domain"
)

// word builds a delimiter-bounded alternation. \b is ASCII-only in Go
// regexp, so Cyrillic keywords need explicit boundaries.
func word(alts ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[\s,.;!?])(?:` + strings.Join(alts, "|") + `)(?:[\s,.;!?]|$)`)
}

var (
	notesRe = regexp.MustCompile(`\(([^)]+)\)`)

	timeRe12 = regexp.MustCompile(`(?i)(?:(?:^|\s)(?:at|в)\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)
	timeRe24 = regexp.MustCompile(`(?i)(?:(?:^|\s)(?:at|в)\s+)?(\d{1,2}):(\d{2})`)

	dateNumericRe = regexp.MustCompile(`(\d{1,2})[./](\d{1,2})(?:[./](\d{2,4}))?`)

	weekdayRe = regexp.MustCompile(`(?i)(?:^|[\s,])(?:(?:on|next)\s+|во?\s+)?` +
		`(monday|tuesday|wednesday|thursday|friday|saturday|sunday|` +
		`понедельник|вторник|сред[ау]|четверг|пятниц[ау]|суббот[ау]|воскресенье)(?:[\s,.;!?]|$)`)

	locationRe = regexp.MustCompile(`(?:^|[\s,])(?:at|At|in|In|в|В|во|Во)\s+` +
		`((?:[A-ZА-ЯЁ][^\s,.;!?]*)(?:\s+[A-ZА-ЯЁ][^\s,.;!?]*)*)`)
)

var relativeDays = []struct {
	re   *regexp.Regexp
	days int
	hour int // -1 keeps the default
}{
	{word("today", "сегодня"), 0, -1},
	{word("tomorrow", "завтра"), 1, -1},
	{word("tonight", "вечером"), 0, 20},
}

var priorityPatterns = []struct {
	re       *regexp.Regexp
	priority int
}{
	{word("urgent(?:ly)?", "asap", "critical", "срочно"), domain.PriorityUrgent},
	{word("important", "важно"), domain.PriorityHigh},
	{word(`low\s+priority`, "someday", "потом"), domain.PriorityLow},
}

var categoryPatterns = []struct {
	re       *regexp.Regexp
	category string
}{
	{word("work", "meeting", "office", "deadline", "report", `работ\p{L}*`, `встреч\p{L}*`, `офис\p{L}*`), "work"},
	{word("home", "house", "clean(?:ing)?", "laundry", `дом\p{L}*`, `уборк\p{L}*`), "home"},
	{word("buy", "shopping", "groceries", "store", "купить", `магазин\p{L}*`, `продукт\p{L}*`), "shopping"},
	{word("doctor", "dentist", "gym", "workout", "health", `врач\p{L}*`, `спортзал\p{L}*`, `трениров\p{L}*`), "health"},
}

var weekdayIndex = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
	"sunday": time.Sunday,
	"понедельник": time.Monday, "вторник": time.Tuesday,
	"среда": time.Wednesday, "среду": time.Wednesday,
	"четверг": time.Thursday,
	"пятница": time.Friday, "пятницу": time.Friday,
	"суббота": time.Saturday, "субботу": time.Saturday,
	"воскресенье": time.Sunday,
}

// defaultHour is assumed when a date is recognized without a clock time.
const defaultHour = 9

// Parse scans text for scheduling hints relative to ref and returns the
// structured result. Unrecognized facets stay zero-valued.
func Parse(text string, ref time.Time) domain.ParsedTask {
	var parsed domain.ParsedTask
	working := strings.TrimSpace(text)

	if m := notesRe.FindStringSubmatchIndex(working); m != nil {
		parsed.Notes = strings.TrimSpace(working[m[2]:m[3]])
		working = cut(working, m[0], m[1])
	}

	working = extractDueDate(working, ref, &parsed)
	working = extractPriority(working, &parsed)
	working = extractLocation(working, &parsed)
	parsed.Category = detectCategory(text)
	parsed.Title = cleanTitle(working)

	return parsed
}

func extractDueDate(text string, ref time.Time, parsed *domain.ParsedTask) string {
	var (
		haveDate bool
		date     time.Time
		hour     = -1
		minute   int
	)

	// Clock time goes first so "at 5pm" is not mistaken for a location.
	if m := timeRe12.FindStringSubmatchIndex(text); m != nil {
		h := atoi(text[m[2]:m[3]])
		if m[4] >= 0 {
			minute = atoi(text[m[4]:m[5]])
		}
		meridiem := strings.ToLower(text[m[6]:m[7]])
		if meridiem == "pm" && h < 12 {
			h += 12
		}
		if meridiem == "am" && h == 12 {
			h = 0
		}
		if h < 24 && minute < 60 {
			hour = h
			text = cut(text, m[0], m[1])
		}
	} else if m := timeRe24.FindStringSubmatchIndex(text); m != nil {
		h, mm := atoi(text[m[2]:m[3]]), atoi(text[m[4]:m[5]])
		if h < 24 && mm < 60 {
			hour, minute = h, mm
			text = cut(text, m[0], m[1])
		}
	}

	for _, rd := range relativeDays {
		if m := rd.re.FindStringIndex(text); m != nil {
			date = midnight(ref).AddDate(0, 0, rd.days)
			haveDate = true
			if hour < 0 && rd.hour >= 0 {
				hour = rd.hour
			}
			text = cut(text, m[0], m[1])
			break
		}
	}

	if !haveDate {
		if m := weekdayRe.FindStringSubmatchIndex(text); m != nil {
			target := weekdayIndex[strings.ToLower(text[m[2]:m[3]])]
			delta := (int(target) - int(ref.Weekday()) + 7) % 7
			date = midnight(ref).AddDate(0, 0, delta)
			haveDate = true
			text = cut(text, m[0], m[1])
		}
	}

	if !haveDate {
		if m := dateNumericRe.FindStringSubmatchIndex(text); m != nil {
			day, month := atoi(text[m[2]:m[3]]), atoi(text[m[4]:m[5]])
			if day >= 1 && day <= 31 && month >= 1 && month <= 12 {
				year, explicitYear := ref.Year(), false
				if m[6] >= 0 {
					year = atoi(text[m[6]:m[7]])
					if year < 100 {
						year += 2000
					}
					explicitYear = true
				}
				date = time.Date(year, time.Month(month), day, 0, 0, 0, 0, ref.Location())
				// Ambiguous past dates roll over to the next occurrence.
				if !explicitYear && date.Before(midnight(ref)) {
					date = date.AddDate(1, 0, 0)
				}
				haveDate = true
				text = cut(text, m[0], m[1])
			}
		}
	}

	if !haveDate && hour < 0 {
		return text
	}
	if !haveDate {
		date = midnight(ref)
	}
	if hour < 0 {
		hour = defaultHour
	}

	due := date.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	if !haveDate && due.Before(ref) {
		due = due.AddDate(0, 0, 1)
	}
	parsed.DueDate = &due
	return text
}

func extractPriority(text string, parsed *domain.ParsedTask) string {
	for _, p := range priorityPatterns {
		if m := p.re.FindStringIndex(text); m != nil {
			parsed.Priority = p.priority
			return cut(text, m[0], m[1])
		}
	}
	return text
}

func extractLocation(text string, parsed *domain.ParsedTask) string {
	m := locationRe.FindStringSubmatchIndex(text)
	if m == nil {
		return text
	}
	parsed.Location = strings.TrimSpace(text[m[2]:m[3]])
	return cut(text, m[0], m[1])
}

// detectCategory inspects the original input: category keywords are part of
// the task content and may sit inside fragments other facets strip.
func detectCategory(text string) string {
	for _, c := range categoryPatterns {
		if c.re.MatchString(text) {
			return c.category
		}
	}
	return ""
}

func cleanTitle(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	return strings.Trim(text, " \t-–,.:;!?")
}

func cut(s string, start, end int) string {
	return s[:start] + " " + s[end:]
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

package model

import (
	"regexp"
	"strconv"
	"time"

	"golang.org/x/text/width"
)

// Tokyo is the zone every portal renders its dates in.
var Tokyo = time.FixedZone("JST", 9*60*60)

var (
	gregorianRe = regexp.MustCompile(`(\d{4})\s*[/\-.年]\s*(\d{1,2})\s*[/\-.月]\s*(\d{1,2})`)
	eraRe       = regexp.MustCompile(`(令和|平成|R|H)\s*(\d{1,2}|元)\s*[/\-.年]\s*(\d{1,2})\s*[/\-.月]\s*(\d{1,2})`)
)

var eraStart = map[string]int{
	"令和": 2019,
	"R":  2019,
	"平成": 1989,
	"H":  1989,
}

// ParseDate extracts the first calendar date found in s. It understands
// slash, dash, dot and kanji separated Gregorian dates and Reiwa/Heisei
// era dates, with or without a trailing weekday.
func ParseDate(s string) (time.Time, bool) {
	s = width.Narrow.String(s)

	if m := eraRe.FindStringSubmatch(s); m != nil {
		n := 1
		if m[2] != "元" {
			n, _ = strconv.Atoi(m[2])
		}
		return makeDate(eraStart[m[1]]+n-1, m[3], m[4])
	}
	if m := gregorianRe.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		return makeDate(y, m[2], m[3])
	}
	return time.Time{}, false
}

func makeDate(year int, month, day string) (time.Time, bool) {
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(m), d, 0, 0, 0, 0, Tokyo)
	// time.Date normalizes 2/30 into March; reject that.
	if t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

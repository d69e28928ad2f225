package jarchive

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

var (
	airedPattern  = regexp.MustCompile(`aired[\s\x{00a0}]*(\d{4}-\d{2}-\d{2})`)
	gameIDPattern = regexp.MustCompile(`game_id=(\d+)`)
)

// seasonFor maps an air date to the season that was running; seasons start
// in September.
func seasonFor(date string) int {
	t, err := timeutil.ParseDate(date)
	if err != nil {
		return 0
	}
	season := t.Year() - firstSeasonYear
	if int(t.Month()) >= seasonStartMon {
		season++
	}
	return season
}

// candidateSeasons lists seasons to search. Early September dates may still
// belong to the previous season's listing.
func candidateSeasons(date string) []int {
	season := seasonFor(date)
	if season < 1 {
		return nil
	}
	out := []int{season}
	if t, err := timeutil.ParseDate(date); err == nil && int(t.Month()) == seasonStartMon && season > 1 {
		out = append(out, season-1)
	}
	return out
}

// findGameID scans a season listing for the game that aired on date.
func findGameID(doc *goquery.Document, date string) (string, bool) {
	var found string
	doc.Find("a[href*='showgame.php']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		m := airedPattern.FindStringSubmatch(s.Text())
		if len(m) < 2 || m[1] != date {
			return true
		}
		href, _ := s.Attr("href")
		if id := gameIDPattern.FindStringSubmatch(href); len(id) == 2 {
			found = id[1]
			return false
		}
		return true
	})
	return found, found != ""
}

func parseInt(raw string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	n, _ := strconv.Atoi(digits)
	return n
}

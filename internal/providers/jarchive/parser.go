package jarchive

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
	"github.com/preston-bernstein/trivia-admin-service/internal/providers"
	"github.com/preston-bernstein/trivia-admin-service/internal/timeutil"
)

var (
	showNumberPattern = regexp.MustCompile(`Show #(\d+)`)
	titleDatePattern  = regexp.MustCompile(`([A-Z][a-z]+ \d{1,2}, \d{4})`)
	clueIDPattern     = regexp.MustCompile(`^clue_(J|DJ)_(\d+)_(\d+)$`)
)

type roundSection struct {
	selector string
	round    questions.Round
	base     int
}

var roundSections = []roundSection{
	{"#jeopardy_round", questions.RoundSingle, 200},
	{"#double_jeopardy_round", questions.RoundDouble, 400},
}

// parseGame turns a game page into a FetchedGame.
func parseGame(doc *goquery.Document, gameID string) (questions.FetchedGame, error) {
	title := strings.TrimSpace(doc.Find("#game_title").First().Text())
	showNumber := 0
	if m := showNumberPattern.FindStringSubmatch(title); len(m) == 2 {
		showNumber, _ = strconv.Atoi(m[1])
	}
	airDate := parseTitleDate(title)

	var clues []questions.QuestionRecord
	for _, section := range roundSections {
		clues = append(clues, parseBoard(doc.Find(section.selector), section.round, section.base)...)
	}
	if final, ok := parseFinal(doc.Find("#final_jeopardy_round")); ok {
		clues = append(clues, final)
	}

	if len(clues) == 0 {
		return questions.FetchedGame{}, &providers.NotFoundError{
			GameID:     gameID,
			Suggestion: "the archive page has no clues; the game may not be transcribed yet",
		}
	}
	return questions.NewFetchedGame(gameID, showNumber, airDate, clues), nil
}

func parseTitleDate(title string) string {
	m := titleDatePattern.FindStringSubmatch(title)
	if len(m) < 2 {
		return ""
	}
	t, err := time.Parse("January 2, 2006", m[1])
	if err != nil {
		return ""
	}
	return timeutil.FormatDate(t)
}

func parseBoard(board *goquery.Selection, round questions.Round, base int) []questions.QuestionRecord {
	if board.Length() == 0 {
		return nil
	}
	var categories []string
	board.Find("td.category_name").Each(func(_ int, s *goquery.Selection) {
		categories = append(categories, cleanText(s.Text()))
	})

	type cell struct {
		col, row int
		clue     questions.QuestionRecord
	}
	var cells []cell
	board.Find("td.clue_text").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		m := clueIDPattern.FindStringSubmatch(id)
		if len(m) != 4 {
			return
		}
		col, _ := strconv.Atoi(m[2])
		row, _ := strconv.Atoi(m[3])

		category := ""
		if col >= 1 && col <= len(categories) {
			category = categories[col-1]
		}
		value := parseInt(s.Closest("td.clue").Find("td.clue_value, td.clue_value_daily_double").First().Text())
		if value == 0 {
			value = base * row
		}
		answer, stumper := parseResponse(board.Find("#" + id + "_r"))

		cells = append(cells, cell{col: col, row: row, clue: questions.QuestionRecord{
			Question:         cleanText(s.Text()),
			Answer:           answer,
			Value:            value,
			Category:         category,
			Round:            round,
			WasTripleStumper: stumper,
		}})
	})

	// Board order: column by column, top to bottom.
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].col != cells[j].col {
			return cells[i].col < cells[j].col
		}
		return cells[i].row < cells[j].row
	})
	out := make([]questions.QuestionRecord, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.clue)
	}
	return out
}

func parseFinal(section *goquery.Selection) (questions.QuestionRecord, bool) {
	text := section.Find("#clue_FJ")
	if text.Length() == 0 {
		return questions.QuestionRecord{}, false
	}
	answer, stumper := parseResponse(section.Find("#clue_FJ_r"))
	return questions.QuestionRecord{
		Question:         cleanText(text.Text()),
		Answer:           answer,
		Category:         cleanText(section.Find("td.category_name").First().Text()),
		Round:            questions.RoundFinal,
		WasTripleStumper: stumper,
	}, true
}

// parseResponse reads the hidden response cell of a clue.
func parseResponse(resp *goquery.Selection) (string, bool) {
	answer := cleanText(resp.Find("em.correct_response").First().Text())
	stumper := false
	resp.Find("td.wrong").Each(func(_ int, s *goquery.Selection) {
		if strings.Contains(s.Text(), "Triple Stumper") {
			stumper = true
		}
	})
	return answer, stumper
}

func cleanText(raw string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(raw, " ", " ")), " ")
}

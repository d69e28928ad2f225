// Package export renders stored questions as spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/preston-bernstein/trivia-admin-service/internal/domain/questions"
)

// ContentType is the MIME type of the workbooks WriteQuestions produces.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var sheetNames = map[questions.Round]string{
	questions.RoundSingle: "Single",
	questions.RoundDouble: "Double",
	questions.RoundFinal:  "Final",
}

var header = []any{"Air Date", "Category", "Value", "Question", "Answer", "Knowledge Category", "Difficulty", "Triple Stumper"}

// WriteQuestions writes records to w as an xlsx workbook with one sheet per
// round. title is stored as the workbook title property.
func WriteQuestions(w io.Writer, records []questions.QuestionRecord, title string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, round := range questions.Rounds {
		name := sheetNames[round]
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("export: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("export: add sheet %s: %w", name, err)
		}
		if err := setRow(f, name, 1, header); err != nil {
			return err
		}
	}

	next := map[questions.Round]int{questions.RoundSingle: 2, questions.RoundDouble: 2, questions.RoundFinal: 2}
	for _, q := range records {
		round := questions.ResolveRound(q)
		row := []any{q.AirDate, q.Category, q.Value, q.Question, q.Answer, q.KnowledgeCategory, q.Difficulty, q.WasTripleStumper}
		if err := setRow(f, sheetNames[round], next[round], row); err != nil {
			return err
		}
		next[round]++
	}

	if title != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: title, Creator: "trivia-admin-service"}); err != nil {
			return fmt.Errorf("export: doc props: %w", err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("export: cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("export: set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

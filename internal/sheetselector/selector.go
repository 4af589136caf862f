// Package sheetselector picks the worksheet most likely to hold the financial
// data of a workbook, skipping cover pages, instructions and notes.
package sheetselector

import (
	"strings"

	"fjacquet/fin-ingest/internal/currencyutils"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parsererror"
)

const (
	scanRows = 10

	headerRowPoints  = 10
	numericRowPoints = 5
	accountRowPoints = 2
	accountRowCap    = 20
	helpSheetPenalty = 15

	// MinScore is the lowest score a sheet may have to be selected.
	MinScore = 5
)

var (
	headerTokens    = []string{"account", "debit", "credit", "amount", "balance", "category"}
	helpSheetTokens = []string{"tip", "instruction", "help"}
)

// SheetScore is the result of scoring one sheet.
type SheetScore struct {
	Index int
	Name  string
	Score int
}

// Selector scores and selects sheets.
type Selector struct {
	logger logging.Logger
}

// New creates a Selector.
func New(logger logging.Logger) *Selector {
	return &Selector{logger: logging.OrDefault(logger)}
}

// Score computes the financial-data score of a sheet from its first ten rows.
func Score(sheet models.Sheet) int {
	score := 0
	accountPoints := 0

	limit := len(sheet.Rows)
	if limit > scanRows {
		limit = scanRows
	}
	for _, row := range sheet.Rows[:limit] {
		text := models.RowText(row)
		if containsAny(text, headerTokens) {
			score += headerRowPoints
		}
		if hasNumericCell(row) {
			score += numericRowPoints
		}
		if isAccountLine(row) {
			accountPoints += accountRowPoints
		}
	}

	if accountPoints > accountRowCap {
		accountPoints = accountRowCap
	}
	score += accountPoints

	if containsAny(strings.ToLower(sheet.Name), helpSheetTokens) {
		score -= helpSheetPenalty
	}
	return score
}

// ScoreAll scores every sheet, in workbook order.
func ScoreAll(sheets []models.Sheet) []SheetScore {
	scores := make([]SheetScore, len(sheets))
	for i, sheet := range sheets {
		scores[i] = SheetScore{Index: i, Name: sheet.Name, Score: Score(sheet)}
	}
	return scores
}

// Select returns the index of the highest-scoring sheet. Ties go to the
// earlier sheet. A best score below MinScore, or no sheets at all, is a
// SheetSelectionError.
func (s *Selector) Select(sheets []models.Sheet) (int, error) {
	scores := ScoreAll(sheets)
	if len(scores) == 0 {
		return -1, &parsererror.SheetSelectionError{}
	}

	best := scores[0]
	for _, sc := range scores {
		s.logger.Debug("Sheet scored",
			logging.F(logging.FieldSheet, sc.Name),
			logging.F(logging.FieldScore, sc.Score))
		if sc.Score > best.Score {
			best = sc
		}
	}

	if best.Score < MinScore {
		s.logger.Warn("No sheet looks like financial data",
			logging.F(logging.FieldSheet, best.Name),
			logging.F(logging.FieldScore, best.Score))
		return -1, &parsererror.SheetSelectionError{BestSheet: best.Name, BestScore: best.Score}
	}

	s.logger.Info("Selected sheet",
		logging.F(logging.FieldSheet, best.Name),
		logging.F(logging.FieldScore, best.Score))
	return best.Index, nil
}

func hasNumericCell(row []models.Cell) bool {
	for _, c := range row {
		if currencyutils.IsNumericLike(c) {
			return true
		}
	}
	return false
}

// isAccountLine: a label in the first column plus at least one other non-zero
// figure.
func isAccountLine(row []models.Cell) bool {
	if len(row) == 0 || row[0].Kind != models.CellString {
		return false
	}
	for _, c := range row[1:] {
		if currencyutils.IsNonZeroNumber(c) {
			return true
		}
	}
	return false
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}

package layout

import (
	"strings"
	"unicode"

	"fjacquet/fin-ingest/internal/models"
	"fjacquet/fin-ingest/internal/parsererror"
)

// NotFound marks an unmapped column.
const NotFound = -1

const recoveryScanRows = 4

// Middle dot used by accounting exports to join parent and child account
// names, e.g. "Bank · RBC Chequing".
const middleDot = "·"

var (
	accountHeaderTokens = []string{"account", "name", "description"}
	accountLabelHints   = []string{
		"chequing", "checking", "savings",
		"account", "income", "expense", "bank",
	}
	// Bank names are short, so they only count as whole words: "TD" matches,
	// "Ltd" does not.
	bankNameHints = map[string]bool{
		"rbc": true, "td": true, "bmo": true, "cibc": true, "scotia": true,
	}
)

// Columns holds the resolved column indices, NotFound when absent.
type Columns struct {
	Account  int
	Amount   int
	Category int
	Debit    int
	Credit   int
	// Period is optional and never validated.
	Period int
}

// Mapping is the outcome of MapColumns.
type Mapping struct {
	Kind      Kind
	HeaderRow int
	Columns   Columns
	// Recovered is true when the account column was found from data rows
	// rather than the header.
	Recovered bool
}

// Header returns the header row rendered as strings.
func Header(sheet models.Sheet, headerRow int) []string {
	if headerRow < 0 || headerRow >= len(sheet.Rows) {
		return nil
	}
	row := sheet.Rows[headerRow]
	header := make([]string, len(row))
	for i, c := range row {
		header[i] = c.String()
	}
	return header
}

// MapColumns resolves column indices from the header row of a detected layout.
// An Unknown layout becomes DebitCredit when both debit and credit columns
// exist, otherwise AmountCategory.
func MapColumns(sheet models.Sheet, l Layout) (Mapping, error) {
	header := Header(sheet, l.HeaderRow)
	tokens := make([]string, len(header))
	for i, h := range header {
		tokens[i] = strings.ToLower(strings.TrimSpace(h))
	}

	cols := Columns{
		Account: firstContaining(tokens, accountHeaderTokens, NotFound),
		Amount:  firstContaining(tokens, []string{"amount"}, NotFound),
		Debit:   firstEqual(tokens, "debit"),
		Credit:  firstEqual(tokens, "credit"),
	}
	cols.Category = firstContaining(tokens, []string{"category"}, cols.Account)
	cols.Period = firstContaining(tokens, []string{"period"}, cols.Account)

	kind := l.Kind
	if kind == Unknown {
		if cols.Debit != NotFound && cols.Credit != NotFound {
			kind = DebitCredit
		} else {
			kind = AmountCategory
		}
	}

	m := Mapping{Kind: kind, HeaderRow: l.HeaderRow, Columns: cols}

	if m.Columns.Account == NotFound && kind == DebitCredit {
		if col := recoverAccountColumn(sheet, l.HeaderRow); col != NotFound {
			m.Columns.Account = col
			m.Recovered = true
		}
	}

	if err := validate(m, sheet.Name, header); err != nil {
		return m, err
	}
	return m, nil
}

func validate(m Mapping, sheetName string, header []string) error {
	missing := func(column error) error {
		return &parsererror.ColumnMappingError{Sheet: sheetName, Column: column, Header: header}
	}

	if m.Columns.Account == NotFound {
		return missing(parsererror.ErrMissingAccountColumn)
	}
	switch m.Kind {
	case DebitCredit:
		if m.Columns.Debit == NotFound {
			return missing(parsererror.ErrMissingDebitColumn)
		}
		if m.Columns.Credit == NotFound {
			return missing(parsererror.ErrMissingCreditColumn)
		}
	default:
		if m.Columns.Amount == NotFound {
			return missing(parsererror.ErrMissingAmountColumn)
		}
	}
	return nil
}

// recoverAccountColumn looks below the header for a cell such as
// "Bank · RBC Chequing" and returns its column.
func recoverAccountColumn(sheet models.Sheet, headerRow int) int {
	for r := headerRow + 1; r <= headerRow+recoveryScanRows && r < len(sheet.Rows); r++ {
		for c, cell := range sheet.Rows[r] {
			if cell.Kind != models.CellString || !strings.Contains(cell.Text, middleDot) {
				continue
			}
			if looksLikeAccountLabel(cell.Text) {
				return c
			}
		}
	}
	return NotFound
}

func looksLikeAccountLabel(text string) bool {
	lower := strings.ToLower(text)
	for _, hint := range accountLabelHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if bankNameHints[w] {
			return true
		}
	}
	return false
}

// firstContaining returns the leftmost index whose token contains any needle,
// skipping the excluded index.
func firstContaining(tokens, needles []string, exclude int) int {
	for i, token := range tokens {
		if i == exclude || token == "" {
			continue
		}
		for _, needle := range needles {
			if strings.Contains(token, needle) {
				return i
			}
		}
	}
	return NotFound
}

func firstEqual(tokens []string, want string) int {
	for i, token := range tokens {
		if token == want {
			return i
		}
	}
	return NotFound
}

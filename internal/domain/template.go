package domain

// Template maps a statement file's column names onto canonical
// transaction fields. Templates are configuration data: loaded once and
// read-only for the duration of an import run.
//
// Either AmountColumn or the Deposit/Withdrawal pair must be set; the
// remaining fields are optional.
type Template struct {
	ID                string
	Name              string
	DateColumn        string
	DescriptionColumn string
	AmountColumn      string
	DepositColumn     string
	WithdrawalColumn  string
	TypeColumn        string
	BalanceColumn     string
}

// RequiredColumns returns the source columns that must all be present in
// a header row for the template to match: date, description, and at
// least one amount-bearing column.
func (t *Template) RequiredColumns() []string {
	cols := []string{t.DateColumn, t.DescriptionColumn}
	switch {
	case t.AmountColumn != "":
		cols = append(cols, t.AmountColumn)
	case t.DepositColumn != "":
		cols = append(cols, t.DepositColumn)
	case t.WithdrawalColumn != "":
		cols = append(cols, t.WithdrawalColumn)
	}
	return cols
}

// MatchesHeader reports whether every required column is present in the
// header set. Matching is exact-string; there is no fuzzy column
// matching and no confidence score at this stage.
func (t *Template) MatchesHeader(header []string) bool {
	if t.DateColumn == "" || t.DescriptionColumn == "" {
		return false
	}
	if t.AmountColumn == "" && t.DepositColumn == "" && t.WithdrawalColumn == "" {
		return false
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, col := range t.RequiredColumns() {
		if !present[col] {
			return false
		}
	}
	return true
}

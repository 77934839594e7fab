package usecase

const (
	// DefaultListLimit caps listings when the caller gives no limit.
	DefaultListLimit = 20
	// MaxListLimit is the hard pagination ceiling.
	MaxListLimit = 100

	// DefaultImportMaxRows protects against unbounded memory use from
	// oversized uploads.
	DefaultImportMaxRows = 10000

	// DefaultPaymentTermDays is the assumed term from transaction date
	// to expected payment date.
	DefaultPaymentTermDays = 30
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/classify"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/domain"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/infrastructure/metrics"
	"github.com/knishioka/simple-bookkeeping-sub007/internal/statement"
)

// ImportUseCase runs the statement ingestion pipeline:
// decode -> template match -> normalize -> classify -> duplicate detect
// for previews, and posts human-confirmed rows as balanced journal
// entries on commit.
type ImportUseCase struct {
	accountRepo  AccountRepository
	ruleRepo     RuleRepository
	templateRepo TemplateRepository
	journalRepo  JournalRepository
	txManager    TransactionManager
	classifier   *classify.Classifier
	detector     *classify.DuplicateDetector
	idGen        IDGenerator
	retrier      Retrier
	metrics      *metrics.Metrics
	logger       zerolog.Logger
	maxRows      int
}

// NewImportUseCase creates a new ImportUseCase.
func NewImportUseCase(
	accountRepo AccountRepository,
	ruleRepo RuleRepository,
	templateRepo TemplateRepository,
	journalRepo JournalRepository,
	txManager TransactionManager,
	classifier *classify.Classifier,
	detector *classify.DuplicateDetector,
	idGen IDGenerator,
	retrier Retrier,
	m *metrics.Metrics,
	logger zerolog.Logger,
	maxRows int,
) *ImportUseCase {
	if maxRows <= 0 {
		maxRows = DefaultImportMaxRows
	}
	return &ImportUseCase{
		accountRepo:  accountRepo,
		ruleRepo:     ruleRepo,
		templateRepo: templateRepo,
		journalRepo:  journalRepo,
		txManager:    txManager,
		classifier:   classifier,
		detector:     detector,
		idGen:        idGen,
		retrier:      retrier,
		metrics:      m,
		logger:       logger,
		maxRows:      maxRows,
	}
}

// ImportInput is one uploaded statement plus its decode configuration.
type ImportInput struct {
	Data       []byte
	Encoding   string
	Delimiter  string
	HasHeader  bool
	SkipRows   int
	MaxRows    int
	DateFormat string
}

// PreviewRow is one normalized transaction with its suggestion and
// duplicate flag, ready for human confirmation.
type PreviewRow struct {
	Transaction *domain.NormalizedTransaction
	Suggestion  *domain.AccountSuggestion
	Duplicate   bool
	Unmapped    bool
}

// ImportPreview is the full result of one preview pass.
type ImportPreview struct {
	Rows              []PreviewRow
	Failures          []statement.RowError
	TemplateName      string
	Encoding          statement.Encoding
	EncodingAmbiguous bool
	Truncated         bool
}

// Preview decodes, normalizes and classifies an uploaded statement.
// Row-level failures are reported per row; only a decode failure aborts.
func (uc *ImportUseCase) Preview(ctx context.Context, input ImportInput) (*ImportPreview, error) {
	start := time.Now()

	enc, err := statement.ParseEncoding(input.Encoding)
	if err != nil {
		return nil, err
	}

	opts := statement.DecodeOptions{
		Encoding:  enc,
		Delimiter: delimiterRune(input.Delimiter),
		HasHeader: input.HasHeader,
		SkipRows:  input.SkipRows,
		MaxRows:   uc.clampRows(input.MaxRows),
	}

	decoded, candidates, err := uc.decodeCandidates(input.Data, opts)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.DecodeFailures.WithLabelValues(string(enc)).Inc()
		}
		return nil, err
	}

	templates, err := uc.templateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	match := statement.MatchTemplate(candidates, templates)

	chosen := decoded[opts.Encoding]
	var tpl *domain.Template
	ambiguous := false
	if match != nil {
		tpl = match.Template
		ambiguous = match.Ambiguous
		if d, ok := decoded[match.Encoding]; ok {
			chosen = d
		}
	}

	normalizer := &statement.Normalizer{Template: tpl, DateFormat: input.DateFormat}
	rows := statement.RowsFromDecoded(chosen)
	transactions, failures := normalizer.NormalizeAll(ctx, rows)

	suggestions, err := uc.classifyAll(ctx, transactions)
	if err != nil {
		return nil, err
	}

	duplicates, err := uc.flagDuplicates(ctx, transactions)
	if err != nil {
		return nil, err
	}

	preview := &ImportPreview{
		Rows:              make([]PreviewRow, len(transactions)),
		Failures:          failures,
		Encoding:          chosen.Encoding,
		EncodingAmbiguous: ambiguous,
		Truncated:         chosen.Truncated,
	}
	if tpl != nil {
		preview.TemplateName = tpl.Name
	}
	for i, tx := range transactions {
		preview.Rows[i] = PreviewRow{
			Transaction: tx,
			Suggestion:  suggestions[i],
			Duplicate:   duplicates[i],
			Unmapped:    suggestions[i] == nil,
		}
	}

	uc.recordPreview(preview, len(rows), time.Since(start))

	uc.logger.Info().
		Int("rows", len(transactions)).
		Int("failures", len(failures)).
		Str("encoding", string(preview.Encoding)).
		Bool("ambiguous", ambiguous).
		Str("template", preview.TemplateName).
		Msg("import preview built")

	return preview, nil
}

func (uc *ImportUseCase) recordPreview(preview *ImportPreview, decodedRows int, elapsed time.Duration) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.RowsDecoded.Add(float64(decodedRows))
	uc.metrics.RowsNormalized.Add(float64(len(preview.Rows)))
	for _, failure := range preview.Failures {
		uc.metrics.RowFailures.WithLabelValues(failure.Field).Inc()
	}
	for _, row := range preview.Rows {
		if row.Suggestion != nil {
			uc.metrics.Classifications.WithLabelValues(suggestionOrigin(row.Suggestion)).Inc()
		}
		if row.Duplicate {
			uc.metrics.DuplicatesFlagged.Inc()
		}
	}
	if preview.EncodingAmbiguous {
		uc.metrics.EncodingAmbiguous.Inc()
	}
	uc.metrics.ImportDuration.Observe(elapsed.Seconds())
}

// suggestionOrigin strips the per-match detail from an origin label so
// metric cardinality stays bounded ("keyword:電気" -> "keyword").
func suggestionOrigin(s *domain.AccountSuggestion) string {
	for i := 0; i < len(s.Origin); i++ {
		if s.Origin[i] == ':' {
			return s.Origin[:i]
		}
	}
	return s.Origin
}

// decodeCandidates decodes under the declared encoding and, when the
// declared encoding is UTF-8 or Shift_JIS, under the other one as well.
// The template matcher decides between the two; the disagreement is
// flagged rather than silently resolved. Only the declared encoding is
// allowed to fail the whole upload.
func (uc *ImportUseCase) decodeCandidates(data []byte, opts statement.DecodeOptions) (map[statement.Encoding]*statement.Decoded, []statement.HeaderCandidate, error) {
	decoded := make(map[statement.Encoding]*statement.Decoded, 2)

	primary, err := statement.Decode(data, opts)
	if err != nil {
		return nil, nil, err
	}
	decoded[opts.Encoding] = primary
	candidates := []statement.HeaderCandidate{{Encoding: opts.Encoding, Header: primary.Header}}

	var alternate statement.Encoding
	switch opts.Encoding {
	case statement.EncodingUTF8:
		alternate = statement.EncodingShiftJIS
	case statement.EncodingShiftJIS:
		alternate = statement.EncodingUTF8
	default:
		return decoded, candidates, nil
	}

	altOpts := opts
	altOpts.Encoding = alternate
	if alt, err := statement.Decode(data, altOpts); err == nil {
		decoded[alternate] = alt
		candidates = append(candidates, statement.HeaderCandidate{Encoding: alternate, Header: alt.Header})
	}

	return decoded, candidates, nil
}

// classifyAll runs the classifier per row in parallel so a pending AI
// call never serializes the rest of the batch. Output order follows
// input order.
func (uc *ImportUseCase) classifyAll(ctx context.Context, transactions []*domain.NormalizedTransaction) ([]*domain.AccountSuggestion, error) {
	rules, err := uc.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	accounts, err := uc.accountRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load chart of accounts: %w", err)
	}
	env := classify.NewEnv(rules, accounts)

	suggestions := make([]*domain.AccountSuggestion, len(transactions))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, tx := range transactions {
		g.Go(func() error {
			suggestions[i] = uc.classifier.Classify(ctx, tx, env)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// flagDuplicates checks candidates against committed entries in the
// overlapping date range.
func (uc *ImportUseCase) flagDuplicates(ctx context.Context, transactions []*domain.NormalizedTransaction) ([]bool, error) {
	if len(transactions) == 0 {
		return nil, nil
	}

	from, to := transactions[0].Date, transactions[0].Date
	for _, tx := range transactions[1:] {
		if tx.Date.Before(from) {
			from = tx.Date
		}
		if tx.Date.After(to) {
			to = tx.Date
		}
	}

	posted, err := uc.journalRepo.ListByDateRange(ctx, from, to, []domain.EntryStatus{domain.StatusApproved})
	if err != nil {
		return nil, fmt.Errorf("load posted entries: %w", err)
	}

	return uc.detector.FindDuplicates(transactions, posted), nil
}

// CommitRow is one human-confirmed row ready to post.
type CommitRow struct {
	Date            time.Time
	Description     string
	DebitAccountID  string
	CreditAccountID string
	Amount          decimal.Decimal
}

// CommitResult reports the outcome per row: either a posted entry ID or
// a validation failure. Failures block only the row's entry, never the
// whole session.
type CommitResult struct {
	EntryIDs []string
	Failures []CommitFailure
}

// CommitFailure is one rejected row.
type CommitFailure struct {
	RowIndex int
	Reason   string
}

// Commit posts confirmed rows as approved journal entries. Each entry
// commits atomically: the whole balanced entry with all its lines, or
// none of it.
func (uc *ImportUseCase) Commit(ctx context.Context, rows []CommitRow) (*CommitResult, error) {
	result := &CommitResult{}

	for i, row := range rows {
		id, err := uc.commitRow(ctx, row)
		if err != nil {
			result.Failures = append(result.Failures, CommitFailure{RowIndex: i, Reason: err.Error()})
			if uc.metrics != nil {
				uc.metrics.EntriesRejected.WithLabelValues("validation").Inc()
			}
			continue
		}
		result.EntryIDs = append(result.EntryIDs, id)
		if uc.metrics != nil {
			uc.metrics.EntriesPosted.WithLabelValues(string(domain.StatusApproved)).Inc()
			amount, _ := row.Amount.Float64()
			uc.metrics.PostedAmount.Observe(amount)
		}
	}

	uc.logger.Info().
		Int("posted", len(result.EntryIDs)).
		Int("rejected", len(result.Failures)).
		Msg("import commit finished")

	return result, nil
}

func (uc *ImportUseCase) commitRow(ctx context.Context, row CommitRow) (string, error) {
	if !row.Amount.IsPositive() {
		return "", fmt.Errorf("amount must be positive")
	}

	lines := []domain.JournalLine{
		{AccountID: row.DebitAccountID, Debit: row.Amount, LineNumber: 1, Description: row.Description},
		{AccountID: row.CreditAccountID, Credit: row.Amount, LineNumber: 2, Description: row.Description},
	}
	entry, err := domain.NewJournalEntry(uc.idGen.Generate(), row.Date, row.Description, lines)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	if err := entry.Approve(now); err != nil {
		return "", err
	}

	persist := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		if err := uc.journalRepo.Create(ctx, tx, entry); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, persist)
	} else {
		err = persist()
	}
	if err != nil {
		return "", err
	}
	return entry.ID, nil
}

func (uc *ImportUseCase) clampRows(requested int) int {
	if requested <= 0 || requested > uc.maxRows {
		return uc.maxRows
	}
	return requested
}

func delimiterRune(s string) rune {
	switch s {
	case "", ",":
		return ','
	case "\t", "tab":
		return '\t'
	case ";":
		return ';'
	default:
		return []rune(s)[0]
	}
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Import pipeline metrics
	RowsDecoded       prometheus.Counter
	RowsNormalized    prometheus.Counter
	RowFailures       *prometheus.CounterVec
	Classifications   *prometheus.CounterVec
	DuplicatesFlagged prometheus.Counter
	ImportDuration    prometheus.Histogram
	DecodeFailures    *prometheus.CounterVec
	EncodingAmbiguous prometheus.Counter

	// Journal metrics
	EntriesPosted   *prometheus.CounterVec
	EntriesRejected *prometheus.CounterVec
	PostedAmount    prometheus.Histogram

	// Ledger metrics
	LedgerQueries  *prometheus.CounterVec
	LedgerDuration prometheus.Histogram
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		RowsDecoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeping_rows_decoded_total",
			Help: "Total number of statement rows decoded",
		}),
		RowsNormalized: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeping_rows_normalized_total",
			Help: "Total number of rows normalized into transactions",
		}),
		RowFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeping_row_failures_total",
			Help: "Total number of rows dropped during normalization",
		}, []string{"field"}),
		Classifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeping_classifications_total",
			Help: "Total number of classification results by origin",
		}, []string{"origin"}),
		DuplicatesFlagged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeping_duplicates_flagged_total",
			Help: "Total number of candidate rows flagged as duplicates",
		}),
		ImportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookkeeping_import_duration_seconds",
			Help:    "Duration of import preview runs",
			Buckets: prometheus.DefBuckets,
		}),
		DecodeFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeping_decode_failures_total",
			Help: "Total number of rejected uploads by encoding",
		}, []string{"encoding"}),
		EncodingAmbiguous: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bookkeeping_encoding_ambiguous_total",
			Help: "Total number of uploads where candidate encodings disagreed",
		}),
		EntriesPosted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeping_entries_posted_total",
			Help: "Total number of journal entries persisted by status",
		}, []string{"status"}),
		EntriesRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeping_entries_rejected_total",
			Help: "Total number of journal entries rejected by reason",
		}, []string{"reason"}),
		PostedAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookkeeping_posted_amount",
			Help:    "Distribution of posted entry amounts",
			Buckets: prometheus.ExponentialBuckets(100, 10, 7),
		}),
		LedgerQueries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookkeeping_ledger_queries_total",
			Help: "Total number of ledger aggregation queries by kind",
		}, []string{"kind"}),
		LedgerDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bookkeeping_ledger_duration_seconds",
			Help:    "Duration of ledger aggregation queries",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/knishioka/simple-bookkeeping-sub007/internal/usecase"
)

// IdempotencyKeyHeader carries the client-chosen key for replay-safe
// requests. Import commits always send one so a resubmitted batch does
// not post its journal entries twice.
const IdempotencyKeyHeader = "Idempotency-Key"

const (
	idempotencyTTL   = 24 * time.Hour
	processingMarker = "processing"
)

// IdempotencyMiddleware replays the stored response for a repeated
// mutating request instead of re-executing it.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store}
}

// Wrap applies idempotency checking to POST and PUT requests that carry
// a key. Reads and keyless requests pass through untouched.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" {
			next.ServeHTTP(w, r)
			return
		}

		exists, stored, err := m.store.CheckAndSet(r.Context(), key, nil, idempotencyTTL)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		// A completed request under this key answers from the store.
		// The placeholder marker means an earlier attempt never
		// finished, so the request runs again.
		if exists && stored != nil && string(stored) != processingMarker {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Idempotency-Replay", "true")
			w.Write(stored)
			return
		}

		rec := &replayRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			status:         http.StatusOK,
		}
		next.ServeHTTP(rec, r)

		// Only a successful outcome becomes the canonical response.
		// A failed commit stays retryable under the same key.
		if rec.status >= 200 && rec.status < 300 {
			m.store.Update(r.Context(), key, rec.body.Bytes(), idempotencyTTL)
		}
	})
}

// replayRecorder keeps a copy of the response body so a later request
// with the same key can be answered without re-running the handler.
type replayRecorder struct {
	http.ResponseWriter
	status int
	body   *bytes.Buffer
}

func (r *replayRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *replayRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

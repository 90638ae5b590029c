// Package daemon serves amortization schedules over HTTP.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/theirongolddev/amort/internal/config"
	"github.com/theirongolddev/amort/internal/currency"
	"github.com/theirongolddev/amort/internal/schedule"

	"github.com/go-chi/chi/v5"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Addr         string
	EventsBuffer int

	// Loan fills in terms a request leaves out.
	Loan      config.LoanConfig
	StopBelow currency.Currency
	MaxMonths int
}

// Terms are the inputs of one schedule request.
type Terms struct {
	Principal currency.Currency `json:"principal"`
	Rate      float64           `json:"interest_rate"`
	Payment   currency.Currency `json:"payment"`
	Start     string            `json:"start"`
	StopBelow currency.Currency `json:"stop_below"`
	Months    int               `json:"months"`
}

// Entry is one month of a schedule as served over the API.
type Entry struct {
	Month               string            `json:"month"`
	Amount              currency.Currency `json:"amount"`
	InterestAccumulated currency.Currency `json:"interest_accumulated"`
	InterestRate        float64           `json:"interest_rate"`
	Payment             currency.Currency `json:"payment"`
}

// Summary is the API form of schedule.Summary.
type Summary struct {
	Months        int               `json:"months"`
	FirstMonth    string            `json:"first_month,omitempty"`
	LastMonth     string            `json:"last_month,omitempty"`
	Principal     currency.Currency `json:"principal"`
	TotalPaid     currency.Currency `json:"total_paid"`
	TotalInterest currency.Currency `json:"total_interest"`
	FinalPayment  currency.Currency `json:"final_payment"`
	PaidOff       bool              `json:"paid_off"`
}

// Schedule is served at /v1/schedule.
type Schedule struct {
	Terms   Terms   `json:"terms"`
	Summary Summary `json:"summary"`
	Entries []Entry `json:"entries"`
}

// Event records one computed schedule.
type Event struct {
	ID        int64     `json:"id"`
	RequestID string    `json:"request_id,omitempty"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Terms     Terms     `json:"terms"`
	Summary   Summary   `json:"summary"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt     time.Time `json:"started_at"`
	LastRequestAt time.Time `json:"last_request_at"`
	RequestCount  int64     `json:"request_count"`
	LastError     string    `json:"last_error,omitempty"`
	EventCount    int       `json:"event_count"`
}

// ErrNoPayoff is reported when a request would produce an endless schedule.
var ErrNoPayoff = errors.New("payment never pays the loan off; pass months to bound the schedule")

const dateLayout = "2006-01-02"

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	now func() time.Time

	mu            sync.RWMutex
	startedAt     time.Time
	lastRequestAt time.Time
	requestCount  int64
	lastError     string
	nextEventID   int64
	events        []Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}

	return &Service{
		cfg:       cfg,
		now:       time.Now,
		startedAt: time.Now(),
	}
}

// Handler returns the HTTP routes of the service.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogging(slog.Default()))

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/status", s.handleStatus)
	r.Get("/v1/events", s.handleEvents)
	r.Get("/v1/schedule", s.handleSchedule)
	r.Get("/v1/stream", s.handleStream)
	return r
}

// Run serves HTTP until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	slog.Info("serving schedules", "addr", s.cfg.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("daemon http server: %w", err)
	}
}

// parseTerms reads schedule terms from query parameters, falling back to the configured loan.
func (s *Service) parseTerms(q url.Values) (Terms, error) {
	terms := Terms{
		StopBelow: s.cfg.StopBelow,
		Months:    s.cfg.MaxMonths,
		Start:     s.now().Format(dateLayout),
	}

	var err error
	if terms.Principal, err = amountParam(q, "current", s.cfg.Loan.Principal); err != nil {
		return terms, err
	}
	if terms.Payment, err = amountParam(q, "payment", s.cfg.Loan.Payment); err != nil {
		return terms, err
	}

	switch v := q.Get("interest"); {
	case v != "":
		if terms.Rate, err = currency.ParseRate(v); err != nil {
			return terms, err
		}
	case s.cfg.Loan.InterestRate != nil:
		terms.Rate = *s.cfg.Loan.InterestRate
		if err := currency.CheckRate(terms.Rate); err != nil {
			return terms, err
		}
	default:
		return terms, errors.New("missing interest")
	}

	if v := q.Get("start"); v != "" {
		if _, err := time.Parse(dateLayout, v); err != nil {
			return terms, fmt.Errorf("invalid start %q", v)
		}
		terms.Start = v
	}
	if v := q.Get("stop_below"); v != "" {
		if terms.StopBelow, err = currency.Parse(v); err != nil {
			return terms, err
		}
	}
	if v := q.Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > schedule.MaxMonths {
			return terms, fmt.Errorf("invalid months %q: want 0 to %d", v, schedule.MaxMonths)
		}
		terms.Months = n
	}

	if terms.Months <= 0 && !schedule.Converges(terms.Principal, terms.Rate, terms.Payment) {
		return terms, ErrNoPayoff
	}
	return terms, nil
}

func amountParam(q url.Values, name string, fallback *currency.Currency) (currency.Currency, error) {
	if v := q.Get(name); v != "" {
		return currency.Parse(v)
	}
	if fallback != nil {
		return *fallback, nil
	}
	return currency.Zero, fmt.Errorf("missing %s", name)
}

// entries returns the lazy schedule for terms, bounded by the stop-below
// floor and by Months, or schedule.MaxMonths when Months is zero. Check the
// returned sequence's Err once the iterator is drained.
func (t Terms) entries() (*schedule.Sequence, iter.Seq[schedule.Entry]) {
	start, _ := time.Parse(dateLayout, t.Start)
	months := t.Months
	if months <= 0 {
		months = schedule.MaxMonths
	}
	seq := schedule.GenerateAt(start, t.Principal, t.Rate, t.Payment)
	return seq, schedule.Limit(schedule.TakeWhile(seq.All(), schedule.Above(t.StopBelow)), months)
}

func toEntry(e schedule.Entry) Entry {
	return Entry{
		Month:               e.Month.Format(dateLayout),
		Amount:              e.Amount,
		InterestAccumulated: e.InterestAccumulated,
		InterestRate:        e.InterestRate,
		Payment:             e.Payment,
	}
}

func toSummary(s schedule.Summary) Summary {
	out := Summary{
		Months:        s.Months,
		Principal:     s.Principal,
		TotalPaid:     s.TotalPaid,
		TotalInterest: s.TotalInterest,
		FinalPayment:  s.FinalPayment,
		PaidOff:       s.PaidOff,
	}
	if s.Months > 0 {
		out.FirstMonth = s.FirstMonth.Format(dateLayout)
		out.LastMonth = s.LastMonth.Format(dateLayout)
	}
	return out
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleSchedule(w http.ResponseWriter, r *http.Request) {
	terms, ok := s.begin(w, r)
	if !ok {
		return
	}

	var raw []schedule.Entry
	out := Schedule{Terms: terms, Entries: []Entry{}}
	seq, entries := terms.entries()
	for e := range entries {
		raw = append(raw, e)
		out.Entries = append(out.Entries, toEntry(e))
	}
	if err := seq.Err(); err != nil {
		s.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	out.Summary = toSummary(schedule.Summarize(raw))

	s.publishEvent(Event{RequestID: requestIDFrom(r.Context()), Type: "schedule", Terms: terms, Summary: out.Summary})
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	terms, ok := s.begin(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var raw []schedule.Entry
	seq, entries := terms.entries()
	for e := range entries {
		if r.Context().Err() != nil {
			slog.Debug("stream client went away", "months", len(raw))
			return
		}
		raw = append(raw, e)
		writeSSE(w, "entry", toEntry(e))
		flusher.Flush()
	}

	if err := seq.Err(); err != nil {
		s.recordError(err)
		writeSSE(w, "error", map[string]string{"error": err.Error()})
		flusher.Flush()
		return
	}

	summary := toSummary(schedule.Summarize(raw))
	writeSSE(w, "summary", summary)
	flusher.Flush()
	s.publishEvent(Event{RequestID: requestIDFrom(r.Context()), Type: "stream", Terms: terms, Summary: summary})
}

// begin counts the request and parses its terms, answering with an error when they are unusable.
func (s *Service) begin(w http.ResponseWriter, r *http.Request) (Terms, bool) {
	s.mu.Lock()
	s.requestCount++
	s.lastRequestAt = s.now()
	s.mu.Unlock()

	terms, err := s.parseTerms(r.URL.Query())
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrNoPayoff) {
			status = http.StatusUnprocessableEntity
		}
		s.fail(w, r, status, err)
		return terms, false
	}
	return terms, true
}

// fail records err and answers with it as JSON.
func (s *Service) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.recordError(err)
	slog.Debug("rejected schedule request", "query", r.URL.RawQuery, "status", status, "err", err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Service) recordError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSSE(w http.ResponseWriter, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", event)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEventID++
	ev.ID = s.nextEventID
	if ev.Timestamp.IsZero() {
		ev.Timestamp = s.now()
	}

	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:     s.startedAt,
		LastRequestAt: s.lastRequestAt,
		RequestCount:  s.requestCount,
		LastError:     s.lastError,
		EventCount:    len(s.events),
	}
}

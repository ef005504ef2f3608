package results

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Adedunmol/pulso/survey"
)

const DefaultPollInterval = 5 * time.Second

var ErrRefreshInFlight = errors.New("refresh already in flight")

// Source is where a session reads surveys and their responses from.
// FetchResponses returns an empty slice, never nil, when nothing was submitted.
type Source interface {
	FetchSurvey(ctx context.Context, surveyID string) (survey.Survey, error)
	FetchResponses(ctx context.Context, surveyID string) ([]survey.Response, error)
}

type State int

const (
	Idle State = iota
	Loading
	Ready
	Errored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "errored"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is a copy of a session's state at one point in time.
type Snapshot struct {
	State     State             `json:"state"`
	Survey    *survey.Survey    `json:"survey,omitempty"`
	Responses []survey.Response `json:"responses"`
	Results   []QuestionResult  `json:"results"`
	Summary   Summary           `json:"summary"`
	Error     string            `json:"error,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type Option func(*Session)

func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Session owns one view of a survey's results. It is the only writer of its
// results; Load is strict about failures while Refresh keeps the last good
// snapshot. Close must be called when the view goes away.
type Session struct {
	source   Source
	notifier Notifier
	now      func() time.Time

	mu          sync.Mutex
	state       State
	survey      *survey.Survey
	responses   []survey.Response
	results     []QuestionResult
	errMsg      string
	updatedAt   time.Time
	generation  uint64
	subscribers map[chan Snapshot]struct{}

	refreshing atomic.Bool

	pollMu   sync.Mutex
	stopPoll context.CancelFunc
	pollDone chan struct{}
}

func NewSession(source Source, opts ...Option) *Session {
	s := &Session{
		source:      source,
		notifier:    discardNotifier{},
		now:         time.Now,
		subscribers: make(map[chan Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the survey, then its responses, and recomputes every result.
// On failure the session moves to Errored with nothing partially populated.
func (s *Session) Load(ctx context.Context, surveyID string) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.state = Loading
	s.errMsg = ""
	s.mu.Unlock()

	sv, responses, computed, err := s.compute(ctx, surveyID)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return err
	}

	if err != nil {
		msg := ErrorMessage(err)
		s.state = Errored
		s.errMsg = msg
		s.survey = nil
		s.responses = nil
		s.results = nil
		s.mu.Unlock()

		s.notifier.Notify(msg, NoticeError)
		return err
	}

	s.applyLocked(sv, responses, computed)
	s.mu.Unlock()
	return nil
}

// Refresh recomputes the results without touching the loading state. A
// failure is logged and leaves the previous snapshot in place. Calls that
// overlap a running refresh return ErrRefreshInFlight without fetching.
func (s *Session) Refresh(ctx context.Context, surveyID string) error {
	if !s.refreshing.CompareAndSwap(false, true) {
		return ErrRefreshInFlight
	}
	defer s.refreshing.Store(false)

	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	sv, responses, computed, err := s.compute(ctx, surveyID)
	if err != nil {
		log.Printf("error refreshing results for survey %s: %v", surveyID, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return nil
	}
	s.applyLocked(sv, responses, computed)
	return nil
}

// Reset stops polling and returns the session to Idle.
func (s *Session) Reset() {
	s.StopPolling()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.state = Idle
	s.survey = nil
	s.responses = nil
	s.results = nil
	s.errMsg = ""
	s.updatedAt = time.Time{}
}

// Poll refreshes the session every interval until ctx is cancelled or the
// poller is stopped. Starting a new poll replaces the previous one.
func (s *Session) Poll(ctx context.Context, surveyID string, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	s.pollMu.Lock()
	defer s.pollMu.Unlock()
	s.stopPollingLocked()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.stopPoll = cancel
	s.pollDone = done

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Refresh(ctx, surveyID); errors.Is(err, ErrRefreshInFlight) {
					log.Printf("skipping results refresh for survey %s: previous refresh still running", surveyID)
				}
			}
		}
	}()
}

// StopPolling cancels the poller and waits for it to exit.
func (s *Session) StopPolling() {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()
	s.stopPollingLocked()
}

func (s *Session) stopPollingLocked() {
	if s.stopPoll == nil {
		return
	}
	s.stopPoll()
	<-s.pollDone
	s.stopPoll = nil
	s.pollDone = nil
}

// Close stops polling and closes every subscription.
func (s *Session) Close() {
	s.StopPolling()

	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

// Subscribe returns a channel that receives the latest snapshot after every
// successful load or refresh. Slow readers only see the most recent one.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Export writes the CSV document for the loaded survey to sink. It does
// nothing and reports false when no survey is loaded.
func (s *Session) Export(sink Downloader) (bool, error) {
	return s.export(sink, func(snap Snapshot, now time.Time) (Export, error) {
		return ExportCSV(*snap.Survey, snap.Responses, now), nil
	})
}

// ExportReport is Export for the PDF summary.
func (s *Session) ExportReport(sink Downloader) (bool, error) {
	return s.export(sink, func(snap Snapshot, now time.Time) (Export, error) {
		return ExportPDF(*snap.Survey, snap.Results, snap.Summary, now)
	})
}

func (s *Session) export(sink Downloader, render func(Snapshot, time.Time) (Export, error)) (bool, error) {
	snap := s.Snapshot()
	if snap.Survey == nil {
		return false, nil
	}

	doc, err := render(snap, s.now())
	if err != nil {
		return false, err
	}
	if err := sink.Download(doc.Data, doc.Filename, doc.MimeType); err != nil {
		return false, err
	}

	s.notifier.Notify("Resultados exportados exitosamente", NoticeSuccess)
	return true, nil
}

func (s *Session) compute(ctx context.Context, surveyID string) (survey.Survey, []survey.Response, []QuestionResult, error) {
	sv, err := s.source.FetchSurvey(ctx, surveyID)
	if err != nil {
		return survey.Survey{}, nil, nil, err
	}

	responses, err := s.source.FetchResponses(ctx, surveyID)
	if err != nil {
		return survey.Survey{}, nil, nil, err
	}
	if responses == nil {
		responses = []survey.Response{}
	}

	return sv, responses, AggregateSurvey(sv, responses), nil
}

func (s *Session) applyLocked(sv survey.Survey, responses []survey.Response, computed []QuestionResult) {
	s.state = Ready
	s.errMsg = ""
	s.survey = &sv
	s.responses = responses
	s.results = computed
	s.updatedAt = s.now()

	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:     s.state,
		Responses: append([]survey.Response(nil), s.responses...),
		Results:   append([]QuestionResult(nil), s.results...),
		Summary:   Summarize(s.responses),
		Error:     s.errMsg,
		UpdatedAt: s.updatedAt,
	}
	if s.survey != nil {
		sv := *s.survey
		snap.Survey = &sv
	}
	return snap
}

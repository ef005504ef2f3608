package results_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Adedunmol/pulso/results"
	"github.com/Adedunmol/pulso/survey"
)

// ============================================================================
// Stubs
// ============================================================================

type StubSource struct {
	mu sync.Mutex

	Survey    survey.Survey
	Responses []survey.Response

	ShouldFailSurvey    bool
	ShouldFailResponses bool
	FailWith            error

	// Block, when set, holds FetchSurvey until it is closed.
	Block chan struct{}

	SurveyCalls    int
	ResponsesCalls int
}

func (s *StubSource) FetchSurvey(ctx context.Context, surveyID string) (survey.Survey, error) {
	s.mu.Lock()
	s.SurveyCalls++
	block := s.Block
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return survey.Survey{}, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ShouldFailSurvey {
		return survey.Survey{}, s.failure()
	}
	return s.Survey, nil
}

func (s *StubSource) FetchResponses(ctx context.Context, surveyID string) ([]survey.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ResponsesCalls++
	if s.ShouldFailResponses {
		return nil, s.failure()
	}
	return s.Responses, nil
}

func (s *StubSource) failure() error {
	if s.FailWith != nil {
		return s.FailWith
	}
	return errors.New("source unavailable")
}

func (s *StubSource) set(fn func(s *StubSource)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

func (s *StubSource) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.SurveyCalls
}

type StubNotifier struct {
	mu      sync.Mutex
	Notices []string
	Kinds   []results.NoticeKind
}

func (n *StubNotifier) Notify(message string, kind results.NoticeKind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Notices = append(n.Notices, message)
	n.Kinds = append(n.Kinds, kind)
}

type StubDownloader struct {
	ShouldFail bool
	Data       []byte
	Filename   string
	MimeType   string
}

func (d *StubDownloader) Download(data []byte, filename, mimeType string) error {
	if d.ShouldFail {
		return errors.New("disk full")
	}
	d.Data, d.Filename, d.MimeType = data, filename, mimeType
	return nil
}

func sessionFixture() *StubSource {
	return &StubSource{
		Survey: survey.Survey{
			ID:    "s1",
			Title: "Clima laboral",
			Questions: []survey.Question{
				{ID: "q1", Title: "¿Recomendarías la empresa?", Type: "MULTIPLE_CHOICE"},
			},
		},
		Responses: []survey.Response{
			{ID: "r1", Answers: []survey.Answer{{QuestionID: "q1", Value: []string{"Sí"}}}, CompletedAt: time.Now()},
		},
	}
}

func assertState(t *testing.T, got, want results.State) {
	t.Helper()
	if got != want {
		t.Errorf("state = %s, want %s", got, want)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

// ============================================================================
// Tests
// ============================================================================

func TestSessionLoad(t *testing.T) {
	t.Run("success populates results", func(t *testing.T) {
		source := sessionFixture()
		session := results.NewSession(source)
		defer session.Close()

		if err := session.Load(context.Background(), "s1"); err != nil {
			t.Fatalf("Load: %v", err)
		}

		snap := session.Snapshot()
		assertState(t, snap.State, results.Ready)
		if snap.Survey == nil || snap.Survey.ID != "s1" {
			t.Fatalf("survey = %+v", snap.Survey)
		}
		if len(snap.Results) != 1 || snap.Results[0].TotalResponses != 1 {
			t.Errorf("results = %+v", snap.Results)
		}
		if snap.Summary.TotalResponses != 1 {
			t.Errorf("summary = %+v", snap.Summary)
		}
		if snap.Error != "" {
			t.Errorf("error = %q, want none", snap.Error)
		}
	})

	t.Run("survey failure clears everything and notifies", func(t *testing.T) {
		source := sessionFixture()
		notifier := &StubNotifier{}
		session := results.NewSession(source, results.WithNotifier(notifier))
		defer session.Close()

		if err := session.Load(context.Background(), "s1"); err != nil {
			t.Fatalf("first Load: %v", err)
		}

		source.set(func(s *StubSource) {
			s.ShouldFailSurvey = true
			s.FailWith = &results.FetchError{Op: "fetch survey", Status: 500, Message: "base de datos caída"}
		})

		if err := session.Load(context.Background(), "s1"); err == nil {
			t.Fatal("expected an error")
		}

		snap := session.Snapshot()
		assertState(t, snap.State, results.Errored)
		if snap.Survey != nil || len(snap.Results) != 0 || len(snap.Responses) != 0 {
			t.Errorf("stale data kept after failed load: %+v", snap)
		}
		if snap.Error != "base de datos caída" {
			t.Errorf("error = %q", snap.Error)
		}
		if len(notifier.Notices) != 1 || notifier.Kinds[0] != results.NoticeError {
			t.Errorf("notices = %v %v", notifier.Notices, notifier.Kinds)
		}
	})

	t.Run("response failure does not populate survey", func(t *testing.T) {
		source := sessionFixture()
		source.ShouldFailResponses = true
		session := results.NewSession(source)
		defer session.Close()

		if err := session.Load(context.Background(), "s1"); err == nil {
			t.Fatal("expected an error")
		}

		snap := session.Snapshot()
		assertState(t, snap.State, results.Errored)
		if snap.Survey != nil {
			t.Errorf("survey populated after failed load")
		}
	})

	t.Run("empty response set", func(t *testing.T) {
		source := sessionFixture()
		source.Responses = nil
		session := results.NewSession(source)
		defer session.Close()

		if err := session.Load(context.Background(), "s1"); err != nil {
			t.Fatalf("Load: %v", err)
		}

		snap := session.Snapshot()
		if snap.Results[0].TotalResponses != 0 || len(snap.Results[0].Answers) != 0 {
			t.Errorf("results = %+v", snap.Results)
		}
	})
}

func TestSessionRefresh(t *testing.T) {
	t.Run("failure keeps last snapshot", func(t *testing.T) {
		source := sessionFixture()
		notifier := &StubNotifier{}
		session := results.NewSession(source, results.WithNotifier(notifier))
		defer session.Close()

		if err := session.Load(context.Background(), "s1"); err != nil {
			t.Fatalf("Load: %v", err)
		}
		before := session.Snapshot()

		source.set(func(s *StubSource) { s.ShouldFailResponses = true })
		if err := session.Refresh(context.Background(), "s1"); err == nil {
			t.Fatal("expected refresh error")
		}

		after := session.Snapshot()
		assertState(t, after.State, results.Ready)
		if after.Error != "" {
			t.Errorf("error = %q, want none", after.Error)
		}
		if after.Survey == nil || len(after.Results) != len(before.Results) {
			t.Errorf("snapshot changed after failed refresh: %+v", after)
		}
		if len(notifier.Notices) != 0 {
			t.Errorf("refresh failure should not notify: %v", notifier.Notices)
		}
	})

	t.Run("picks up new responses", func(t *testing.T) {
		source := sessionFixture()
		session := results.NewSession(source)
		defer session.Close()

		if err := session.Load(context.Background(), "s1"); err != nil {
			t.Fatalf("Load: %v", err)
		}

		source.set(func(s *StubSource) {
			s.Responses = append(s.Responses, survey.Response{
				ID:      "r2",
				Answers: []survey.Answer{{QuestionID: "q1", Value: []string{"No"}}},
			})
		})
		if err := session.Refresh(context.Background(), "s1"); err != nil {
			t.Fatalf("Refresh: %v", err)
		}

		if got := session.Snapshot().Results[0].TotalResponses; got != 2 {
			t.Errorf("total = %d, want 2", got)
		}
	})

	t.Run("overlapping refresh is skipped", func(t *testing.T) {
		source := sessionFixture()
		session := results.NewSession(source)
		defer session.Close()

		block := make(chan struct{})
		source.set(func(s *StubSource) { s.Block = block })

		done := make(chan error, 1)
		go func() { done <- session.Refresh(context.Background(), "s1") }()
		waitFor(t, func() bool { return source.calls() == 1 })

		if err := session.Refresh(context.Background(), "s1"); !errors.Is(err, results.ErrRefreshInFlight) {
			t.Errorf("second refresh err = %v, want ErrRefreshInFlight", err)
		}

		close(block)
		if err := <-done; err != nil {
			t.Errorf("first refresh: %v", err)
		}
		if got := source.calls(); got != 1 {
			t.Errorf("survey fetched %d times, want 1", got)
		}
	})

	t.Run("completion after reset is discarded", func(t *testing.T) {
		source := sessionFixture()
		session := results.NewSession(source)
		defer session.Close()

		block := make(chan struct{})
		source.set(func(s *StubSource) { s.Block = block })

		done := make(chan error, 1)
		go func() { done <- session.Refresh(context.Background(), "s1") }()
		waitFor(t, func() bool { return source.calls() == 1 })

		session.Reset()
		close(block)
		<-done

		snap := session.Snapshot()
		assertState(t, snap.State, results.Idle)
		if snap.Survey != nil {
			t.Errorf("stale refresh applied after reset")
		}
	})
}

func TestSessionPoll(t *testing.T) {
	t.Run("refreshes until stopped", func(t *testing.T) {
		source := sessionFixture()
		session := results.NewSession(source)
		defer session.Close()

		if err := session.Load(context.Background(), "s1"); err != nil {
			t.Fatalf("Load: %v", err)
		}

		session.Poll(context.Background(), "s1", 10*time.Millisecond)
		waitFor(t, func() bool { return source.calls() >= 3 })

		session.StopPolling()
		stopped := source.calls()
		time.Sleep(50 * time.Millisecond)
		if got := source.calls(); got != stopped {
			t.Errorf("poller kept running after stop: %d calls, want %d", got, stopped)
		}
	})

	t.Run("reset stops polling", func(t *testing.T) {
		source := sessionFixture()
		session := results.NewSession(source)
		defer session.Close()

		session.Poll(context.Background(), "s1", 10*time.Millisecond)
		waitFor(t, func() bool { return source.calls() >= 1 })

		session.Reset()
		stopped := source.calls()
		time.Sleep(50 * time.Millisecond)
		if got := source.calls(); got != stopped {
			t.Errorf("poller kept running after reset")
		}
		assertState(t, session.Snapshot().State, results.Idle)
	})

	t.Run("cancelled context stops polling", func(t *testing.T) {
		source := sessionFixture()
		session := results.NewSession(source)
		defer session.Close()

		ctx, cancel := context.WithCancel(context.Background())
		session.Poll(ctx, "s1", 10*time.Millisecond)
		waitFor(t, func() bool { return source.calls() >= 1 })
		cancel()

		// StopPolling waits for the goroutine to exit.
		session.StopPolling()
		stopped := source.calls()
		time.Sleep(50 * time.Millisecond)
		if got := source.calls(); got != stopped {
			t.Errorf("poller kept running after cancel")
		}
	})
}

func TestSessionSubscribe(t *testing.T) {
	source := sessionFixture()
	session := results.NewSession(source)

	updates, cancel := session.Subscribe()
	defer cancel()

	if err := session.Load(context.Background(), "s1"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	select {
	case snap := <-updates:
		assertState(t, snap.State, results.Ready)
	case <-time.After(time.Second):
		t.Fatal("no snapshot published")
	}

	session.Close()
	if _, ok := <-updates; ok {
		t.Error("channel still open after Close")
	}
}

func TestSessionExport(t *testing.T) {
	t.Run("no survey loaded", func(t *testing.T) {
		notifier := &StubNotifier{}
		session := results.NewSession(sessionFixture(), results.WithNotifier(notifier))
		defer session.Close()

		sink := &StubDownloader{}
		exported, err := session.Export(sink)
		if err != nil || exported {
			t.Errorf("Export = %v, %v; want false, nil", exported, err)
		}
		if sink.Data != nil || len(notifier.Notices) != 0 {
			t.Errorf("export without survey produced output")
		}
	})

	t.Run("writes csv and notifies", func(t *testing.T) {
		now := time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC)
		notifier := &StubNotifier{}
		session := results.NewSession(sessionFixture(),
			results.WithNotifier(notifier),
			results.WithClock(func() time.Time { return now }),
		)
		defer session.Close()

		if err := session.Load(context.Background(), "s1"); err != nil {
			t.Fatalf("Load: %v", err)
		}

		sink := &StubDownloader{}
		exported, err := session.Export(sink)
		if err != nil || !exported {
			t.Fatalf("Export = %v, %v", exported, err)
		}
		if sink.Filename != "Resultados_Clima_laboral_2024-05-03.csv" {
			t.Errorf("filename = %q", sink.Filename)
		}
		if sink.MimeType != results.CSVMimeType {
			t.Errorf("mime type = %q", sink.MimeType)
		}
		if len(notifier.Notices) != 1 || notifier.Notices[0] != "Resultados exportados exitosamente" {
			t.Errorf("notices = %v", notifier.Notices)
		}
		if notifier.Kinds[0] != results.NoticeSuccess {
			t.Errorf("kind = %s", notifier.Kinds[0])
		}
	})

	t.Run("sink failure is returned", func(t *testing.T) {
		notifier := &StubNotifier{}
		session := results.NewSession(sessionFixture(), results.WithNotifier(notifier))
		defer session.Close()

		if err := session.Load(context.Background(), "s1"); err != nil {
			t.Fatalf("Load: %v", err)
		}

		if _, err := session.Export(&StubDownloader{ShouldFail: true}); err == nil {
			t.Error("expected sink error")
		}
		if len(notifier.Notices) != 0 {
			t.Errorf("notified on failed export: %v", notifier.Notices)
		}
	})

	t.Run("pdf report", func(t *testing.T) {
		session := results.NewSession(sessionFixture())
		defer session.Close()

		if err := session.Load(context.Background(), "s1"); err != nil {
			t.Fatalf("Load: %v", err)
		}

		sink := &StubDownloader{}
		exported, err := session.ExportReport(sink)
		if err != nil || !exported {
			t.Fatalf("ExportReport = %v, %v", exported, err)
		}
		if sink.MimeType != results.PDFMimeType {
			t.Errorf("mime type = %q", sink.MimeType)
		}
	})
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"backend message", &results.FetchError{Op: "fetch", Message: "Encuesta no encontrada"}, "Encuesta no encontrada"},
		{"wrapped cause", &results.FetchError{Op: "fetch", Err: errors.New("timeout")}, "timeout"},
		{"plain error", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := results.ErrorMessage(tt.err); got != tt.want {
				t.Errorf("ErrorMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

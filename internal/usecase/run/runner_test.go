package run

import (
	"context"
	stdErrors "errors"
	"testing"
	"time"

	"github.com/johnquangdev/fireflies-agent/errors"
	"github.com/johnquangdev/fireflies-agent/internal/domain/entities"
	"github.com/johnquangdev/fireflies-agent/internal/usecase/dispatch"
	"github.com/johnquangdev/fireflies-agent/internal/usecase/extract"
)

type stubSource struct {
	transcript *entities.Transcript
	err        error
	fetches    int
}

func (s *stubSource) Fetch(ctx context.Context, meetingID string) (*entities.Transcript, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.transcript, nil
}

type stubModel struct {
	responses []string
	errs      []error
	calls     int
}

func (m *stubModel) Complete(ctx context.Context, prompt string) (string, error) {
	i := m.calls
	m.calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return "", m.errs[i]
	}
	if i < len(m.responses) {
		return m.responses[i], nil
	}
	return m.responses[len(m.responses)-1], nil
}

type stubGuard struct {
	acquired bool
	err      error
	keys     []string
}

func (g *stubGuard) Acquire(ctx context.Context, key string) (bool, error) {
	g.keys = append(g.keys, key)
	return g.acquired, g.err
}

type recordingSink struct {
	name string
	err  error
	sent int
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Accepts(result *entities.ExtractionResult) bool { return true }

func (s *recordingSink) Send(ctx context.Context, r *entities.ExtractionResult) error {
	s.sent++
	return s.err
}

const validModelOutput = `{"summary":"Standup recap","action_items":[{"description":"Update roadmap"}],"follow_up_requested":false}`

func newTestRunner(source extract.TranscriptProvider, model extract.LanguageModelProvider, sinks []dispatch.Sink, guard DeliveryGuard) *Runner {
	engine := extract.NewEngine(model, extract.Identity{}, time.Second, nil)
	dispatcher := dispatch.NewDispatcher(sinks, time.Second, nil)
	runner := NewRunner(source, engine, dispatcher, guard, nil, nil, nil)
	runner.retryInitialInterval = time.Millisecond
	runner.retryMaxElapsed = 200 * time.Millisecond
	return runner
}

func transcriptFixture() *entities.Transcript {
	return &entities.Transcript{
		ID:           "mtg-42",
		MeetingTitle: "Standup",
		Participants: []string{"casey@example.com"},
		Text:         "Casey: roadmap needs an update",
		Timestamp:    time.Now().UTC(),
	}
}

func TestRun_HappyPath(t *testing.T) {
	source := &stubSource{transcript: transcriptFixture()}
	model := &stubModel{responses: []string{validModelOutput}}
	sink := &recordingSink{name: "airtable"}
	runner := newTestRunner(source, model, []dispatch.Sink{sink}, nil)

	report, err := runner.Run(context.Background(), "mtg-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.OverallStatus != entities.RunStatusSucceeded {
		t.Fatalf("expected succeeded, got %s", report.OverallStatus)
	}
	if report.TranscriptID != "mtg-42" {
		t.Fatalf("unexpected transcript id %q", report.TranscriptID)
	}
	if sink.sent != 1 {
		t.Fatalf("expected 1 delivery, got %d", sink.sent)
	}
	if report.Extraction.Summary != "Standup recap" {
		t.Fatalf("unexpected summary %q", report.Extraction.Summary)
	}
}

func TestRun_RetriesProviderFailures(t *testing.T) {
	source := &stubSource{transcript: transcriptFixture()}
	model := &stubModel{
		errs:      []error{stdErrors.New("timeout"), stdErrors.New("timeout")},
		responses: []string{"", "", validModelOutput},
	}
	runner := newTestRunner(source, model, []dispatch.Sink{&recordingSink{name: "gmail"}}, nil)

	report, err := runner.Run(context.Background(), "mtg-42")
	if err != nil {
		t.Fatalf("expected recovery after transient failures: %v", err)
	}
	if model.calls != 3 {
		t.Fatalf("expected 3 provider attempts, got %d", model.calls)
	}
	if report.OverallStatus != entities.RunStatusSucceeded {
		t.Fatalf("expected succeeded, got %s", report.OverallStatus)
	}
	if source.fetches != 1 {
		t.Fatalf("transcript must be fetched once, got %d", source.fetches)
	}
}

func TestRun_NonProviderErrorsNotRetried(t *testing.T) {
	source := &stubSource{transcript: transcriptFixture()}
	model := &stubModel{errs: []error{errors.ErrInvalidPayload()}}
	runner := newTestRunner(source, model, []dispatch.Sink{&recordingSink{name: "gmail"}}, nil)

	_, err := runner.Run(context.Background(), "mtg-42")
	if err == nil {
		t.Fatal("expected error")
	}
	if model.calls != 1 {
		t.Fatalf("non-provider failures must not be retried, got %d attempts", model.calls)
	}
}

func TestRun_DuplicateDeliverySuppressed(t *testing.T) {
	source := &stubSource{transcript: transcriptFixture()}
	model := &stubModel{responses: []string{validModelOutput}}
	sink := &recordingSink{name: "airtable"}
	guard := &stubGuard{acquired: false}
	runner := newTestRunner(source, model, []dispatch.Sink{sink}, guard)

	_, err := runner.Run(context.Background(), "mtg-42")
	if err == nil {
		t.Fatal("expected duplicate delivery error")
	}
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_DUPLICATE_DELIVERY {
		t.Fatalf("expected DUPLICATE_DELIVERY, got %v", err)
	}
	if sink.sent != 0 {
		t.Fatal("duplicate runs must not reach sinks")
	}
	if source.fetches != 0 {
		t.Fatal("duplicate runs must not fetch the transcript")
	}
	if len(guard.keys) != 1 || guard.keys[0] != "mtg-42" {
		t.Fatalf("guard must be keyed on the meeting id, got %v", guard.keys)
	}
}

func TestRun_BrokenGuardDoesNotBlock(t *testing.T) {
	source := &stubSource{transcript: transcriptFixture()}
	model := &stubModel{responses: []string{validModelOutput}}
	guard := &stubGuard{err: stdErrors.New("redis down")}
	runner := newTestRunner(source, model, []dispatch.Sink{&recordingSink{name: "airtable"}}, guard)

	report, err := runner.Run(context.Background(), "mtg-42")
	if err != nil {
		t.Fatalf("a broken guard must not stop the run: %v", err)
	}
	if report.OverallStatus != entities.RunStatusSucceeded {
		t.Fatalf("expected succeeded, got %s", report.OverallStatus)
	}
}

func TestRun_SinkFailureYieldsPartialReport(t *testing.T) {
	source := &stubSource{transcript: transcriptFixture()}
	model := &stubModel{responses: []string{validModelOutput}}
	failing := &recordingSink{name: "airtable", err: stdErrors.New("401 unauthorized")}
	healthy := &recordingSink{name: "gmail"}
	runner := newTestRunner(source, model, []dispatch.Sink{failing, healthy}, nil)

	report, err := runner.Run(context.Background(), "mtg-42")
	if err != nil {
		t.Fatalf("sink failures are reported, not returned: %v", err)
	}
	if report.OverallStatus != entities.RunStatusPartialFailure {
		t.Fatalf("expected partial_failure, got %s", report.OverallStatus)
	}
	if healthy.sent != 1 {
		t.Fatal("healthy sink must still deliver")
	}
}

func TestRun_CancelledContextAbortsDelivery(t *testing.T) {
	source := &stubSource{transcript: transcriptFixture()}
	model := &stubModel{responses: []string{validModelOutput}}
	sink := &recordingSink{name: "airtable"}
	runner := newTestRunner(source, model, []dispatch.Sink{sink}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := runner.Run(ctx, "mtg-42")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if report != nil {
		t.Fatal("cancelled runs must not produce a report")
	}
	if sink.sent != 0 {
		t.Fatal("no sink may be invoked after cancellation")
	}
}

func TestListReports_NoPersistence(t *testing.T) {
	runner := newTestRunner(&stubSource{}, &stubModel{responses: []string{validModelOutput}}, nil, nil)

	reports, err := runner.ListReports(context.Background(), "mtg-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reports == nil || len(reports) != 0 {
		t.Fatalf("expected empty listing without persistence, got %v", reports)
	}
}

func TestRun_EmptyMeetingID(t *testing.T) {
	runner := newTestRunner(&stubSource{}, &stubModel{responses: []string{validModelOutput}}, nil, nil)

	_, err := runner.Run(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != errors.ErrorCode_INVALID_INPUT {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

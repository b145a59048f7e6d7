package intake

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/linka-app/linka/internal/api"
	"github.com/linka-app/linka/internal/config"
)

type fakeCreator struct {
	calls   int
	lastReq api.CreateCaseRequest
	result  api.Case
	err     error
}

func (f *fakeCreator) CreateCase(ctx context.Context, req api.CreateCaseRequest) (api.Case, error) {
	f.calls++
	f.lastReq = req
	return f.result, f.err
}

func newTestWizard(creator CaseCreator) *Wizard {
	return NewWizard(config.IntakeConfig{MinStatementLength: 20}, creator)
}

func TestEmptyCaseTypeRejected(t *testing.T) {
	creator := &fakeCreator{}
	w := newTestWizard(creator)

	if err := w.SelectCaseType("", ""); !errors.Is(err, ErrNoCaseType) {
		t.Fatalf("expected ErrNoCaseType, got %v", err)
	}
	if w.Step() != StepCaseType {
		t.Errorf("step advanced on rejected selection: %s", w.Step())
	}
	if creator.calls != 0 {
		t.Errorf("network reached on local validation failure")
	}
}

func TestHappyPathSubmitsOnce(t *testing.T) {
	creator := &fakeCreator{result: api.Case{ID: 42}}
	w := newTestWizard(creator)

	if err := w.SelectCaseType("voice_phishing", ""); err != nil {
		t.Fatalf("SelectCaseType: %v", err)
	}
	if w.Step() != StepScammerInfo {
		t.Fatalf("step = %s, want %s", w.Step(), StepScammerInfo)
	}
	infos := []api.ScammerInfo{{InfoType: "phone", Value: "010-1234-5678"}}
	if err := w.SetScammerInfos(infos); err != nil {
		t.Fatalf("SetScammerInfos: %v", err)
	}
	if w.Step() != StepStatement {
		t.Fatalf("step = %s, want %s", w.Step(), StepStatement)
	}

	created, err := w.Submit(context.Background(), "  They called claiming to be my bank.  ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if created.ID != 42 {
		t.Errorf("created.ID = %d", created.ID)
	}
	if creator.calls != 1 {
		t.Fatalf("expected exactly one submission, got %d", creator.calls)
	}
	if creator.lastReq.Statement != "They called claiming to be my bank." {
		t.Errorf("statement not trimmed: %q", creator.lastReq.Statement)
	}
	if creator.lastReq.CaseType != "voice_phishing" {
		t.Errorf("case type = %q", creator.lastReq.CaseType)
	}
	if len(creator.lastReq.ScammerInfos) != 1 {
		t.Errorf("scammer infos = %+v", creator.lastReq.ScammerInfos)
	}
}

func TestOtherCaseTypeKeepsDescription(t *testing.T) {
	w := newTestWizard(&fakeCreator{})
	if err := w.SelectCaseType("other", "  crypto rug pull  "); err != nil {
		t.Fatalf("SelectCaseType: %v", err)
	}
	if got := w.Draft().CaseTypeOther; got != "crypto rug pull" {
		t.Errorf("CaseTypeOther = %q", got)
	}
}

func TestShortStatementNeverReachesNetwork(t *testing.T) {
	creator := &fakeCreator{}
	w := newTestWizard(creator)
	w.SelectCaseType("smishing", "")
	w.SetScammerInfos(nil)

	_, err := w.Submit(context.Background(), "too short")
	if !errors.Is(err, ErrStatementTooShort) {
		t.Fatalf("expected ErrStatementTooShort, got %v", err)
	}
	if creator.calls != 0 {
		t.Error("short statement reached the network")
	}
}

func TestNilScammerInfosSentAsEmptyArray(t *testing.T) {
	creator := &fakeCreator{}
	w := newTestWizard(creator)
	w.SelectCaseType("loan_scam", "")
	w.SetScammerInfos(nil)

	if _, err := w.Submit(context.Background(), strings.Repeat("a", 25)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if creator.lastReq.ScammerInfos == nil {
		t.Fatal("scammer_infos must be an array, not null")
	}
}

func TestFailedSubmitKeepsDraft(t *testing.T) {
	creator := &fakeCreator{err: &api.UpstreamError{Status: 500, Detail: "db down"}}
	w := newTestWizard(creator)
	w.SelectCaseType("investment", "")
	w.SetScammerInfos([]api.ScammerInfo{{InfoType: "account", Value: "123-456"}})

	statement := strings.Repeat("x", 30)
	if _, err := w.Submit(context.Background(), statement); err == nil {
		t.Fatal("expected submit error")
	}

	// Retry without re-entering anything.
	creator.err = nil
	creator.result = api.Case{ID: 7}
	created, err := w.Submit(context.Background(), statement)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("created.ID = %d", created.ID)
	}
	if len(creator.lastReq.ScammerInfos) != 1 {
		t.Errorf("draft lost on retry: %+v", creator.lastReq)
	}
}

func TestFinishedWizardRejectsReuse(t *testing.T) {
	creator := &fakeCreator{result: api.Case{ID: 1}}
	w := newTestWizard(creator)
	w.SelectCaseType("rental_scam", "")
	w.SetScammerInfos(nil)
	if _, err := w.Submit(context.Background(), strings.Repeat("a", 20)); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := w.Submit(context.Background(), strings.Repeat("b", 20)); !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
	if creator.calls != 1 {
		t.Errorf("finished wizard submitted again: %d calls", creator.calls)
	}
}

func TestBackRetainsDraft(t *testing.T) {
	w := newTestWizard(&fakeCreator{})
	w.SelectCaseType("job_scam", "")
	w.SetScammerInfos([]api.ScammerInfo{{InfoType: "name", Value: "kim"}})

	if err := w.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if w.Step() != StepScammerInfo {
		t.Fatalf("step = %s", w.Step())
	}
	if len(w.Draft().ScammerInfos) != 1 {
		t.Error("draft lost on Back")
	}
	if err := w.Back(); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if w.Step() != StepCaseType {
		t.Fatalf("step = %s", w.Step())
	}
	if err := w.Back(); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected ErrWrongStep at first step, got %v", err)
	}
}

func TestSubmitErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation",
			err:  &api.ValidationError{Fields: []api.FieldError{{Loc: []any{"body", "statement"}, Msg: "too short"}}},
			want: "statement: too short",
		},
		{
			name: "unauthenticated",
			err:  api.ErrUnauthenticated,
			want: "Your session has expired. Please log in again.",
		},
		{
			name: "unreachable",
			err:  api.ErrUnreachable,
			want: "Could not reach the server. Check your connection and try again.",
		},
		{
			name: "upstream",
			err:  &api.UpstreamError{Status: 500, Detail: "db down"},
			want: "Submitting the case failed: db down",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SubmitErrorMessage(tc.err); got != tc.want {
				t.Errorf("SubmitErrorMessage = %q, want %q", got, tc.want)
			}
		})
	}
}

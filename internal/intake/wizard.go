// Package intake implements the multi-step case intake wizard: a small state
// machine that collects a case draft across three steps and submits it once.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/linka-app/linka/internal/api"
	"github.com/linka-app/linka/internal/config"
)

// Step is one state of the intake wizard.
type Step string

const (
	StepCaseType    Step = "case-type"
	StepScammerInfo Step = "scammer-info"
	StepStatement   Step = "statement"
)

// Local validation errors. These short-circuit before any network call.
var (
	// ErrNoCaseType is returned when advancing without a case type selected.
	ErrNoCaseType = errors.New("no case type selected")

	// ErrStatementTooShort is returned when the trimmed statement is below
	// the configured minimum length.
	ErrStatementTooShort = errors.New("statement too short")

	// ErrSubmitInFlight is returned when a submit is attempted while a
	// previous one has not settled.
	ErrSubmitInFlight = errors.New("submission already in progress")

	// ErrWrongStep is returned for an operation issued from the wrong step.
	ErrWrongStep = errors.New("operation not valid in current step")

	// ErrAlreadySubmitted is returned when reusing a finished wizard.
	ErrAlreadySubmitted = errors.New("case already submitted")
)

// CaseType is one selectable case category.
type CaseType struct {
	ID    string
	Label string
}

// CaseTypes is the fixed list of selectable case categories. "other" carries
// a free-text description.
var CaseTypes = []CaseType{
	{ID: "voice_phishing", Label: "Voice phishing"},
	{ID: "job_scam", Label: "Job scam"},
	{ID: "dating_scam", Label: "Dating scam"},
	{ID: "loan_scam", Label: "Loan scam"},
	{ID: "rental_scam", Label: "Rental scam"},
	{ID: "romance_scam", Label: "Romance scam"},
	{ID: "smishing", Label: "Smishing"},
	{ID: "fake_ad", Label: "Fake advertising"},
	{ID: "used_goods", Label: "Used goods fraud"},
	{ID: "investment", Label: "Investment fraud"},
	{ID: "game_item", Label: "Game item fraud"},
	{ID: "other", Label: "Other"},
}

// ScammerInfoTypes are the selectable perpetrator fact types.
var ScammerInfoTypes = []string{"name", "nickname", "phone", "account", "sns_id"}

// FixedFieldTypes is the reduced field set used by the fixed-fields intake
// variant (config intake.fixedFields).
var FixedFieldTypes = []string{"name", "phone", "account"}

// Draft is the in-progress wizard state. It is created empty at wizard entry,
// mutated at each step and discarded after a successful submission.
type Draft struct {
	CaseType      string
	CaseTypeOther string
	ScammerInfos  []api.ScammerInfo
	Statement     string
}

// CaseCreator submits the assembled case. Satisfied by *api.Client.
type CaseCreator interface {
	CreateCase(ctx context.Context, req api.CreateCaseRequest) (api.Case, error)
}

// Wizard is the intake state machine. One instance handles one submission;
// it is torn down after success, not revisited.
type Wizard struct {
	cfg    config.IntakeConfig
	client CaseCreator

	mu         sync.Mutex
	step       Step
	draft      Draft
	submitting bool
	submitted  bool
}

// NewWizard creates a wizard at the initial step with an empty draft.
func NewWizard(cfg config.IntakeConfig, client CaseCreator) *Wizard {
	return &Wizard{
		cfg:    cfg,
		client: client,
		step:   StepCaseType,
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	d := w.draft
	d.ScammerInfos = append([]api.ScammerInfo(nil), w.draft.ScammerInfos...)
	return d
}

// SelectCaseType records the selection and advances to the scammer-info step.
// An empty selection is rejected and no transition occurs.
func (w *Wizard) SelectCaseType(caseType, other string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepCaseType {
		return ErrWrongStep
	}
	if strings.TrimSpace(caseType) == "" {
		return ErrNoCaseType
	}

	w.draft.CaseType = caseType
	if caseType == "other" {
		w.draft.CaseTypeOther = strings.TrimSpace(other)
	} else {
		w.draft.CaseTypeOther = ""
	}
	w.step = StepScammerInfo
	return nil
}

// SetScammerInfos records the perpetrator facts and advances to the statement
// step. Rows with empty values are allowed through; they carry no meaning but
// rejecting them here would lose partially known information.
func (w *Wizard) SetScammerInfos(infos []api.ScammerInfo) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepScammerInfo {
		return ErrWrongStep
	}
	w.draft.ScammerInfos = append([]api.ScammerInfo(nil), infos...)
	w.step = StepStatement
	return nil
}

// Back moves one step backwards. Draft contents are retained.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.step {
	case StepScammerInfo:
		w.step = StepCaseType
	case StepStatement:
		w.step = StepScammerInfo
	default:
		return ErrWrongStep
	}
	return nil
}

// MinStatementLength returns the enforced minimum statement length.
func (w *Wizard) MinStatementLength() int {
	if w.cfg.MinStatementLength > 0 {
		return w.cfg.MinStatementLength
	}
	return config.DefaultConfig().Intake.MinStatementLength
}

// Submit validates the statement locally and posts the assembled case.
// Validation failures and double submits never reach the network. Any
// submission failure leaves the wizard state intact so the user can retry
// without re-entering data.
func (w *Wizard) Submit(ctx context.Context, statement string) (api.Case, error) {
	statement = strings.TrimSpace(statement)

	w.mu.Lock()
	if w.submitted {
		w.mu.Unlock()
		return api.Case{}, ErrAlreadySubmitted
	}
	if w.step != StepStatement {
		w.mu.Unlock()
		return api.Case{}, ErrWrongStep
	}
	if len([]rune(statement)) < w.MinStatementLength() {
		w.mu.Unlock()
		return api.Case{}, fmt.Errorf("%w: minimum %d characters", ErrStatementTooShort, w.MinStatementLength())
	}
	if w.submitting {
		w.mu.Unlock()
		return api.Case{}, ErrSubmitInFlight
	}
	w.submitting = true
	w.draft.Statement = statement
	req := api.CreateCaseRequest{
		CaseType:      w.draft.CaseType,
		CaseTypeOther: w.draft.CaseTypeOther,
		Statement:     statement,
		ScammerInfos:  w.draft.ScammerInfos,
	}
	w.mu.Unlock()

	// The backend requires an array-typed scammer_infos field.
	if req.ScammerInfos == nil {
		req.ScammerInfos = []api.ScammerInfo{}
	}

	created, err := w.client.CreateCase(ctx, req)

	w.mu.Lock()
	w.submitting = false
	if err == nil {
		w.submitted = true
	}
	w.mu.Unlock()

	if err != nil {
		return api.Case{}, err
	}
	return created, nil
}

// SubmitErrorMessage converts a Submit error into user-facing text.
func SubmitErrorMessage(err error) string {
	var validation *api.ValidationError
	if errors.As(err, &validation) {
		return validation.Error()
	}
	if errors.Is(err, api.ErrUnauthenticated) {
		return "Your session has expired. Please log in again."
	}
	if errors.Is(err, api.ErrUnreachable) {
		return "Could not reach the server. Check your connection and try again."
	}
	var upstream *api.UpstreamError
	if errors.As(err, &upstream) && upstream.Detail != "" {
		return fmt.Sprintf("Submitting the case failed: %s", upstream.Detail)
	}
	if errors.Is(err, ErrStatementTooShort) || errors.Is(err, ErrNoCaseType) {
		return err.Error()
	}
	return "Submitting the case failed. Please try again."
}

package rules

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"

	"github.com/cwbudde/ruledsl/internal/value"
)

// AuditEvent records one processed step: the step name, the expression
// source text that produced it (Call synthesizes one), the resulting
// Value, and the Outcome it led to (spec.md §4.9).
type AuditEvent struct {
	ID         string
	StepName   string
	Expression string
	Result     value.Value
	Outcome    Outcome
}

// AuditLog is the ordered, append-only record of a chain run.
type AuditLog struct {
	Events []AuditEvent
}

func newAuditLog() *AuditLog { return &AuditLog{} }

func (a *AuditLog) record(stepName, expr string, result value.Value, outcome Outcome) {
	a.Events = append(a.Events, AuditEvent{
		ID:         nextULID(),
		StepName:   stepName,
		Expression: expr,
		Result:     result,
		Outcome:    outcome,
	})
}

// entropySource backs ULID monotonic entropy on crypto/rand rather than
// math/rand's global seed.
var entropySource = ulid.Monotonic(rand.Reader, 0)

func nextULID() string {
	id, err := ulid.New(ulid.Now(), entropySource)
	if err != nil {
		return ""
	}
	return id.String()
}

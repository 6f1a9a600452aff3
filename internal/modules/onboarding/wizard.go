// Package onboarding holds the multi-step wizard definitions and the
// protocol/auth-type validation rules gating a partner submission.
package onboarding

import "fmt"

// PartnerType selects which wizard a partner walks through.
type PartnerType string

const (
	PartnerTypeB2BEDI  PartnerType = "B2B_EDI"
	PartnerTypeGeneric PartnerType = "GENERIC"
)

// Valid reports whether t is a known partner type.
func (t PartnerType) Valid() bool {
	return t == PartnerTypeB2BEDI || t == PartnerTypeGeneric
}

// Step is one screen of the wizard. Numbers start at 1.
type Step struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

var wizardSteps = map[PartnerType][]Step{
	PartnerTypeB2BEDI: {
		{Number: 1, Name: "Company Info"},
		{Number: 2, Name: "Security"},
		{Number: 3, Name: "Interface"},
		{Number: 4, Name: "Review & Submit"},
	},
	PartnerTypeGeneric: {
		{Number: 1, Name: "Partner Info"},
		{Number: 2, Name: "Resources"},
		{Number: 3, Name: "Review & Submit"},
	},
}

// Steps returns the ordered step list for a partner type.
func Steps(t PartnerType) []Step {
	return wizardSteps[t]
}

// TotalSteps returns the number of steps for a partner type, 0 for an
// unknown type.
func TotalSteps(t PartnerType) int {
	return len(wizardSteps[t])
}

// Wizard tracks a partner's position in the step sequence. The state
// lives only in memory; nothing is persisted until final submission.
type Wizard struct {
	Type    PartnerType
	current int
}

// NewWizard starts a wizard at step 1.
func NewWizard(t PartnerType) (*Wizard, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown partner type %q", t)
	}
	return &Wizard{Type: t, current: 1}, nil
}

// Current returns the step the wizard is on.
func (w *Wizard) Current() Step {
	return wizardSteps[w.Type][w.current-1]
}

// AtFinalStep reports whether the wizard is on its terminal step.
func (w *Wizard) AtFinalStep() bool {
	return w.current == len(wizardSteps[w.Type])
}

// Next advances one step. At the terminal step it does not advance and
// instead reports that submission should be triggered.
func (w *Wizard) Next() (submit bool) {
	if w.AtFinalStep() {
		return true
	}
	w.current++
	return false
}

// Previous steps back one screen; a no-op at step 1.
func (w *Wizard) Previous() {
	if w.current > 1 {
		w.current--
	}
}

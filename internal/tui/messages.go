package tui

import "github.com/zoe5466/Gudiee-sub001/wizard"

// StepBackMsg is emitted by a step when the user moves back past its first field.
type StepBackMsg struct{}

// StepCompleteMsg is emitted by a step when every field has been entered.
type StepCompleteMsg struct{}

// NextResultMsg carries the result of validating or submitting a step.
type NextResultMsg struct {
	Transition wizard.Transition
	Err        error
}

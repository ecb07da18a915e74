package relayExecutor

import (
	"fmt"
	"time"
)

// State is the position of an execution in the relay pipeline.
type State string

const (
	State_Unsigned      State = "unsigned"
	State_NonceFetched  State = "nonceFetched"
	State_MessageBuilt  State = "messageBuilt"
	State_Signed        State = "signed"
	State_Submitted     State = "submitted"
	State_Confirmed     State = "confirmed"
	State_Reverted      State = "reverted"
	State_RelayRejected State = "relayRejected"
)

var transitions = map[State][]State{
	State_Unsigned:     {State_NonceFetched},
	State_NonceFetched: {State_MessageBuilt},
	State_MessageBuilt: {State_Signed},
	State_Signed:       {State_Submitted},
	State_Submitted:    {State_Confirmed, State_Reverted, State_RelayRejected},
}

// IsTerminal is true for Confirmed, Reverted and RelayRejected.
func (s State) IsTerminal() bool {
	return s == State_Confirmed || s == State_Reverted || s == State_RelayRejected
}

func (s State) canTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition is one recorded state change.
type Transition struct {
	From  State     `json:"from"`
	To    State     `json:"to"`
	At    time.Time `json:"at"`
	Error string    `json:"error,omitempty"`
}

// InvalidTransitionError is returned when the pipeline is driven out of order.
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid execution state transition from %s to %s", e.From, e.To)
}

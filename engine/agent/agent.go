package agent

import (
	"fmt"

	"github.com/sirupsen/logrus"

	engine "github.com/marjapussi/marjapussi/engine"
)

// Agent couples a seat's belief with the policy that plays it.
type Agent struct {
	Name   string
	State  *AgentState
	Policy Policy

	log logrus.FieldLogger
}

// NewAgent creates the agent of seat from its dealt hand and starts the
// policy on the fresh belief. A nil logger discards output.
func NewAgent(seat uint8, names [engine.NumSeats]string, hand engine.CardSet, rules engine.Rules,
	policy Policy, log logrus.FieldLogger) *Agent {
	if log == nil {
		log = discardLogger
	}
	log = log.WithFields(logrus.Fields{"seat": seat, "policy": fmt.Sprintf("%T", policy)})
	state := NewAgentState(seat, names, hand, rules)
	state.SetLogger(log)
	policy.GameStart(state)
	log.Debugf("agent %s ready with %s", names[seat], hand)
	return &Agent{Name: names[seat], State: state, Policy: policy, log: log}
}

// NextAction asks the policy for one of the legal actions.
func (a *Agent) NextAction(legal []engine.Action) engine.Action {
	act := a.Policy.SelectAction(a.State, legal)
	a.log.Debugf("selects %s", act)
	return act
}

// Observe feeds an applied action to the belief and then to the policy.
func (a *Agent) Observe(act engine.Action) error {
	if err := a.State.Observe(act); err != nil {
		return err
	}
	a.Policy.ObserveAction(a.State, act)
	return nil
}

func (a *Agent) String() string {
	return fmt.Sprintf("<%s agent, %T>", a.Name, a.Policy)
}

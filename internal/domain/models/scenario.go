package models

import (
	"fmt"
	"time"
)

// StepAction is the registry operation a scenario step performs
type StepAction string

const (
	ActionDeploy     StepAction = "deploy"
	ActionOwner      StepAction = "owner"
	ActionRegister   StepAction = "register"
	ActionSetRecord  StepAction = "setRecord"
	ActionGetAddress StepAction = "getAddress"
	ActionGetRecord  StepAction = "getRecord"
	ActionPrice      StepAction = "price"
	ActionWithdraw   StepAction = "withdraw"
	ActionBalance    StepAction = "balance"
)

// Actions lists every supported step action
var Actions = []StepAction{
	ActionDeploy,
	ActionOwner,
	ActionRegister,
	ActionSetRecord,
	ActionGetAddress,
	ActionGetRecord,
	ActionPrice,
	ActionWithdraw,
	ActionBalance,
}

// Scenario is an ordered list of registry calls, each awaited before the next
type Scenario struct {
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []ScenarioStep `yaml:"steps" json:"steps"`
}

// ScenarioStep is one call in a scenario
type ScenarioStep struct {
	Action StepAction `yaml:"action" json:"action"`

	// From is the signer: an account index or address, default 0
	From string `yaml:"from,omitempty" json:"from,omitempty"`

	Name   string `yaml:"name,omitempty" json:"name,omitempty"`
	Value  string `yaml:"value,omitempty" json:"value,omitempty"` // ether
	Record string `yaml:"record,omitempty" json:"record,omitempty"`
	TLD    string `yaml:"tld,omitempty" json:"tld,omitempty"`

	// Of selects the balance to print: "registry", an account index or address
	Of string `yaml:"of,omitempty" json:"of,omitempty"`

	// Expect names the error kind this step must fail with
	Expect string `yaml:"expect,omitempty" json:"expect,omitempty"`

	// Say replaces the label printed in front of the step output
	Say string `yaml:"say,omitempty" json:"say,omitempty"`
}

// String renders the step as a call, e.g. register("twice", 0.1)
func (s ScenarioStep) String() string {
	switch s.Action {
	case ActionDeploy:
		return fmt.Sprintf("deploy(%q)", s.TLD)
	case ActionRegister:
		return fmt.Sprintf("register(%q, %s)", s.Name, s.Value)
	case ActionSetRecord:
		return fmt.Sprintf("setRecord(%q, %q)", s.Name, s.Record)
	case ActionGetAddress, ActionGetRecord, ActionPrice:
		return fmt.Sprintf("%s(%q)", s.Action, s.Name)
	case ActionBalance:
		return fmt.Sprintf("balance(%s)", s.Of)
	case ActionOwner:
		return "owner()"
	default:
		return string(s.Action) + "()"
	}
}

// StepResult is the outcome of one executed step
type StepResult struct {
	Index    int           `json:"index"`
	Step     ScenarioStep  `json:"step"`
	Output   string        `json:"output,omitempty"`
	Receipt  *Receipt      `json:"receipt,omitempty"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
	Expected bool          `json:"expected"`
	Duration time.Duration `json:"duration"`
}

// Failed reports an error the step did not expect
func (r *StepResult) Failed() bool {
	return r.Err != nil && !r.Expected
}

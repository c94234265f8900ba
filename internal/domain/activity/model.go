package activity

import "time"

// Activity is a single hands-on STEM project description.
type Activity struct {
	Name         string   `json:"name"`
	TimeEstimate string   `json:"time_estimate"`
	Materials    []string `json:"materials"`
	Instructions []string `json:"instructions"`
	ParentTip    string   `json:"parent_tip"`
	LearningGoal string   `json:"learning_goal"`
}

// Instruction count bounds accepted from the generation service.
const (
	MinInstructions = 4
	MaxInstructions = 8
)

// Outcome describes how an activity was produced.
type Outcome string

const (
	OutcomeGenerated Outcome = "generated"
	OutcomeFallback  Outcome = "fallback"
)

// Result is the activity returned for one generation request along with how it was produced.
type Result struct {
	Activity Activity
	Outcome  Outcome
	// Reason is set when Outcome is OutcomeFallback.
	Reason string
}

func (a Activity) clone() Activity {
	out := a
	out.Materials = append([]string(nil), a.Materials...)
	out.Instructions = append([]string(nil), a.Instructions...)
	return out
}

// GenerationEvent records the outcome of one generation request.
type GenerationEvent struct {
	RequestID    string    `json:"request_id,omitempty"`
	Materials    []string  `json:"materials"`
	Outcome      Outcome   `json:"outcome"`
	Reason       string    `json:"reason,omitempty"`
	ActivityName string    `json:"activity_name"`
	OccurredAt   time.Time `json:"occurred_at"`
}

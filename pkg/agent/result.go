package agent

import "time"

// Outcome names the terminal state a run ended in.
type Outcome string

const (
	// OutcomeAnswered means the model produced a final answer.
	OutcomeAnswered Outcome = "answered"
	// OutcomeMaxIterations means the iteration cap was reached first.
	OutcomeMaxIterations Outcome = "max_iterations"
	// OutcomeDeadline means the wall-clock budget was exhausted between iterations.
	OutcomeDeadline Outcome = "deadline"
	// OutcomeError means the model gateway failed mid-run.
	OutcomeError Outcome = "error"
)

// Fixed user-facing answers for the non-answered terminal states.
const (
	maxIterationsAnswer = "I was unable to complete the task within the maximum number of reasoning steps. Please try rephrasing or simplifying your request."
	deadlineAnswer      = "I was unable to complete the task within the allowed execution time. Please try rephrasing or simplifying your request."
)

// Step is one entry of the run trace: a single tool invocation and the
// observation fed back to the model.
type Step struct {
	Iteration   int            `json:"iteration"`
	Tool        string         `json:"tool"`
	Args        map[string]any `json:"args"`
	Observation string         `json:"observation"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Result is the outcome of a run. Every run terminates in exactly one
// Outcome; a failed run always carries either a non-empty Error or an
// explanatory Answer.
type Result struct {
	Success        bool    `json:"success"`
	Outcome        Outcome `json:"outcome"`
	Answer         string  `json:"answer"`
	Steps          []Step  `json:"steps"`
	Iterations     int     `json:"iterations"`
	ElapsedSeconds float64 `json:"execution_time"`
	Error          string  `json:"error,omitempty"`
}

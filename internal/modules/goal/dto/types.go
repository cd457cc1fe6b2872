package dto

import "time"

type GoalOutput struct {
	ID         int       `json:"id"`
	Start      time.Time `json:"start_date"`
	End        time.Time `json:"end_date"`
	Label      string    `json:"label"`
	Level      int       `json:"identifier_level"`
	Identifier string    `json:"identifier"`
	Condition  string    `json:"condition_type"`
	Quantity   int       `json:"quantity"`
}

// EvaluationOutput carries one goal's result. Err is set, and the counts are zero,
// when the goal could not be evaluated.
type EvaluationOutput struct {
	Goal         GoalOutput `json:"goal"`
	MatchedCount int        `json:"matched_count"`
	Satisfied    bool       `json:"satisfied"`
	Fraction     float64    `json:"fraction"`
	Err          error      `json:"-"`
}

// EvaluateInput evaluates as of AsOf; the zero value means today.
type EvaluateInput struct {
	AsOf time.Time
}

// RecordInput is one logged session supplied by the caller instead of read from the
// session store.
type RecordInput struct {
	Date     time.Time
	Group    string
	Name     string
	Keywords []string
}

type EvaluateRecordsInput struct {
	AsOf    time.Time
	Records []RecordInput
}

type ListGoalsInput struct {
	Period string
	AsOf   time.Time
}

type ImportGoalsInput struct {
	Path string
}

type ImportGoalsOutput struct {
	Count int
}

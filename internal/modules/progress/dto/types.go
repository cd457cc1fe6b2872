package dto

import "time"

// SeriesInput selects categories by their flat form ("Climbing2"). Empty From and To
// fall back to the configured report start and today.
type SeriesInput struct {
	Selectors []string
	From      string
	To        string
}

type SessionTrace struct {
	Selector string    `json:"selector"`
	Counts   []int     `json:"counts"`
	Target   []float64 `json:"target,omitempty"`
}

type SessionSeriesOutput struct {
	Days   []time.Time    `json:"-"`
	Traces []SessionTrace `json:"traces"`
}

type GoalTrace struct {
	Selector     string    `json:"selector"`
	Total        []int     `json:"total"`
	Satisfied    []int     `json:"satisfied"`
	NotSatisfied []int     `json:"not_satisfied"`
	Fraction     []float64 `json:"fraction"`
}

type GoalSeriesOutput struct {
	Days   []time.Time `json:"-"`
	Traces []GoalTrace `json:"traces"`
	// Skipped lists goals left out because they could not be evaluated.
	Skipped []int `json:"skipped,omitempty"`
}

type OverviewOutput struct {
	Sessions SessionSeriesOutput `json:"sessions"`
	Goals    GoalSeriesOutput    `json:"goals"`
}

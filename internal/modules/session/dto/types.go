package dto

import "time"

type LogSessionInput struct {
	Date     string
	Group    string
	Name     string
	Keywords []string
	Notes    string
	Duration *float64
}

type LogSessionOutput struct {
	ID int
}

type SessionOutput struct {
	ID       int
	Date     time.Time
	Group    string
	Name     string
	Keywords []string
	Notes    string
	Duration *float64
}

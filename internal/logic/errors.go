package logic

import "fmt"

// InsufficientDataError is returned when a series has fewer observations than
// the configured minimum. Recoverable: the caller may widen the window or
// decline to predict.
type InsufficientDataError struct {
	TeamID   string
	Got      int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for team %s: %d observations (need %d)", e.TeamID, e.Got, e.Required)
}

// IdenticalTeamsError is returned when a prediction is requested for a team
// against itself. Caller input error, never retried.
type IdenticalTeamsError struct {
	TeamID string
}

func (e *IdenticalTeamsError) Error() string {
	return fmt.Sprintf("home and away team identifiers are identical: %s", e.TeamID)
}

// InvalidLineError is returned for a non-positive or non-half-integer line.
type InvalidLineError struct {
	Value float64
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("invalid betting line %v: must be a positive half-integer", e.Value)
}

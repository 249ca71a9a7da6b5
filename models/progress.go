package models

import "time"

// Progress is one platform's practice counters for one user. A user owns at
// most one record per platform.
type Progress struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Platform       string    `json:"platform"`
	ProblemsSolved int       `json:"problemsSolved"`
	TotalProblems  int       `json:"totalProblems"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// TableName returns the name of the database table
// associated with the Progress model.
func (p Progress) TableName() string {
	return "progress"
}

// Percent returns solved/total as a whole percentage, 0 when total is 0.
func (p Progress) Percent() int {
	if p.TotalProblems <= 0 {
		return 0
	}
	return p.ProblemsSolved * 100 / p.TotalProblems
}

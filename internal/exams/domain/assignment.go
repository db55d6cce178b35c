package domain

import "time"

// Vote bounds, inclusive. Anything outside is rejected before mutation.
const (
	VoteMin = 0.0
	VoteMax = 100.0
)

// ValidVote reports whether v is inside the allowed grading range.
func ValidVote(v float64) bool {
	return v >= VoteMin && v <= VoteMax
}

// Assignment is one user's registration for one exam. The (UserID, ExamID)
// pair is the identity; there is no surrogate key. Vote is nil until a
// supervisor grades the assignment, after which it never changes.
type Assignment struct {
	UserID    string
	ExamID    string
	Vote      *float64   // nil = ungraded
	GradedAt  *time.Time // set in the same statement as Vote
	CreatedAt time.Time
}

// Graded reports whether a vote has been recorded.
func (a *Assignment) Graded() bool {
	return a.Vote != nil
}

// LetterGrade maps the vote onto the report scale. Ungraded assignments
// report "N/A".
func (a *Assignment) LetterGrade() string {
	if a.Vote == nil {
		return "N/A"
	}
	switch v := *a.Vote; {
	case v >= 90:
		return "A"
	case v >= 80:
		return "B"
	case v >= 70:
		return "C"
	case v >= 60:
		return "D"
	default:
		return "F"
	}
}

// AssignmentDetail is an assignment joined with its user and exam rows,
// the shape the grading and results screens consume.
type AssignmentDetail struct {
	Assignment
	UserEmail string
	ExamTitle string
	ExamDate  time.Time
}

// ExamStatistics summarizes grading progress across one exam's assignments.
type ExamStatistics struct {
	Participants int
	Graded       int
	Pending      int
	AverageVote  *float64 // nil until something is graded
}

// ResultsSummary aggregates a single user's results.
type ResultsSummary struct {
	Total   int
	Graded  int
	Pending int
	Average *float64
	Best    *float64
}

// Summarize computes a ResultsSummary over a user's assignments.
func Summarize(assignments []AssignmentDetail) ResultsSummary {
	s := ResultsSummary{Total: len(assignments)}
	var sum float64
	for _, a := range assignments {
		if a.Vote == nil {
			s.Pending++
			continue
		}
		s.Graded++
		sum += *a.Vote
		if s.Best == nil || *a.Vote > *s.Best {
			v := *a.Vote
			s.Best = &v
		}
	}
	if s.Graded > 0 {
		avg := sum / float64(s.Graded)
		s.Average = &avg
	}
	return s
}

package plan

import (
	"math"
	"time"
)

// DateLayout is the calendar date format used for exam and task dates.
const DateLayout = "2006-01-02"

// Hour bounds for Profile.StudyHours.
const (
	MinStudyHours     = 1
	MaxStudyHours     = 12
	DefaultStudyHours = 2
)

// Profile holds the study parameters entered during onboarding.
// It is created once and only replaced by a full reset.
type Profile struct {
	Subjects      []string `json:"subjects"`
	ExamDate      string   `json:"examDate"`
	StudyHours    int      `json:"studyHours"`
	SetupComplete bool     `json:"setupComplete"`
}

// Valid reports whether the profile satisfies the stored-profile invariant.
func (p *Profile) Valid() bool {
	return p != nil && len(p.Subjects) > 0
}

// Clone returns a deep copy.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Subjects = append([]string(nil), p.Subjects...)
	return &cp
}

// DaysUntilExam returns the whole days left until the exam, rounded up and
// never negative. An unparseable exam date yields 0.
func (p *Profile) DaysUntilExam(now time.Time) int {
	if p == nil {
		return 0
	}
	exam, err := time.Parse(DateLayout, p.ExamDate)
	if err != nil {
		return 0
	}
	days := math.Ceil(exam.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}

// ClampHours bounds n to [MinStudyHours, MaxStudyHours].
func ClampHours(n int) int {
	switch {
	case n < MinStudyHours:
		return MinStudyHours
	case n > MaxStudyHours:
		return MaxStudyHours
	}
	return n
}

// Task is one schedule item. Only Completed changes after creation.
type Task struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Topic     string `json:"topic"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Draft is a task as returned by the schedule generator, before an id and
// completion flag are attached.
type Draft struct {
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
	Date    string `json:"date"`
}

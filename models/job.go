package models

import "time"

// Job represents a job posting as read from the job board database
type Job struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Location     string    `json:"location"`
	SalaryMin    *float64  `json:"salaryMin,omitempty"`
	SalaryMax    *float64  `json:"salaryMax,omitempty"`
	JobIMG       string    `json:"jobIMG,omitempty"`
	IndustryID   *int64    `json:"industryId,omitempty"`
	IndustryName string    `json:"industryName,omitempty"`
	PostedByID   int64     `json:"postedById,omitempty"`
	PostedByName string    `json:"postedByName"` // employer company name
	CreatedAt    time.Time `json:"createdAt"`
}

// Industry is a named job category
type Industry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Skill belongs to exactly one industry
type Skill struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	IndustryID int64  `json:"industryId"`
}

// JobSuggestion is a point-in-time projection of a job shown in chat.
// It is serialized into message metadata, so later job edits do not
// change what a past message displayed.
type JobSuggestion struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	PostedByName string   `json:"postedByName"`
	Location     string   `json:"location"`
	SalaryMin    *float64 `json:"salaryMin,omitempty"`
	SalaryMax    *float64 `json:"salaryMax,omitempty"`
	JobIMG       string   `json:"jobIMG,omitempty"`
}

// NewJobSuggestion snapshots a job
func NewJobSuggestion(job Job) JobSuggestion {
	return JobSuggestion{
		ID:           job.ID,
		Title:        job.Title,
		PostedByName: job.PostedByName,
		Location:     job.Location,
		SalaryMin:    job.SalaryMin,
		SalaryMax:    job.SalaryMax,
		JobIMG:       job.JobIMG,
	}
}

// NewJobSuggestions snapshots a list of jobs, preserving order
func NewJobSuggestions(jobs []Job) []JobSuggestion {
	suggestions := make([]JobSuggestion, 0, len(jobs))
	for _, job := range jobs {
		suggestions = append(suggestions, NewJobSuggestion(job))
	}
	return suggestions
}

// JobIDs returns the ids of the given jobs in order
func JobIDs(jobs []Job) []int64 {
	ids := make([]int64, 0, len(jobs))
	for _, job := range jobs {
		ids = append(ids, job.ID)
	}
	return ids
}

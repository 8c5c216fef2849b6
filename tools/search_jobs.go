package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jobportal/backend/models"
	"github.com/jobportal/backend/storage"
)

// DefaultSearchLimit caps search_jobs results when no limit is given
const DefaultSearchLimit = 10

// SearchJobsTool queries visible job postings
type SearchJobsTool struct {
	jobs   storage.JobLookup
	images storage.ImageResolver
}

// NewSearchJobsTool creates a new job search tool. images may be nil.
func NewSearchJobsTool(jobs storage.JobLookup, images storage.ImageResolver) *SearchJobsTool {
	if images == nil {
		images = storage.PassthroughImages{}
	}
	return &SearchJobsTool{jobs: jobs, images: images}
}

func (t *SearchJobsTool) Name() string {
	return "search_jobs"
}

func (t *SearchJobsTool) Description() string {
	return `Search visible job postings on the job board.
Filter by industryId and/or location (exact city label, case-insensitive).
When neither is given, query is matched against job titles and industry names.
Returns job suggestions ordered by job id.`
}

func (t *SearchJobsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"industryId": map[string]interface{}{
				"type":        "integer",
				"description": "Industry id, as returned by detect_filters",
			},
			"location": map[string]interface{}{
				"type":        "string",
				"description": "City label, e.g. Hà Nội",
			},
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Free text matched against titles and industry names",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum number of results",
				"default":     DefaultSearchLimit,
			},
		},
	}
}

// SearchJobsInput represents the input for job search
type SearchJobsInput struct {
	IndustryID *int64 `json:"industryId,omitempty"`
	Location   string `json:"location,omitempty"`
	Query      string `json:"query,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// SearchJobsOutput represents the search results
type SearchJobsOutput struct {
	Jobs  []models.JobSuggestion `json:"jobs"`
	Total int                    `json:"total"`
}

func (t *SearchJobsTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var in SearchJobsInput
	if err := decodeInput(input, &in); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}
	in.Location = strings.TrimSpace(in.Location)
	in.Query = strings.TrimSpace(in.Query)
	if in.Limit <= 0 {
		in.Limit = DefaultSearchLimit
	}

	var (
		jobs []models.Job
		err  error
	)
	switch {
	case in.IndustryID != nil && in.Location != "":
		jobs, err = t.jobs.ByIndustryAndLocation(ctx, *in.IndustryID, in.Location)
	case in.IndustryID != nil:
		jobs, err = t.jobs.ByIndustry(ctx, *in.IndustryID)
	case in.Location != "":
		jobs, err = t.jobs.ByLocation(ctx, in.Location)
	case in.Query != "":
		jobs, err = t.jobs.FallbackSearch(ctx, in.Query)
	default:
		return NewErrorResult("one of industryId, location or query is required")
	}
	if err != nil {
		return nil, fmt.Errorf("job lookup failed: %w", err)
	}

	total := len(jobs)
	if len(jobs) > in.Limit {
		jobs = jobs[:in.Limit]
	}
	suggestions := models.NewJobSuggestions(jobs)
	for i := range suggestions {
		suggestions[i].JobIMG = t.images.ResolveImage(ctx, suggestions[i].JobIMG)
	}
	return NewSuccessResult(SearchJobsOutput{Jobs: suggestions, Total: total})
}

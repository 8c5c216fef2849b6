package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jobportal/backend/models"
)

// jobRow is the read projection of the job board's jobs table
type jobRow struct {
	ID           int64
	Title        string
	Description  string
	Location     string
	SalaryMin    *float64
	SalaryMax    *float64
	JobIMG       string `gorm:"column:job_img"`
	IndustryID   *int64
	IndustryName string
	PostedByID   int64
	PostedByName string
	CreatedAt    time.Time
}

type industryRow struct {
	ID   int64
	Name string
}

type skillRow struct {
	ID         int64
	Name       string
	IndustryID *int64
}

const jobColumns = `j.id, j.title, j.description, j.location, j.salary_min, j.salary_max,
	j.job_img, j.industry_id, i.name AS industry_name, j.posted_by AS posted_by_id,
	e.company_name AS posted_by_name, j.created_at`

// PostgresJobLookup reads visible jobs from the job board tables
type PostgresJobLookup struct {
	db *gorm.DB
}

// NewPostgresJobLookup creates a job lookup over an open connection
func NewPostgresJobLookup(db *gorm.DB) *PostgresJobLookup {
	return &PostgresJobLookup{db: db}
}

func (l *PostgresJobLookup) baseQuery(ctx context.Context) *gorm.DB {
	return l.db.WithContext(ctx).
		Table("jobs AS j").
		Select(jobColumns).
		Joins("LEFT JOIN industries AS i ON i.id = j.industry_id").
		Joins("LEFT JOIN employer_profiles AS e ON e.id = j.posted_by").
		Where("j.visible = ?", true)
}

func (l *PostgresJobLookup) find(query *gorm.DB, op string) ([]models.Job, error) {
	var rows []jobRow
	if err := query.Order("j.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to look up jobs %s: %w", op, err)
	}

	jobs := make([]models.Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, models.Job{
			ID:           row.ID,
			Title:        row.Title,
			Description:  row.Description,
			Location:     row.Location,
			SalaryMin:    row.SalaryMin,
			SalaryMax:    row.SalaryMax,
			JobIMG:       row.JobIMG,
			IndustryID:   row.IndustryID,
			IndustryName: row.IndustryName,
			PostedByID:   row.PostedByID,
			PostedByName: row.PostedByName,
			CreatedAt:    row.CreatedAt,
		})
	}
	return jobs, nil
}

// ByIndustry returns all jobs of an industry
func (l *PostgresJobLookup) ByIndustry(ctx context.Context, industryID int64) ([]models.Job, error) {
	return l.find(l.baseQuery(ctx).Where("j.industry_id = ?", industryID), "by industry")
}

// ByLocation matches the location case-insensitively
func (l *PostgresJobLookup) ByLocation(ctx context.Context, location string) ([]models.Job, error) {
	return l.find(l.baseQuery(ctx).Where("LOWER(j.location) = LOWER(?)", location), "by location")
}

// ByIndustryAndLocation applies both filters
func (l *PostgresJobLookup) ByIndustryAndLocation(ctx context.Context, industryID int64, location string) ([]models.Job, error) {
	query := l.baseQuery(ctx).
		Where("j.industry_id = ?", industryID).
		Where("LOWER(j.location) = LOWER(?)", location)
	return l.find(query, "by industry and location")
}

// FallbackSearch matches the text against job titles and industry names
func (l *PostgresJobLookup) FallbackSearch(ctx context.Context, text string) ([]models.Job, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(text)) + "%"
	query := l.baseQuery(ctx).Where("(j.title ILIKE ? OR i.name ILIKE ?)", pattern, pattern)
	return l.find(query, "by text")
}

// Industries returns the industry reference list in id order
func (l *PostgresJobLookup) Industries(ctx context.Context) ([]models.Industry, error) {
	var rows []industryRow
	if err := l.db.WithContext(ctx).Table("industries").Select("id, name").Order("id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load industries: %w", err)
	}

	industries := make([]models.Industry, 0, len(rows))
	for _, row := range rows {
		industries = append(industries, models.Industry{ID: row.ID, Name: row.Name})
	}
	return industries, nil
}

// Skills returns the skills that belong to an industry, in id order
func (l *PostgresJobLookup) Skills(ctx context.Context) ([]models.Skill, error) {
	var rows []skillRow
	err := l.db.WithContext(ctx).
		Table("skills").
		Select("id, name, industry_id").
		Where("industry_id IS NOT NULL").
		Order("id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}

	skills := make([]models.Skill, 0, len(rows))
	for _, row := range rows {
		skills = append(skills, models.Skill{ID: row.ID, Name: row.Name, IndustryID: *row.IndustryID})
	}
	return skills, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

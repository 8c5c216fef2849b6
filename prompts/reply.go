// Package prompts builds the text handed to the phrase generators.
package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jobportal/backend/models"
)

// MaxSummaries caps how many jobs are described to the generator
const MaxSummaries = 6

const replyInstruction = "Hãy trả lời người dùng bằng tiếng Việt, nói tự nhiên, thân thiện: " +
	"bắt đầu bằng câu 'Dưới đây là danh sách các job phù hợp cho yêu cầu của bạn 👇' " +
	"sau đó tóm tắt ngắn gọn (1-2 câu), " +
	"nêu 3 job nổi bật nhất, " +
	"và hỏi người dùng có muốn xem thêm công việc khác cùng ngành không."

// SystemInstruction frames the generator as the job board assistant
const SystemInstruction = "Bạn là Job Assistant của một trang tuyển dụng. " +
	"Chỉ nói về các công việc được cung cấp, không bịa thêm công việc, công ty hay mức lương."

// JobSummaries describes up to MaxSummaries jobs, one line each:
// "title — employer | location | salary"
func JobSummaries(jobs []models.Job) []string {
	n := len(jobs)
	if n > MaxSummaries {
		n = MaxSummaries
	}

	lines := make([]string, 0, n)
	for _, job := range jobs[:n] {
		title := job.Title
		if title == "" {
			title = "Untitled"
		}

		var sb strings.Builder
		sb.WriteString(title)
		sb.WriteString(" — ")
		sb.WriteString(job.PostedByName)
		if job.Location != "" {
			sb.WriteString(" | ")
			sb.WriteString(job.Location)
		}
		if salary := SalaryRange(job.SalaryMin, job.SalaryMax); salary != "" {
			sb.WriteString(" | ")
			sb.WriteString(salary)
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// SalaryRange formats an optional min/max pair
func SalaryRange(lo, hi *float64) string {
	switch {
	case lo != nil && hi != nil:
		return formatAmount(*lo) + " - " + formatAmount(*hi)
	case hi != nil:
		return "≤ " + formatAmount(*hi)
	case lo != nil:
		return "≥ " + formatAmount(*lo)
	}
	return ""
}

// ReplyPrompt combines the user's message, the numbered job summaries and
// the phrasing instruction
func ReplyPrompt(message string, summaries []string) string {
	var sb strings.Builder
	sb.WriteString(message)
	sb.WriteString("\n\nDưới đây là một số công việc phù hợp :\n")
	for i, line := range summaries {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, line)
	}
	sb.WriteString("\n")
	sb.WriteString(replyInstruction)
	return sb.String()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

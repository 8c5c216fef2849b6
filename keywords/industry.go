package keywords

import (
	"strings"

	"github.com/jobportal/backend/models"
)

// IndustryBundle maps category keywords to the industry whose name
// contains Target
type IndustryBundle struct {
	Name     string
	Keywords []string
	Target   string
}

// IndustryBundles is checked in order after direct name matching
var IndustryBundles = []IndustryBundle{
	{Name: "it", Keywords: []string{"it", "developer", "lập trình", "java", "frontend", "backend"}, Target: "công nghệ thông tin"},
	{Name: "design", Keywords: []string{"design", "ui", "ux", "3d", "artist"}, Target: "thiết kế"},
	{Name: "marketing", Keywords: []string{"marketing", "content", "truyền thông"}, Target: "marketing"},
	{Name: "finance", Keywords: []string{"tài chính", "accounting", "finance", "ngân hàng"}, Target: "tài chính"},
	{Name: "education", Keywords: []string{"giáo dục", "teacher", "giảng dạy"}, Target: "giáo dục"},
}

// DetectIndustry infers an industry from a message. Rules, first hit wins:
// direct industry name, keyword bundle, then skill name.
// A bundle that matches the message but whose target industry is missing
// from the list ends detection with no result.
func DetectIndustry(raw string, industries []models.Industry, skills []models.Skill) (*models.Industry, bool) {
	msg := Normalize(raw)

	for i := range industries {
		name := strings.ToLower(industries[i].Name)
		if name != "" && strings.Contains(msg, name) {
			return &industries[i], true
		}
	}

	for _, bundle := range IndustryBundles {
		if containsAny(msg, bundle.Keywords) {
			return findIndustry(industries, func(ind models.Industry) bool {
				return strings.Contains(strings.ToLower(ind.Name), bundle.Target)
			})
		}
	}

	for _, skill := range skills {
		name := strings.ToLower(skill.Name)
		if name != "" && strings.Contains(msg, name) {
			return findIndustry(industries, func(ind models.Industry) bool {
				return ind.ID == skill.IndustryID
			})
		}
	}

	return nil, false
}

func findIndustry(industries []models.Industry, match func(models.Industry) bool) (*models.Industry, bool) {
	for i := range industries {
		if match(industries[i]) {
			return &industries[i], true
		}
	}
	return nil, false
}

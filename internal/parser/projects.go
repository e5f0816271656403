package parser

import (
	"strings"

	"resume-match-go/internal/types"
)

// ExtractProjects 归并 PROJECTS 章节：标题式行（章节标题样式，或不超过
// 五个词的全大写行）开启新项目，其余非空行作为当前项目的细节。
func (p *ResumeParser) ExtractProjects(lines []string, boundaries map[SectionKind]int) []types.ProjectEntry {
	start, end, ok := sectionRange(SectionProjects, boundaries, len(lines))
	if !ok {
		return nil
	}

	var projects []types.ProjectEntry
	current := types.ProjectEntry{}
	for _, raw := range lines[start:end] {
		clean := CleanText(raw)
		if isSectionHeader(clean) || isUpperTitle(clean) {
			if current.Title != "" || len(current.Details) > 0 {
				projects = append(projects, current)
			}
			current = types.ProjectEntry{Title: clean}
			continue
		}
		if clean != "" {
			current.Details = append(current.Details, clean)
		}
	}
	if current.Title != "" || len(current.Details) > 0 {
		projects = append(projects, current)
	}
	return projects
}

// isUpperTitle 判断全大写且不超过五个词的短行，视作项目标题。
func isUpperTitle(s string) bool {
	if s == "" {
		return false
	}
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter && len(strings.Fields(s)) <= 5
}

package parser

import (
	"regexp"
	"strings"

	"resume-match-go/internal/types"
)

var (
	eduYearRe = regexp.MustCompile(`(\d{4})(?:\s*[-–]\s*(\d{4}))?`)
	gpaRe     = regexp.MustCompile(`(?i)gpa:?\s*(\d+\.?\d*)`)
)

// ExtractEducation 逐行归并 EDUCATION 章节：
// 院校行开启新条目，学位行附着到当前条目（没有则自建），GPA 随行捕获。
func (p *ResumeParser) ExtractEducation(lines []string, boundaries map[SectionKind]int) []types.EducationEntry {
	start, end, ok := sectionRange(SectionEducation, boundaries, len(lines))
	if !ok {
		return nil
	}

	var education []types.EducationEntry
	var current *types.EducationEntry
	for _, raw := range lines[start:end] {
		line := CleanText(raw)
		if line == "" || len(line) < 5 {
			continue
		}
		lower := strings.ToLower(line)
		hasInstitution := containsAny(lower, p.dict.InstitutionKeywords)
		hasDegree := containsAny(lower, p.dict.DegreeKeywords)

		years := ""
		if m := eduYearRe.FindStringSubmatch(line); m != nil {
			if m[2] != "" {
				years = m[1] + "-" + m[2]
			} else {
				years = m[1]
			}
		}

		switch {
		case hasInstitution:
			if current != nil {
				education = append(education, *current)
			}
			current = &types.EducationEntry{Institution: line, Years: years}
		case hasDegree:
			if current != nil {
				current.Degree = line
				if years != "" && current.Years == "" {
					current.Years = years
				}
			} else {
				current = &types.EducationEntry{Degree: line, Years: years}
			}
		}

		if m := gpaRe.FindStringSubmatch(line); m != nil && current != nil {
			current.GPA = m[1]
		}
	}
	if current != nil && (current.Institution != "" || current.Degree != "") {
		education = append(education, *current)
	}
	return education
}

package parser

import (
	"strings"
	"unicode"
)

// SectionKind 简历章节类型
type SectionKind string

const (
	SectionExperience     SectionKind = "EXPERIENCE"
	SectionEducation      SectionKind = "EDUCATION"
	SectionSkills         SectionKind = "SKILLS"
	SectionCertifications SectionKind = "CERTIFICATIONS"
	SectionProjects       SectionKind = "PROJECTS"
	SectionSummary        SectionKind = "SUMMARY"
)

// sectionHeaderStems 判定"像章节标题"时使用的词干。
// 注意 "summary" 的同义词（objective/profile/about）只在摘要提取的
// 前十行扫描中使用，这里保持与边界探测一致的六个词干。
var sectionHeaderStems = []string{
	"experience", "education", "certifications",
	"skills", "projects", "summary",
}

// maxHeaderLength 超过该长度的行不视为章节标题
const maxHeaderLength = 50

// isSectionHeader 判断一行是否像章节标题：
// 非空、长度不超过50、且包含任一已知词干。
func isSectionHeader(line string) bool {
	if len(line) == 0 || len(line) > maxHeaderLength {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, stem := range sectionHeaderStems {
		if strings.Contains(lower, stem) {
			return true
		}
	}
	return false
}

// alphaDensityTooLow 非字母字符占比超过70%的行直接跳过，
// 过滤分隔线、页码之类的噪声行。
func alphaDensityTooLow(line string) bool {
	nonAlpha := 0
	for _, r := range line {
		if !unicode.IsLetter(r) || r > unicode.MaxASCII {
			nonAlpha++
		}
	}
	return float64(nonAlpha) > float64(len([]rune(line)))*0.7
}

// FindSectionBoundaries 扫描行序列，为六类章节各定位首个标题行下标。
// 每类章节只记录第一次命中，之后的候选行被忽略；未找到的章节不出现在结果中。
func (p *ResumeParser) FindSectionBoundaries(lines []string) map[SectionKind]int {
	boundaries := make(map[SectionKind]int)

	kinds := []struct {
		kind     SectionKind
		keywords []string
	}{
		{SectionExperience, p.dict.ExperienceKeywords},
		{SectionEducation, p.dict.EducationKeywords},
		{SectionSkills, p.dict.SkillsKeywords},
		{SectionCertifications, p.dict.CertificationKeywords},
		{SectionProjects, p.dict.ProjectsKeywords},
		{SectionSummary, p.dict.SummaryKeywords},
	}

	for i, line := range lines {
		clean := CleanText(line)
		lower := strings.ToLower(clean)
		if len(lower) < 3 || alphaDensityTooLow(lower) {
			continue
		}
		for _, k := range kinds {
			if _, found := boundaries[k.kind]; found {
				continue
			}
			for _, kw := range k.keywords {
				if strings.Contains(lower, kw) && isSectionHeader(clean) {
					boundaries[k.kind] = i
					break
				}
			}
		}
	}
	return boundaries
}

// sectionRange 返回某章节正文的行区间 [start, end)：
// 从标题行的下一行开始，到其后最近的其他章节标题（或文档末尾）为止。
// 章节不存在时返回 ok=false。
func sectionRange(kind SectionKind, boundaries map[SectionKind]int, lineCount int) (start, end int, ok bool) {
	idx, found := boundaries[kind]
	if !found {
		return 0, 0, false
	}
	start = idx + 1
	end = lineCount
	for k, v := range boundaries {
		if k != kind && v > start && v < end {
			end = v
		}
	}
	return start, end, true
}

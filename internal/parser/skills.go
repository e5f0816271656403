package parser

import (
	"regexp"
	"strings"
)

// 技能区的通用分隔符：冒号、逗号、竖线、分号、项目符号、斜杠等
var skillDelimiterRe = regexp.MustCompile(`[:,\|;•·\n/\\]+`)

// ExtractSkills 把 SKILLS 章节的全部行拼成一段文本，按通用分隔符切分，
// 忽略分类标签，去重后按首次出现顺序返回。
func (p *ResumeParser) ExtractSkills(lines []string, boundaries map[SectionKind]int) []string {
	start, end, ok := sectionRange(SectionSkills, boundaries, len(lines))
	if !ok {
		return nil
	}

	text := strings.Join(lines[start:end], " ")
	var skills []string
	seen := make(map[string]struct{})
	for _, token := range skillDelimiterRe.Split(text, -1) {
		skill := strings.TrimSpace(token)
		if len(skill) <= 1 {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}
	return skills
}

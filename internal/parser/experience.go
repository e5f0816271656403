package parser

import (
	"regexp"
	"strings"
	"unicode"

	"resume-match-go/internal/types"
)

// 工作经历状态机相关的正则。编译一次，解析时复用。
var (
	headerDateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s*\d{4}`),
		regexp.MustCompile(`\d{1,2}/\d{4}`),
		regexp.MustCompile(`\d{4}\s*[-–]\s*\d{4}`),
		regexp.MustCompile(`(?i)\d{4}\s*[-–]\s*Present`),
		regexp.MustCompile(`(?i)Present`),
		regexp.MustCompile(`(?i)\d{4}\s*to\s*\d{4}`),
	}

	durationRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s*\d{4}\s*[-–]\s*(?:(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s*\d{4}|Present))`),
		regexp.MustCompile(`(?i)(\d{4}\s*[-–]\s*(?:\d{4}|Present))`),
		regexp.MustCompile(`(?i)(\d{1,2}/\d{4}\s*[-–]\s*(?:\d{1,2}/\d{4}|Present))`),
	}

	trailingDashRe = regexp.MustCompile(`\s*[-–]\s*$`)
	leadingDashRe  = regexp.MustCompile(`^\s*[-–]\s*`)

	// 三种头部形态：公司,地点-职位 / 公司-职位,地点 / 职位 at 公司[,地点]
	headerForm1Re = regexp.MustCompile(`^(.+?),\s*([A-Z][A-Za-z\s]+)\s*[-–]\s*(.+)$`)
	headerForm2Re = regexp.MustCompile(`^(.+?)\s*[-–]\s*(.+?),\s*([A-Z][A-Za-z\s]+)$`)
	headerForm3Re = regexp.MustCompile(`(?i)^(.+?)\s+at\s+(.+?)(?:,\s*(.+?))?$`)

	genericDashRe = regexp.MustCompile(`\s*[-–]\s*`)
)

var headerSeparators = []string{" - ", " – ", " | ", ",", " at "}

// ExtractExperience 在 EXPERIENCE 章节内运行行级状态机：
// 职位头行开启新条目，其后的要点行归入当前条目的职责列表。
func (p *ResumeParser) ExtractExperience(lines []string, boundaries map[SectionKind]int) []types.JobEntry {
	start, end, ok := sectionRange(SectionExperience, boundaries, len(lines))
	if !ok {
		return nil
	}

	var experiences []types.JobEntry
	var current *types.JobEntry
	for _, raw := range lines[start:end] {
		line := CleanText(raw)
		if line == "" {
			continue
		}
		if p.isJobHeader(line) {
			if current != nil {
				experiences = append(experiences, *current)
			}
			job := p.parseJobHeader(line)
			current = &job
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || p.isResponsibilityLine(line) {
			resp := CleanText(strings.TrimSpace(strings.TrimLeft(line, "•-*")))
			if resp != "" {
				current.Responsibilities = append(current.Responsibilities, resp)
			}
			continue
		}
		if len(strings.Fields(line)) > 3 {
			// 软换行修复：小写开头的续行并入上一条职责
			if n := len(current.Responsibilities); n > 0 {
				if unicode.IsLower(rune(line[0])) {
					current.Responsibilities[n-1] += " " + line
				} else {
					current.Responsibilities = append(current.Responsibilities, line)
				}
			} else {
				current.Responsibilities = append(current.Responsibilities, line)
			}
		}
	}
	if current != nil {
		experiences = append(experiences, *current)
	}
	return experiences
}

// isJobHeader 判断一行是否为职位头：须含日期，且含分隔符或职称指示词。
func (p *ResumeParser) isJobHeader(line string) bool {
	if line == "" || len(line) < 10 {
		return false
	}
	hasDate := false
	for _, re := range headerDateRes {
		if re.MatchString(line) {
			hasDate = true
			break
		}
	}
	if !hasDate {
		return false
	}
	for _, sep := range headerSeparators {
		if strings.Contains(line, sep) {
			return true
		}
	}
	lower := strings.ToLower(line)
	for _, indicator := range p.dict.JobTitleIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// parseJobHeader 先剥离日期区间作为 Duration，再按四种形态分解剩余文本。
func (p *ResumeParser) parseJobHeader(line string) types.JobEntry {
	var job types.JobEntry
	for _, re := range durationRes {
		if m := re.FindStringSubmatch(line); m != nil {
			job.Duration = strings.TrimSpace(m[1])
			line = strings.TrimSpace(strings.Replace(line, m[1], "", 1))
			break
		}
	}
	line = trailingDashRe.ReplaceAllString(line, "")
	line = leadingDashRe.ReplaceAllString(line, "")

	if m := headerForm1Re.FindStringSubmatch(line); m != nil {
		job.Company = strings.TrimSpace(m[1])
		job.Location = strings.TrimSpace(m[2])
		job.Title = strings.TrimSpace(m[3])
		return job
	}
	if m := headerForm2Re.FindStringSubmatch(line); m != nil {
		job.Company = strings.TrimSpace(m[1])
		job.Title = strings.TrimSpace(m[2])
		job.Location = strings.TrimSpace(m[3])
		return job
	}
	if m := headerForm3Re.FindStringSubmatch(line); m != nil {
		job.Title = strings.TrimSpace(m[1])
		job.Company = strings.TrimSpace(m[2])
		if m[3] != "" {
			job.Location = strings.TrimSpace(m[3])
		}
		return job
	}

	if strings.Contains(line, " - ") || strings.Contains(line, " – ") {
		parts := genericDashRe.Split(line, 2)
		if len(parts) == 2 {
			part1 := strings.TrimSpace(parts[0])
			part2 := strings.TrimSpace(parts[1])
			job.Company = part1
			job.Title = part2
			lower2 := strings.ToLower(part2)
			if !containsAny(strings.ToLower(part1), p.dict.CompanyIndicators) && containsAny(lower2, p.dict.CompanyIndicators) {
				job.Company = part2
				job.Title = part1
			}
		}
	}
	if job.Company == "" && job.Title == "" {
		job.Title = line
	}
	return job
}

// isResponsibilityLine 识别无项目符号的职责描述行。
func (p *ResumeParser) isResponsibilityLine(line string) bool {
	words := strings.Fields(line)
	if len(words) < 4 {
		return false
	}
	if isSectionHeader(line) {
		return false
	}
	lower := strings.ToLower(line)
	for _, verb := range p.dict.ActionVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return len(words) > 8
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

package parser

import (
	"strings"
	"time"

	"resume-match-go/internal/types"
)

// DefaultParserVersion 当前启发式解析器的版本号，写入解析元信息
const DefaultParserVersion = "2.0"

// ResumeParser 启发式简历解析器。
// 所有提取阶段都是同步、无副作用的纯函数式处理，
// 同一个实例可以安全地并发解析互不相关的简历。
type ResumeParser struct {
	dict    *Dictionary
	version string
	now     func() time.Time // 可注入时钟，供"Present"日期与元信息时间戳使用
}

// ParserOption 解析器配置选项
type ParserOption func(*ResumeParser)

// WithDictionary 替换内置词表
func WithDictionary(dict *Dictionary) ParserOption {
	return func(p *ResumeParser) {
		if dict != nil {
			p.dict = dict
		}
	}
}

// WithVersion 覆盖解析器版本号
func WithVersion(version string) ParserOption {
	return func(p *ResumeParser) {
		p.version = version
	}
}

// WithClock 注入时钟，测试中用于固定"Present"的语义
func WithClock(now func() time.Time) ParserOption {
	return func(p *ResumeParser) {
		if now != nil {
			p.now = now
		}
	}
}

// NewResumeParser 创建解析器实例
func NewResumeParser(opts ...ParserOption) *ResumeParser {
	p := &ResumeParser{
		dict:    DefaultDictionary(),
		version: DefaultParserVersion,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse 将一份纯文本简历解析为结构化记录。
// 对畸形或非典型排版不会报错：各提取器都返回尽力而为、可能为空的结果，
// 即便一个章节都没识别出来，也会产出一条字段大多为空的合法记录。
func (p *ResumeParser) Parse(resumeText string, fileName string) *types.ResumeRecord {
	contact := p.ExtractContactInfo(resumeText)
	lines := SplitLines(resumeText)
	boundaries := p.FindSectionBoundaries(lines)

	summary := p.ExtractSummary(lines, boundaries)
	experiences := p.ExtractExperience(lines, boundaries)
	education := p.ExtractEducation(lines, boundaries)
	projects := p.ExtractProjects(lines, boundaries)
	certifications := p.ExtractCertifications(lines, boundaries, resumeText)
	skills := p.ExtractSkills(lines, boundaries)

	currentTitle := ""
	if len(experiences) > 0 {
		currentTitle = experiences[0].Title
	}

	record := &types.ResumeRecord{
		FileName:             fileName,
		Summary:              summary,
		TotalExperienceYears: p.CalculateTotalExperience(experiences),
		CurrentTitle:         currentTitle,
		Experiences:          experiences,
		Education:            education,
		Certifications:       certifications,
		Skills:               skills,
		Projects:             projects,
		ParsingMetadata: types.ParsingMetadata{
			ParsingTimestamp: p.now(),
			ParserVersion:    p.version,
		},
	}
	record.SetContactInfo(contact)
	p.buildSearchText(record)
	return record
}

// buildSearchText 拼装各部分的平铺文本与两个全文检索串
func (p *ResumeParser) buildSearchText(r *types.ResumeRecord) {
	r.AllSkillsText = strings.Join(r.Skills, " ")

	var expParts []string
	for _, exp := range r.Experiences {
		expParts = append(expParts, strings.Join(exp.Responsibilities, " "))
	}
	r.AllExperienceText = strings.Join(expParts, " ")

	var projParts []string
	for _, proj := range r.Projects {
		projParts = append(projParts, strings.Join(proj.Details, " "))
	}
	r.AllProjectText = strings.Join(projParts, " ")

	var eduParts []string
	for _, edu := range r.Education {
		eduParts = append(eduParts, edu.Institution+" "+edu.Degree+edu.GPA)
	}
	r.AllEducationText = strings.Join(eduParts, " ")

	r.AllCertificationsText = strings.Join(r.Certifications, " ")

	r.SearchableContent = strings.Join([]string{
		r.Summary,
		r.AllSkillsText, r.AllExperienceText,
		r.AllProjectText, r.AllCertificationsText,
	}, " ")

	// 送往关键词增强的内容刻意不包含证书文本
	r.SearchableOllamaContent = strings.Join([]string{
		r.Summary,
		r.AllExperienceText, r.AllProjectText,
		r.AllSkillsText,
	}, " ")
}

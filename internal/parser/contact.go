package parser

import (
	"regexp"
	"strings"

	"resume-match-go/internal/types"
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// 北美与国际两种号段写法，先匹配到的生效
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{1,4}[-.\s]?\d{3}[-.\s]?\d{3,4}`),
	}

	linkedinRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)linkedin\.com/in/[A-Za-z0-9_-]+`),
		regexp.MustCompile(`(?i)linkedin\.com/pub/[A-Za-z0-9_-]+`),
	}

	githubRe = regexp.MustCompile(`(?i)github\.com/[A-Za-z0-9_-]+`)

	websiteRe = regexp.MustCompile(`https?://[^\s]+`)
)

// ExtractContactInfo 在全文上做五次独立的单遍正则搜索，每个字段首个命中生效。
// 姓名与地点是已知缺口，这里不做尝试。
func (p *ResumeParser) ExtractContactInfo(text string) types.ContactInfo {
	var info types.ContactInfo

	if m := emailRe.FindString(text); m != "" {
		info.Email = m
	}

	for _, re := range phoneRes {
		if m := re.FindString(text); m != "" {
			info.Phone = m
			break
		}
	}

	for _, re := range linkedinRes {
		if m := re.FindString(text); m != "" {
			info.LinkedIn = m
			break
		}
	}

	if m := githubRe.FindString(text); m != "" {
		info.GitHub = m
	}

	// 通用URL兜底作为个人网站，排除linkedin/github链接
	if m := websiteRe.FindString(text); m != "" {
		lower := strings.ToLower(m)
		if !strings.Contains(lower, "linkedin") && !strings.Contains(lower, "github") {
			info.Website = m
		}
	}

	return info
}

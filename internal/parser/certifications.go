package parser

import (
	"regexp"
	"strings"
)

var (
	certDelimiters = []string{"|", ",", ";", "\n", "•", "·"}

	certParenRe = regexp.MustCompile(`\([^)]*\)`)
	certYearRe  = regexp.MustCompile(`\d{4}`)

	// 全文扫描已知证书命名模式，补充章节内遗漏的证书
	certPatternRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([A-Z][A-Za-z\s]+(?:Certified|Certification|Certificate))`),
		regexp.MustCompile(`(?i)(PMP|PMI|CISSP|CISA|CISM|CPA|CFA|FRM|SHRM|PHR)`),
		regexp.MustCompile(`(?i)([A-Z]+\s+Certified\s+[A-Za-z\s]+)`),
		regexp.MustCompile(`(?i)(Microsoft\s+Certified\s+[^,\n]+)`),
		regexp.MustCompile(`(?i)(AWS\s+Certified\s+[^,\n]+)`),
		regexp.MustCompile(`(?i)(Google\s+[^,\n]+\s+Certificate)`),
		regexp.MustCompile(`(?i)(CompTIA\s+[A-Z]+)`),
		regexp.MustCompile(`(?i)(Cisco\s+[A-Z]+)`),
		regexp.MustCompile(`(?i)(Oracle\s+Certified\s+[^,\n]+)`),
		regexp.MustCompile(`(?i)(Salesforce\s+Certified\s+[^,\n]+)`),
	}
)

// ExtractCertifications 两路提取：章节内按首个命中的分隔符切分并剥掉
// 括号注记和年份，全文再按已知证书模式扫描，合并去重。
func (p *ResumeParser) ExtractCertifications(lines []string, boundaries map[SectionKind]int, fullText string) []string {
	var certifications []string
	seen := make(map[string]struct{})
	add := func(cert string) {
		if _, dup := seen[cert]; dup {
			return
		}
		seen[cert] = struct{}{}
		certifications = append(certifications, cert)
	}

	if start, end, ok := sectionRange(SectionCertifications, boundaries, len(lines)); ok {
		text := strings.Join(lines[start:end], " ")
		for _, delim := range certDelimiters {
			if !strings.Contains(text, delim) {
				continue
			}
			for _, part := range strings.Split(text, delim) {
				cert := strings.TrimSpace(part)
				if len(cert) <= 3 {
					continue
				}
				cert = strings.TrimSpace(certParenRe.ReplaceAllString(cert, ""))
				cert = strings.TrimSpace(certYearRe.ReplaceAllString(cert, ""))
				if cert != "" {
					add(cert)
				}
			}
			break
		}
	}

	for _, re := range certPatternRes {
		for _, m := range re.FindAllStringSubmatch(fullText, -1) {
			cert := strings.TrimSpace(m[1])
			if len(cert) > 3 {
				add(cert)
			}
		}
	}
	return certifications
}

package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"resume-match-go/internal/types"
)

var tenureRangeRes = []*regexp.Regexp{
	regexp.MustCompile(`([A-Za-z]{3,9} \d{4})\s*[-–]\s*([A-Za-z]{3,9} \d{4}|Present)`),
	regexp.MustCompile(`(\d{4})\s*[-–]\s*(\d{4}|Present)`),
	regexp.MustCompile(`(\d{2}/\d{4})\s*[-–]\s*(\d{2}/\d{4}|Present)`),
}

var tenureDateLayouts = []string{"Jan 2006", "January 2006", "2006", "01/2006"}

// CalculateTotalExperience 汇总各段工作的月数，输出 "N years, M months"。
// 无法解析的区间计 0 个月，"Present" 以当前时间封顶。
func (p *ResumeParser) CalculateTotalExperience(experiences []types.JobEntry) string {
	totalMonths := 0
	for _, exp := range experiences {
		if exp.Duration == "" {
			continue
		}
		totalMonths += p.durationMonths(exp.Duration)
	}
	return fmt.Sprintf("%d years, %d months", totalMonths/12, totalMonths%12)
}

func (p *ResumeParser) durationMonths(duration string) int {
	for _, re := range tenureRangeRes {
		m := re.FindStringSubmatch(duration)
		if m == nil {
			continue
		}
		start, ok := parseTenureDate(m[1])
		if !ok {
			return 0
		}
		var end time.Time
		if strings.EqualFold(strings.TrimSpace(m[2]), "present") {
			end = p.now()
		} else {
			end, ok = parseTenureDate(m[2])
			if !ok {
				return 0
			}
		}
		months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
		if months < 0 {
			return 0
		}
		return months
	}
	return 0
}

// parseTenureDate 解析年、月/年、月份名加年份三类日期；缺失的月份按一月算。
func parseTenureDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range tenureDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// "Sept 2021" 这类四字母缩写不在标准布局内，截到三字母重试
	if fields := strings.Fields(s); len(fields) == 2 && len(fields[0]) > 3 {
		if t, err := time.Parse("Jan 2006", fields[0][:3]+" "+fields[1]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

package parser

import "strings"

// summaryScanKeywords 前十行扫描时识别摘要标题的关键词
var summaryScanKeywords = []string{"summary", "objective", "profile", "about"}

// ExtractSummary 提取摘要/目标段落。
// 若文档第一行本身就是章节标题（且不是位于行0的摘要标题），
// 说明没有前言段落，直接返回空摘要。
func (p *ResumeParser) ExtractSummary(lines []string, boundaries map[SectionKind]int) string {
	if len(lines) == 0 {
		return ""
	}

	if isSectionHeader(lines[0]) {
		if idx, ok := boundaries[SectionSummary]; !ok || idx != 0 {
			return ""
		}
	}

	var start, end int
	if idx, ok := boundaries[SectionSummary]; ok {
		// 有显式摘要章节：正文从标题下一行到其后最近的章节边界
		start = idx + 1
		end = len(lines)
		for _, v := range boundaries {
			if v > start && v < end {
				end = v
			}
		}
	} else {
		// 无显式章节：前十行内找摘要关键词（摘要从下一行开始），
		// 或找到第一个超过10个词的稠密行（摘要从该行开始）；都没有则从行0开始
		start = -1
		limit := len(lines)
		if limit > 10 {
			limit = 10
		}
		for i := 0; i < limit; i++ {
			lower := strings.ToLower(lines[i])
			matched := false
			for _, kw := range summaryScanKeywords {
				if strings.Contains(lower, kw) {
					start = i + 1
					matched = true
					break
				}
			}
			if matched {
				break
			}
			if len(strings.Fields(lines[i])) > 10 {
				start = i
				break
			}
		}
		if start < 0 {
			start = 0
		}

		end = len(lines)
		if len(boundaries) > 0 {
			earliest := -1
			for _, v := range boundaries {
				if earliest < 0 || v < earliest {
					earliest = v
				}
			}
			if earliest > start {
				end = earliest
			}
		}
	}

	var parts []string
	for i := start; i < end && i < len(lines); i++ {
		clean := CleanText(lines[i])
		if clean != "" && !isSectionHeader(clean) {
			parts = append(parts, clean)
		}
	}
	return strings.Join(parts, " ")
}

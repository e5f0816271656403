package parser

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	leadingBullet = regexp.MustCompile(`^[•·▪▫◦‣⁃]\s*`)
	nonASCIIRe    = regexp.MustCompile("[^\x00-\x7F]+")
)

// CleanText 规范化一行文本：压缩空白、去掉单个前导项目符号、
// 丢弃非ASCII字符并修剪首尾。纯函数，幂等。
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	text = leadingBullet.ReplaceAllString(text, "")
	text = nonASCIIRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SplitLines 将原始文本拆成去除空白后的非空行序列，
// 这是所有章节启发式共同操作的单位。
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	// 折叠空白并去掉首尾空白
	assert.Equal(t, "hello world", CleanText("  hello   world  "))

	// 去掉行首项目符号
	assert.Equal(t, "Led a team", CleanText("• Led a team"))
	assert.Equal(t, "Led a team", CleanText("‣ Led a team"))

	// 非ASCII字符替换为空格后再折叠
	assert.Equal(t, "caf menu", CleanText("café menu"))
	assert.Equal(t, "A B", CleanText("A→B"))

	// 空输入
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   "))
}

func TestCleanTextIdempotent(t *testing.T) {
	// 清洗过的文本再清洗一次应保持不变
	inputs := []string{
		"• Designed résumé pipeline  with   tabs\tand spaces",
		"·▪ multiple bullets",
		"plain ascii text",
	}
	for _, in := range inputs {
		once := CleanText(in)
		assert.Equal(t, once, CleanText(once), "输入: %q", in)
	}
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("first\n\n  second  \n\t\nthird")
	assert.Equal(t, []string{"first", "second", "third"}, lines)

	assert.Empty(t, SplitLines(""))
	assert.Empty(t, SplitLines("\n\n\n"))
}

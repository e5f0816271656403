package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSummaryExplicitSection(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"John Doe",
		"Professional Summary",
		"Seasoned engineer focused on data platforms.",
		"Ten years across fintech and retail.",
		"Work Experience",
		"Acme Corp, New York - Software Engineer Jan 2019 - Present",
	}
	boundaries := p.FindSectionBoundaries(lines)

	summary := p.ExtractSummary(lines, boundaries)
	assert.Equal(t, "Seasoned engineer focused on data platforms. Ten years across fintech and retail.", summary)
}

func TestExtractSummaryFirstLineHeader(t *testing.T) {
	p := NewResumeParser()

	// 首行就是非摘要章节标题：没有前言段落
	lines := []string{
		"Work Experience",
		"Acme Corp, New York - Software Engineer Jan 2019 - Present",
	}
	boundaries := p.FindSectionBoundaries(lines)
	assert.Equal(t, "", p.ExtractSummary(lines, boundaries))

	// 首行是行0处的摘要标题：正常提取
	lines = []string{
		"Summary",
		"Engineer who ships reliable systems.",
	}
	boundaries = p.FindSectionBoundaries(lines)
	assert.Equal(t, "Engineer who ships reliable systems.", p.ExtractSummary(lines, boundaries))
}

func TestExtractSummaryImplicitDenseLine(t *testing.T) {
	p := NewResumeParser()

	// 无摘要章节：超过10个词的稠密行视作摘要起点
	lines := []string{
		"John Doe",
		"Dedicated engineer with over ten years of building and operating large systems.",
		"Work Experience",
		"Acme Corp, New York - Software Engineer Jan 2019 - Present",
	}
	boundaries := p.FindSectionBoundaries(lines)

	summary := p.ExtractSummary(lines, boundaries)
	assert.Equal(t, "Dedicated engineer with over ten years of building and operating large systems.", summary)
}

func TestExtractSummaryEmptyInput(t *testing.T) {
	p := NewResumeParser()
	assert.Equal(t, "", p.ExtractSummary(nil, map[SectionKind]int{}))
}

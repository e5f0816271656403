package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindSectionBoundaries(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"John Doe",
		"Professional Summary",
		"Seasoned engineer with a decade of experience building systems.",
		"Work Experience",
		"Senior Engineer at Acme Corp, Jan 2019 - Present",
		"Education",
		"State University",
		"Skills",
		"Go, Python, SQL",
	}

	boundaries := p.FindSectionBoundaries(lines)

	assert.Equal(t, 1, boundaries[SectionSummary])
	assert.Equal(t, 3, boundaries[SectionExperience])
	assert.Equal(t, 5, boundaries[SectionEducation])
	assert.Equal(t, 7, boundaries[SectionSkills])
	_, found := boundaries[SectionProjects]
	assert.False(t, found, "没有项目章节时不应出现 PROJECTS 边界")
}

func TestFindSectionBoundariesFirstMatchWins(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"Skills",
		"Go, Rust",
		"Additional Skills",
		"Kubernetes",
	}

	boundaries := p.FindSectionBoundaries(lines)

	// 同类章节出现多次时只记录首个标题
	assert.Equal(t, 0, boundaries[SectionSkills])
}

func TestFindSectionBoundariesSkipsNoiseLines(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"ed",                   // 过短
		"====================", // 字母密度过低
		"Education",
	}

	boundaries := p.FindSectionBoundaries(lines)

	assert.Equal(t, 2, boundaries[SectionEducation])
}

func TestIsSectionHeader(t *testing.T) {
	assert.True(t, isSectionHeader("Work Experience"))
	assert.True(t, isSectionHeader("SKILLS"))
	assert.False(t, isSectionHeader(""))

	// 超过50字符的行即便包含词干也不算标题
	long := "In my experience the most important thing about engineering is patience"
	assert.False(t, isSectionHeader(long))

	assert.False(t, isSectionHeader("John Doe"))
}

func TestSectionRange(t *testing.T) {
	boundaries := map[SectionKind]int{
		SectionExperience: 2,
		SectionEducation:  6,
		SectionSkills:     9,
	}

	start, end, ok := sectionRange(SectionExperience, boundaries, 12)
	assert.True(t, ok)
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)

	// 最后一个章节延伸到文档末尾
	start, end, ok = sectionRange(SectionSkills, boundaries, 12)
	assert.True(t, ok)
	assert.Equal(t, 10, start)
	assert.Equal(t, 12, end)

	_, _, ok = sectionRange(SectionProjects, boundaries, 12)
	assert.False(t, ok)
}

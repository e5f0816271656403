package parser

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullResumeText = `John Doe
john.doe@example.com
(555) 123-4567
linkedin.com/in/johndoe

Professional Summary
Backend engineer focused on data-heavy platforms.

Work Experience
Acme Corp, New York - Software Engineer Jan 2019 - Jan 2021
• Led development of the billing platform
• Designed the event ingestion pipeline for customer data

Education
State University 2014-2018
Bachelor of Science in Computer Science

Skills
Go, Python, PostgreSQL

Projects
TRADE ANALYTICS ENGINE
Built real-time dashboards over streaming market data.
`

func TestParseFullResume(t *testing.T) {
	p := NewResumeParser(WithClock(func() time.Time {
		return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	}))

	record := p.Parse(fullResumeText, "john_doe.pdf")
	require.NotNil(t, record)

	assert.Equal(t, "john_doe.pdf", record.FileName)
	assert.Equal(t, "john.doe@example.com", record.Email)
	assert.Equal(t, "(555) 123-4567", record.Phone)
	assert.Contains(t, record.LinkedIn, "linkedin.com/in/johndoe")

	assert.Equal(t, "Backend engineer focused on data-heavy platforms.", record.Summary)

	require.Len(t, record.Experiences, 1)
	assert.Equal(t, "Acme Corp", record.Experiences[0].Company)
	assert.Equal(t, "Software Engineer", record.Experiences[0].Title)
	assert.Equal(t, "Software Engineer", record.CurrentTitle)
	assert.Equal(t, "2 years, 0 months", record.TotalExperienceYears)

	require.Len(t, record.Education, 1)
	assert.Equal(t, "State University 2014-2018", record.Education[0].Institution)

	assert.Equal(t, []string{"Go", "Python", "PostgreSQL"}, record.Skills)

	require.Len(t, record.Projects, 1)
	assert.Equal(t, "TRADE ANALYTICS ENGINE", record.Projects[0].Title)

	// 平铺文本
	assert.Equal(t, "Go Python PostgreSQL", record.AllSkillsText)
	assert.Contains(t, record.AllExperienceText, "Led development of the billing platform")
	assert.Contains(t, record.AllProjectText, "real-time dashboards")
	assert.Contains(t, record.AllEducationText, "State University")

	// 检索串按固定顺序拼装；送往关键词增强的版本不含证书
	assert.True(t, strings.HasPrefix(record.SearchableContent, record.Summary))
	assert.Contains(t, record.SearchableContent, record.AllSkillsText)
	assert.Contains(t, record.SearchableOllamaContent, record.AllExperienceText)

	assert.Equal(t, "2.0", record.ParsingMetadata.ParserVersion)
	assert.Equal(t, 2024, record.ParsingMetadata.ParsingTimestamp.Year())
}

func TestParseMalformedInputNeverFails(t *testing.T) {
	p := NewResumeParser()

	inputs := []string{
		"",
		"   \n\n\t  ",
		"just one line of plain text",
		strings.Repeat("absurdly long line without structure ", 200),
	}
	for _, in := range inputs {
		record := p.Parse(in, "weird.txt")
		require.NotNil(t, record)
		assert.Equal(t, "weird.txt", record.FileName)
		assert.Equal(t, "0 years, 0 months", record.TotalExperienceYears)
		assert.Empty(t, record.Experiences)
	}
}

func TestParseEmptySectionsYieldValidRecord(t *testing.T) {
	p := NewResumeParser()

	record := p.Parse("Education\n\nSkills\n", "empty_sections.pdf")
	require.NotNil(t, record)
	assert.Empty(t, record.Skills)
	assert.Empty(t, record.Education)
	assert.Empty(t, record.CurrentTitle)
}

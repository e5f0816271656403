package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsJobHeader(t *testing.T) {
	p := NewResumeParser()

	// 含日期且含分隔符
	assert.True(t, p.isJobHeader("Software Engineer - Acme Corp, Jan 2019 - Present"))
	// 含日期且含职称指示词
	assert.True(t, p.isJobHeader("Senior Developer 2018 - 2020"))

	// 无日期
	assert.False(t, p.isJobHeader("Software Engineer at Acme Corp"))
	// 过短
	assert.False(t, p.isJobHeader("2019-2020"))
	assert.False(t, p.isJobHeader(""))
}

func TestParseJobHeaderForms(t *testing.T) {
	p := NewResumeParser()

	// 公司, 地点 - 职位
	job := p.parseJobHeader("Acme Corp, New York - Software Engineer Jan 2019 - Dec 2021")
	assert.Equal(t, "Acme Corp", job.Company)
	assert.Equal(t, "New York", job.Location)
	assert.Equal(t, "Software Engineer", job.Title)
	assert.Equal(t, "Jan 2019 - Dec 2021", job.Duration)

	// 公司 - 职位, 地点
	job = p.parseJobHeader("Globex - Data Analyst, Boston 2018 - 2020")
	assert.Equal(t, "Globex", job.Company)
	assert.Equal(t, "Data Analyst", job.Title)
	assert.Equal(t, "Boston", job.Location)
	assert.Equal(t, "2018 - 2020", job.Duration)

	// 职位 at 公司
	job = p.parseJobHeader("Engineering Manager at Initech Jan 2020 - Present")
	assert.Equal(t, "Engineering Manager", job.Title)
	assert.Equal(t, "Initech", job.Company)
	assert.Equal(t, "Jan 2020 - Present", job.Duration)
}

func TestParseJobHeaderGenericDash(t *testing.T) {
	p := NewResumeParser()

	// 无地点的破折号分隔：带公司后缀的一侧视为公司
	job := p.parseJobHeader("Staff Engineer - Hooli Inc 2019 - 2022")
	assert.Equal(t, "Hooli Inc", job.Company)
	assert.Equal(t, "Staff Engineer", job.Title)
}

func TestParseJobHeaderFallback(t *testing.T) {
	p := NewResumeParser()

	// 无法分解时整行作为职位
	job := p.parseJobHeader("Freelance Consultant 2015 - 2017")
	assert.Equal(t, "Freelance Consultant", job.Title)
	assert.Empty(t, job.Company)
	assert.Equal(t, "2015 - 2017", job.Duration)
}

func TestExtractExperience(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"Work Experience",
		"Acme Corp, New York - Software Engineer Jan 2019 - Present",
		"• Led development of the billing platform",
		"- Managed a team of four engineers",
		"Designed and implemented the ingestion pipeline for customer events",
		"Globex - Data Analyst, Boston 2016 - 2018",
		"• Analyzed customer churn across three product lines",
		"Education",
		"State University",
	}
	boundaries := p.FindSectionBoundaries(lines)

	experiences := p.ExtractExperience(lines, boundaries)
	require.Len(t, experiences, 2)

	first := experiences[0]
	assert.Equal(t, "Acme Corp", first.Company)
	assert.Equal(t, "Software Engineer", first.Title)
	require.Len(t, first.Responsibilities, 3)
	assert.Equal(t, "Led development of the billing platform", first.Responsibilities[0])
	assert.Equal(t, "Managed a team of four engineers", first.Responsibilities[1])

	second := experiences[1]
	assert.Equal(t, "Globex", second.Company)
	require.Len(t, second.Responsibilities, 1)
}

func TestExtractExperienceSoftWrapRepair(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"Experience",
		"Acme Corp, New York - Software Engineer Jan 2019 - Present",
		"• Built the reporting service handling millions of rows",
		"with nightly aggregation jobs and alerting",
	}
	boundaries := p.FindSectionBoundaries(lines)

	experiences := p.ExtractExperience(lines, boundaries)
	require.Len(t, experiences, 1)
	require.Len(t, experiences[0].Responsibilities, 1)

	// 小写开头的续行并入上一条职责
	assert.Equal(t,
		"Built the reporting service handling millions of rows with nightly aggregation jobs and alerting",
		experiences[0].Responsibilities[0])
}

func TestExtractExperienceNoSection(t *testing.T) {
	p := NewResumeParser()
	lines := []string{"John Doe", "john@example.com"}

	experiences := p.ExtractExperience(lines, p.FindSectionBoundaries(lines))
	assert.Empty(t, experiences)
}

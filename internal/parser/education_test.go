package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEducation(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"Education",
		"State University 2014-2018",
		"Bachelor of Science in Computer Science",
		"GPA: 3.8",
		"Skills",
		"Go",
	}
	boundaries := p.FindSectionBoundaries(lines)

	education := p.ExtractEducation(lines, boundaries)
	require.Len(t, education, 1)

	entry := education[0]
	assert.Equal(t, "State University 2014-2018", entry.Institution)
	assert.Equal(t, "Bachelor of Science in Computer Science", entry.Degree)
	assert.Equal(t, "2014-2018", entry.Years)
	assert.Equal(t, "3.8", entry.GPA)
}

func TestExtractEducationDegreeOnly(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"Education",
		"Master of Business Administration 2020",
	}
	boundaries := p.FindSectionBoundaries(lines)

	education := p.ExtractEducation(lines, boundaries)
	require.Len(t, education, 1)
	assert.Empty(t, education[0].Institution)
	assert.Equal(t, "Master of Business Administration 2020", education[0].Degree)
	assert.Equal(t, "2020", education[0].Years)
}

func TestExtractEducationMultipleEntries(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"Education",
		"Tech Institute 2010-2014",
		"Bachelor of Engineering",
		"City College 2014-2016",
		"Master of Science",
	}
	boundaries := p.FindSectionBoundaries(lines)

	education := p.ExtractEducation(lines, boundaries)
	require.Len(t, education, 2)
	assert.Equal(t, "Tech Institute 2010-2014", education[0].Institution)
	assert.Equal(t, "Bachelor of Engineering", education[0].Degree)
	assert.Equal(t, "City College 2014-2016", education[1].Institution)
	assert.Equal(t, "Master of Science", education[1].Degree)
}

func TestExtractEducationNoSection(t *testing.T) {
	p := NewResumeParser()
	lines := []string{"Bachelor of Science", "State University"}

	education := p.ExtractEducation(lines, p.FindSectionBoundaries(lines))
	assert.Empty(t, education)
}

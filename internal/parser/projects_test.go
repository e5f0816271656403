package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractProjects(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"Projects",
		"TRADE ANALYTICS ENGINE",
		"Built real-time dashboards over a Kafka ingest layer.",
		"Cut query latency from minutes to seconds.",
		"FLEET TRACKER",
		"Mapped delivery routes for a regional courier.",
	}
	boundaries := p.FindSectionBoundaries(lines)

	projects := p.ExtractProjects(lines, boundaries)
	require.Len(t, projects, 2)

	assert.Equal(t, "TRADE ANALYTICS ENGINE", projects[0].Title)
	require.Len(t, projects[0].Details, 2)
	assert.Equal(t, "Built real-time dashboards over a Kafka ingest layer.", projects[0].Details[0])

	assert.Equal(t, "FLEET TRACKER", projects[1].Title)
	require.Len(t, projects[1].Details, 1)
}

func TestExtractProjectsDetailsWithoutTitle(t *testing.T) {
	p := NewResumeParser()
	lines := []string{
		"Projects",
		"Shipped a budgeting app for personal use.",
	}
	boundaries := p.FindSectionBoundaries(lines)

	projects := p.ExtractProjects(lines, boundaries)
	require.Len(t, projects, 1)
	assert.Empty(t, projects[0].Title)
	assert.Equal(t, []string{"Shipped a budgeting app for personal use."}, projects[0].Details)
}

func TestExtractProjectsNoSection(t *testing.T) {
	p := NewResumeParser()
	lines := []string{"John Doe"}

	assert.Empty(t, p.ExtractProjects(lines, p.FindSectionBoundaries(lines)))
}

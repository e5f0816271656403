package handler

import (
	"testing"

	"resume-match-go/internal/storage/models"
	"resume-match-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDecodeJobRequirement(t *testing.T) {
	job := &models.Job{
		JobID:                 "job-001",
		RequiredKeywordsJSON:  datatypes.JSON(`{"hard_skills":["golang","mysql"],"qualifications":["本科"]}`),
		PreferredKeywordsJSON: datatypes.JSON(`{"tools_and_platforms":["kubernetes"]}`),
	}

	requirement, err := decodeJobRequirement(job)
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "mysql"}, requirement.Required[types.CategoryHardSkills])
	assert.Equal(t, []string{"本科"}, requirement.Required[types.CategoryQualifications])
	assert.Equal(t, []string{"kubernetes"}, requirement.Preferred[types.CategoryToolsAndPlatforms])
}

func TestDecodeJobRequirement_EmptyColumns(t *testing.T) {
	requirement, err := decodeJobRequirement(&models.Job{JobID: "job-002"})
	require.NoError(t, err)
	assert.NotNil(t, requirement.Required)
	assert.NotNil(t, requirement.Preferred)
	assert.Empty(t, requirement.Required)
	assert.Empty(t, requirement.Preferred)
}

func TestDecodeJobRequirement_InvalidJSON(t *testing.T) {
	job := &models.Job{
		JobID:                "job-003",
		RequiredKeywordsJSON: datatypes.JSON(`["not","a","map"`),
	}

	_, err := decodeJobRequirement(job)
	assert.Error(t, err)
}

func strPtr(s string) *string { return &s }

func TestApplyJobUpdate_PartialFields(t *testing.T) {
	job := &models.Job{
		JobID:                 "job-004",
		JobTitle:              "Go开发工程师",
		JobDescriptionText:    "负责简历匹配服务",
		Status:                "ACTIVE",
		RequiredKeywordsJSON:  datatypes.JSON(`{"hard_skills":["golang"]}`),
		PreferredKeywordsJSON: datatypes.JSON(`{"tools_and_platforms":["docker"]}`),
	}

	// 1. 仅更新标题与必备关键词，其余字段保持原值
	err := applyJobUpdate(job, JobUpdateRequest{
		JobTitle:         strPtr("高级Go开发工程师"),
		RequiredKeywords: map[string][]string{"hard_skills": {"golang", "mysql"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "高级Go开发工程师", job.JobTitle)
	assert.Equal(t, "负责简历匹配服务", job.JobDescriptionText)
	assert.Equal(t, "ACTIVE", job.Status)
	assert.JSONEq(t, `{"hard_skills":["golang","mysql"]}`, string(job.RequiredKeywordsJSON))
	assert.JSONEq(t, `{"tools_and_platforms":["docker"]}`, string(job.PreferredKeywordsJSON))

	// 2. 状态单独更新
	err = applyJobUpdate(job, JobUpdateRequest{Status: strPtr("CLOSED")})
	require.NoError(t, err)
	assert.Equal(t, "CLOSED", job.Status)
	assert.Equal(t, "高级Go开发工程师", job.JobTitle)
}

func TestApplyJobUpdate_ClearKeywords(t *testing.T) {
	job := &models.Job{
		JobID:                "job-005",
		RequiredKeywordsJSON: datatypes.JSON(`{"hard_skills":["golang"]}`),
	}

	// 显式携带空map表示清空，与缺省不携带区分
	err := applyJobUpdate(job, JobUpdateRequest{
		RequiredKeywords: map[string][]string{},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(job.RequiredKeywordsJSON))
}

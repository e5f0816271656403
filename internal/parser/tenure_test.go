package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"resume-match-go/internal/types"
)

func fixedClock(year int, month time.Month) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	}
}

func TestCalculateTotalExperience(t *testing.T) {
	p := NewResumeParser(WithClock(fixedClock(2024, time.June)))

	experiences := []types.JobEntry{
		{Duration: "Jan 2019 - Jan 2021"}, // 24 个月
		{Duration: "2015 - 2017"},         // 24 个月
	}

	assert.Equal(t, "4 years, 0 months", p.CalculateTotalExperience(experiences))
}

func TestCalculateTotalExperiencePresent(t *testing.T) {
	p := NewResumeParser(WithClock(fixedClock(2024, time.June)))

	experiences := []types.JobEntry{
		{Duration: "Jan 2024 - Present"}, // 5 个月
	}

	assert.Equal(t, "0 years, 5 months", p.CalculateTotalExperience(experiences))
}

func TestCalculateTotalExperienceSlashDates(t *testing.T) {
	p := NewResumeParser(WithClock(fixedClock(2024, time.June)))

	experiences := []types.JobEntry{
		{Duration: "03/2020 - 09/2021"}, // 18 个月
	}

	assert.Equal(t, "1 years, 6 months", p.CalculateTotalExperience(experiences))
}

func TestCalculateTotalExperienceUnparseable(t *testing.T) {
	p := NewResumeParser(WithClock(fixedClock(2024, time.June)))

	experiences := []types.JobEntry{
		{Duration: "a while back"},
		{Duration: ""},
	}

	// 无法解析的区间计 0，输出格式保持不变
	assert.Equal(t, "0 years, 0 months", p.CalculateTotalExperience(experiences))
}

func TestCalculateTotalExperienceReversedRange(t *testing.T) {
	p := NewResumeParser(WithClock(fixedClock(2024, time.June)))

	experiences := []types.JobEntry{
		{Duration: "2021 - 2019"}, // 负区间按 0 处理
		{Duration: "Feb 2020 - Aug 2020"},
	}

	assert.Equal(t, "0 years, 6 months", p.CalculateTotalExperience(experiences))
}

func TestCalculateTotalExperienceFourLetterMonth(t *testing.T) {
	p := NewResumeParser(WithClock(fixedClock(2024, time.June)))

	experiences := []types.JobEntry{
		{Duration: "Sept 2020 - Sept 2021"}, // 12 个月
		{Duration: "Sept 2021 - Present"},   // 到 2024-06 共 33 个月
	}

	assert.Equal(t, "3 years, 9 months", p.CalculateTotalExperience(experiences))
}

func TestCalculateTotalExperienceEmpty(t *testing.T) {
	p := NewResumeParser()
	assert.Equal(t, "0 years, 0 months", p.CalculateTotalExperience(nil))
}

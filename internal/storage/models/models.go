package models

import (
	"time"

	"gorm.io/datatypes"
)

// ResumeRecordRow 简历提交/解析结果表
// 解析产物整体序列化为JSON存储，结构化查询走combined_keywords_json
type ResumeRecordRow struct {
	SubmissionUUID       string         `gorm:"type:char(36);primaryKey"`
	FileName             string         `gorm:"type:varchar(255)"`
	RawTextMD5           string         `gorm:"type:char(32);index:idx_rr_raw_text_md5"`
	RawTextPathOSS       string         `gorm:"type:varchar(1024)"`
	ResumeDataJSON       datatypes.JSON `gorm:"type:json"`
	CombinedKeywordsJSON datatypes.JSON `gorm:"type:json"`
	ProcessingStatus     string         `gorm:"type:varchar(50);default:'PENDING_PARSING';index:idx_rr_processing_status"`
	ParserVersion        string         `gorm:"type:varchar(50)"`
	ErrorMessage         string         `gorm:"type:text"`
	SubmittedAt          time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_rr_submitted_at"`
	CreatedAt            time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt            time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (ResumeRecordRow) TableName() string {
	return "resume_records"
}

// Job 岗位关键词需求表
type Job struct {
	JobID                 string         `gorm:"type:char(36);primaryKey"`
	JobTitle              string         `gorm:"type:varchar(255);not null"`
	JobDescriptionText    string         `gorm:"type:text"`
	RequiredKeywordsJSON  datatypes.JSON `gorm:"type:json"`
	PreferredKeywordsJSON datatypes.JSON `gorm:"type:json"`
	Status                string         `gorm:"type:varchar(50);default:'ACTIVE';index:idx_jobs_status"`
	CreatedAt             time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt             time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (Job) TableName() string {
	return "jobs"
}

package types

import "time"

// ContactInfo 简历中的联系方式，每个字段独立提取，允许为空
type ContactInfo struct {
	Name     string `json:"name"`     // 暂不提取，保留字段
	Phone    string `json:"phone"`    // 电话号码
	Email    string `json:"email"`    // 邮箱地址
	LinkedIn string `json:"linkedin"` // LinkedIn主页片段
	Location string `json:"location"` // 暂不提取，保留字段
	GitHub   string `json:"github"`   // GitHub主页片段
	Website  string `json:"website"`  // 个人网站（排除linkedin/github）
}

// JobEntry 一段工作经历
type JobEntry struct {
	Company          string   `json:"company"`
	Title            string   `json:"title"`
	Location         string   `json:"location"`
	Duration         string   `json:"duration"` // 原始日期区间字符串，如 "Jan 2019 - Present"
	Responsibilities []string `json:"responsibilities"`
}

// EducationEntry 一段教育经历
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"` // 专业方向，当前启发式不填充
	Years       string `json:"years"` // 年份或年份区间
	GPA         string `json:"gpa"`
}

// ProjectEntry 一个项目条目
type ProjectEntry struct {
	Title   string   `json:"title"`
	Details []string `json:"details"`
}

// ParsingMetadata 解析元信息
type ParsingMetadata struct {
	ParsingTimestamp time.Time `json:"parsing_timestamp"`
	ParserVersion    string    `json:"parser_version"`
}

// ResumeRecord 解析器的最终产出，经关键词增强后视为不可变
type ResumeRecord struct {
	FileName string `json:"file_name"`

	// 联系方式（平铺字段，与存储格式保持一致）
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
	Location string `json:"location"`
	GitHub   string `json:"github"`
	Website  string `json:"website"`

	Summary              string `json:"summary"`
	TotalExperienceYears string `json:"total_experience_years"` // 形如 "N years, M months"
	CurrentTitle         string `json:"current_title"`          // 第一段工作经历的职位，无则为空

	Experiences    []JobEntry       `json:"experiences"`
	Education      []EducationEntry `json:"education"`
	Certifications []string         `json:"certifications"`
	Skills         []string         `json:"skills"`
	Projects       []ProjectEntry   `json:"projects"`

	// 各部分的平铺文本，用于全文检索
	AllSkillsText         string `json:"all_skills_text"`
	AllExperienceText     string `json:"all_experience_text"`
	AllProjectText        string `json:"all_project_text"`
	AllEducationText      string `json:"all_education_text"`
	AllCertificationsText string `json:"all_certifications_text"`

	// SearchableContent 摘要+技能+经历+项目+证书
	SearchableContent string `json:"searchable_content"`
	// SearchableOllamaContent 仅用于关键词增强调用，刻意不含证书
	SearchableOllamaContent string `json:"searchable_ollama_content"`

	// CombinedKeywords 由关键词增强适配器填充；失败时回退为原始技能列表
	CombinedKeywords []string `json:"combined_keywords"`

	ParsingMetadata ParsingMetadata `json:"parsing_metadata"`
}

// SetContactInfo 将联系方式写入平铺字段
func (r *ResumeRecord) SetContactInfo(c ContactInfo) {
	r.Name = c.Name
	r.Phone = c.Phone
	r.Email = c.Email
	r.LinkedIn = c.LinkedIn
	r.Location = c.Location
	r.GitHub = c.GitHub
	r.Website = c.Website
}

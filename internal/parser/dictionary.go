package parser

// Dictionary 解析启发式依赖的全部关键词表。
// 以配置数据的形式注入解析器，便于在测试中替换成备用词表。
type Dictionary struct {
	// 六类章节的标题关键词
	ExperienceKeywords    []string
	EducationKeywords     []string
	SkillsKeywords        []string
	CertificationKeywords []string
	ProjectsKeywords      []string
	SummaryKeywords       []string

	// 职位名指示词，用于工作经历行的识别
	JobTitleIndicators []string

	// 职责行的动作动词
	ActionVerbs []string

	// 教育经历的学位/院校关键词
	DegreeKeywords      []string
	InstitutionKeywords []string

	// 公司后缀词，用于头部分解的兜底分支
	CompanyIndicators []string

	// TechnicalSkillCategories 技术栈分类表。
	// 当前提取路径不使用它做分类，仅作为参考数据保留。
	TechnicalSkillCategories map[string][]string
}

// DefaultDictionary 返回内置词表
func DefaultDictionary() *Dictionary {
	return &Dictionary{
		ExperienceKeywords: []string{
			"experience", "employment", "work history", "professional experience",
			"career history", "work experience", "professional background",
			"employment history", "recent experience", "relevant experience",
		},
		EducationKeywords: []string{
			"education", "academic background", "academic qualifications",
			"educational background", "academic history", "qualifications",
			"degrees", "academic credentials",
		},
		SkillsKeywords: []string{
			"skills", "technical skills", "core competencies", "competencies",
			"technical competencies", "key skills", "expertise", "proficiencies",
			"technologies", "technical proficiencies", "core skills",
			"technical expertise", "skill set",
		},
		CertificationKeywords: []string{
			"certifications", "certificates", "professional certifications",
			"licenses", "credentials", "professional credentials",
			"professional licenses", "industry certifications",
		},
		ProjectsKeywords: []string{
			"projects", "project", "personal projects", "professional projects",
			"key projects", "selected projects", "academic projects",
		},
		SummaryKeywords: []string{
			"summary", "objective", "profile", "about", "professional summary", "career summary",
		},
		JobTitleIndicators: []string{
			"manager", "director", "engineer", "developer", "analyst", "specialist",
			"coordinator", "supervisor", "lead", "senior", "junior", "associate",
			"consultant", "architect", "administrator", "officer", "executive",
			"designer", "researcher", "scientist", "technician", "representative",
		},
		ActionVerbs: []string{
			"led", "managed", "developed", "created", "implemented", "designed",
			"analyzed", "coordinated", "supervised", "maintained", "improved",
			"increased", "decreased", "reduced", "optimized", "streamlined",
			"established", "built", "executed", "delivered", "achieved",
		},
		DegreeKeywords: []string{
			"bachelor", "master", "phd", "doctorate", "associate", "diploma",
			"certificate", "bs", "ba", "ms", "ma", "mba", "md", "jd",
			"bsc", "msc", "beng", "meng", "btech", "mtech",
		},
		InstitutionKeywords: []string{
			"university", "college", "institute", "school", "academy",
			"polytechnic", "conservatory",
		},
		CompanyIndicators: []string{
			"inc", "corp", "llc", "ltd", "company", "group", "firm",
		},
		TechnicalSkillCategories: map[string][]string{
			"programming_languages": {
				"python", "java", "javascript", "c++", "c#", "php", "ruby", "go",
				"rust", "swift", "kotlin", "scala", "r", "matlab", "sql", "html",
				"css", "typescript", "perl", "shell", "bash", "powershell",
			},
			"databases": {
				"mysql", "postgresql", "mongodb", "redis", "cassandra", "oracle",
				"sql server", "sqlite", "elasticsearch", "neo4j", "dynamodb",
				"firebase", "mariadb", "influxdb",
			},
			"frameworks": {
				"react", "angular", "vue", "django", "flask", "spring", "express",
				"nodejs", "laravel", "rails", ".net", "asp.net", "jquery",
				"bootstrap", "tensorflow", "pytorch", "keras",
			},
			"cloud_platforms": {
				"aws", "azure", "gcp", "google cloud", "kubernetes", "docker",
				"terraform", "jenkins", "gitlab", "github", "bitbucket",
				"heroku", "digitalocean", "cloudflare",
			},
			"analytics_tools": {
				"tableau", "powerbi", "qlik", "looker", "excel", "google analytics",
				"mixpanel", "amplitude", "sas", "spss", "r studio", "jupyter",
				"pandas", "numpy", "matplotlib", "seaborn",
			},
			"ai_ml_tools": {
				"tensorflow", "pytorch", "scikit-learn", "keras", "pandas", "numpy",
				"opencv", "nlp", "openai", "huggingface", "spark", "hadoop",
				"mlflow", "airflow", "databricks",
			},
		},
	}
}

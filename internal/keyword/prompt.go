package keyword

// extractionPrompt 关键词提取的提示词模板。
// 输出格式固定成两层：required_keywords / preferred_keywords 各含六个类别，
// 对简历文本两层会被合并，对岗位描述两层分别对应必备与加分要求。
const extractionPrompt = `CRITICAL: You MUST return ONLY valid JSON. NO explanations, NO additional text, NO markdown formatting.

=== TASK: KEYWORD EXTRACTION ===
Extract ALL essential keywords from the text below for ATS-style resume matching.

=== REQUIRED JSON OUTPUT FORMAT ===
{
"required_keywords": {
    "hard_skills": [],
    "tools_and_platforms": [],
    "methodologies_and_frameworks": [],
    "domain_knowledge": [],
    "qualifications": [],
    "experience_indicators": []
},
"preferred_keywords": {
    "hard_skills": [],
    "tools_and_platforms": [],
    "methodologies_and_frameworks": [],
    "domain_knowledge": [],
    "qualifications": [],
    "experience_indicators": []
}
}

=== KEYWORD CATEGORIES ===
1. hard_skills: quantifiable technical competencies (e.g. Python, Statistical Analysis, Machine Learning)
2. tools_and_platforms: specific software, hardware and digital platforms (e.g. AWS, Git, Docker, Jira)
3. methodologies_and_frameworks: named operational approaches (e.g. Agile, Scrum, DevOps, ISO 27001)
4. domain_knowledge: industry-specific expertise, ONLY if explicitly mentioned (e.g. Healthcare, FinTech, GAAP)
5. qualifications: formal credentials and licenses (e.g. Bachelor of Science, PMP, CPA)
6. experience_indicators: quantified experience requirements and seniority markers (e.g. 5+ years)

=== CLASSIFICATION ===
If the text has explicit required vs preferred sections, classify keywords by section placement.
Otherwise, treat "must have", "required", "essential" phrasing as required and
"nice to have", "preferred", "a plus" phrasing as preferred.
When no signal exists, default to required_keywords.

=== TEXT ===
`

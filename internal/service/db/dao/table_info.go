package dao

const (
	// CollectionOrganization 存储组织信息的表。
	CollectionOrganization = "organizations"

	// CollectionSkill 技能词表。
	CollectionSkill = "skills"

	// CollectionInterviewer 面试官信息表，(organizationId, lowerEmail)唯一。
	CollectionInterviewer = "interviewers"

	// CollectionInterviewee 候选人信息表，(organizationId, lowerEmail)唯一。
	CollectionInterviewee = "interviewees"

	// CollectionRoleRequirement 在招岗位表。
	CollectionRoleRequirement = "role_requirements"

	// CollectionInterview 面试信息表。
	CollectionInterview = "interviews"

	// CollectionFeedback 面试反馈表。
	CollectionFeedback = "feedback"
)

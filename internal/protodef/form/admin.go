package form

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// OrganizationCreateForm 创建组织的参数。
type OrganizationCreateForm struct {
	Name string `json:"name" form:"name"`
}

func (o *OrganizationCreateForm) Validate() error {
	return validation.ValidateStruct(o,
		validation.Field(&o.Name, validation.Required, validation.Length(2, 100).Error(ErrNameMsg)),
	)
}

// SkillCreateForm 创建技能词条的参数。
type SkillCreateForm struct {
	Name string `json:"name" form:"name"`
}

func (s *SkillCreateForm) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Name, validation.Required),
	)
}

// InterviewerUpsertForm 新建/更新面试官的参数。
// 同组织下邮箱重复时默认拒绝，Force为操作者确认后改为更新已有记录。
type InterviewerUpsertForm struct {
	Name           string   `json:"name" form:"name"`
	Email          string   `json:"email" form:"email"`
	OrganizationID string   `json:"organizationId" form:"organizationId"`
	Skills         []string `json:"skills" form:"skills"`
	Force          bool     `json:"force" form:"force"`
}

func (i *InterviewerUpsertForm) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.Name, validation.Required, validation.Length(2, 100).Error(ErrNameMsg)),
		validation.Field(&i.Email, validation.Required, is.Email.Error(ErrEmailMsg)),
		validation.Field(&i.OrganizationID, validation.Required),
	)
}

// RoleCreateForm 创建岗位的参数。RequiredSkills可以为空，
// 此时岗位不匹配任何面试官，迫使先补齐技能标注。
type RoleCreateForm struct {
	Title          string   `json:"title" form:"title"`
	OrganizationID string   `json:"organizationId" form:"organizationId"`
	RequiredSkills []string `json:"requiredSkills" form:"requiredSkills"`
}

func (r *RoleCreateForm) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.OrganizationID, validation.Required),
	)
}

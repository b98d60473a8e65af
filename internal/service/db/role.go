package db

import (
	"sort"
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/hire-cube/internal/common/utils"
	errors2 "github.com/solutions/hire-cube/internal/protodef/errors"
	"github.com/solutions/hire-cube/internal/protodef/model"
	"github.com/solutions/hire-cube/internal/service/db/dao"
)

// RoleService 在招岗位维护与按要求技能匹配面试官。
type RoleService struct {
	mongoClient     *mgo.Session
	roleColl        *mgo.Collection
	interviewerColl *mgo.Collection
	xl              *xlog.Logger
}

func NewRoleService(conf utils.MongoConfig, xl *xlog.Logger) (*RoleService, error) {
	if xl == nil {
		xl = xlog.New("hire-cube-role-db")
	}
	mongoClient, err := mgo.Dial(conf.URI + "/" + conf.Database)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	roleColl := mongoClient.DB(conf.Database).C(dao.CollectionRoleRequirement)
	interviewerColl := mongoClient.DB(conf.Database).C(dao.CollectionInterviewer)
	return &RoleService{
		mongoClient:     mongoClient,
		roleColl:        roleColl,
		interviewerColl: interviewerColl,
		xl:              xl,
	}, nil
}

// CreateRole 创建岗位。
func (c *RoleService) CreateRole(xl *xlog.Logger, role *model.RoleRequirementDo) error {
	if xl == nil {
		xl = c.xl
	}
	if role.ID == "" {
		role.ID = utils.NewID()
	}
	role.CreateTime = time.Now()
	err := c.roleColl.Insert(role)
	if err != nil {
		xl.Errorf("failed to insert role requirement, error %v", err)
		return err
	}
	return nil
}

// GetRoleByID 使用ID查找岗位。
func (c *RoleService) GetRoleByID(xl *xlog.Logger, id string) (*model.RoleRequirementDo, error) {
	if xl == nil {
		xl = c.xl
	}
	role := model.RoleRequirementDo{}
	err := c.roleColl.Find(bson.M{"_id": id}).One(&role)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no such role requirement %s", id)
			return nil, &errors2.ServerError{Code: errors2.ServerErrorRoleNotFound}
		}
		xl.Errorf("failed to get role requirement %s, error %v", id, err)
		return nil, err
	}
	return &role, nil
}

// ListByOrganization 列出组织下全部岗位。
func (c *RoleService) ListByOrganization(xl *xlog.Logger, organizationID string) ([]model.RoleRequirementDo, error) {
	if xl == nil {
		xl = c.xl
	}
	roles := []model.RoleRequirementDo{}
	err := c.roleColl.Find(bson.M{"organizationId": organizationID}).Sort("title").All(&roles)
	if err != nil {
		xl.Errorf("failed to list role requirements of organization %s, error %v", organizationID, err)
		return nil, err
	}
	return roles, nil
}

// MatchInterviewers 返回能面该岗位的面试官，按技能重合数降序。
// 岗位未标注要求技能时有意返回空列表，逼着先把技能补齐再排面试。
func (c *RoleService) MatchInterviewers(xl *xlog.Logger, roleID string) ([]model.InterviewerDo, error) {
	if xl == nil {
		xl = c.xl
	}
	role, err := c.GetRoleByID(xl, roleID)
	if err != nil {
		return nil, err
	}
	if len(role.RequiredSkills) == 0 {
		xl.Infof("role %s has no required skills, matching nobody", roleID)
		return []model.InterviewerDo{}, nil
	}
	interviewers := []model.InterviewerDo{}
	err = c.interviewerColl.Find(bson.M{
		"organizationId": role.OrganizationID,
		"skills":         bson.M{"$in": role.RequiredSkills},
	}).All(&interviewers)
	if err != nil {
		xl.Errorf("failed to query interviewers for role %s, error %v", roleID, err)
		return nil, err
	}
	return RankBySkillOverlap(role.RequiredSkills, interviewers), nil
}

// RankBySkillOverlap 按与requiredSkills的重合数降序排列，重合数相同时
// 按面试官ID升序，保证结果可复现。重合为零的剔除。
func RankBySkillOverlap(requiredSkills []string, interviewers []model.InterviewerDo) []model.InterviewerDo {
	required := make(map[string]bool, len(requiredSkills))
	for _, skill := range requiredSkills {
		required[skill] = true
	}
	type rankedInterviewer struct {
		interviewer model.InterviewerDo
		overlap     int
	}
	ranked := make([]rankedInterviewer, 0, len(interviewers))
	seen := make(map[string]bool, len(interviewers))
	for _, interviewer := range interviewers {
		if seen[interviewer.ID] {
			continue
		}
		seen[interviewer.ID] = true
		overlap := 0
		counted := make(map[string]bool, len(interviewer.Skills))
		for _, skill := range interviewer.Skills {
			if required[skill] && !counted[skill] {
				counted[skill] = true
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		ranked = append(ranked, rankedInterviewer{interviewer: interviewer, overlap: overlap})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].overlap != ranked[j].overlap {
			return ranked[i].overlap > ranked[j].overlap
		}
		return ranked[i].interviewer.ID < ranked[j].interviewer.ID
	})
	result := make([]model.InterviewerDo, 0, len(ranked))
	for _, r := range ranked {
		result = append(result, r.interviewer)
	}
	return result
}

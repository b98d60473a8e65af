package db

import (
	"time"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/hire-cube/internal/common/utils"
	errors2 "github.com/solutions/hire-cube/internal/protodef/errors"
	"github.com/solutions/hire-cube/internal/protodef/model"
	"github.com/solutions/hire-cube/internal/service/db/dao"
)

// OrganizationService 组织信息的增删查。组织一旦被面试引用不做级联删除。
type OrganizationService struct {
	mongoClient      *mgo.Session
	organizationColl *mgo.Collection
	xl               *xlog.Logger
}

func NewOrganizationService(conf utils.MongoConfig, xl *xlog.Logger) (*OrganizationService, error) {
	if xl == nil {
		xl = xlog.New("hire-cube-organization-db")
	}
	mongoClient, err := mgo.Dial(conf.URI + "/" + conf.Database)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	organizationColl := mongoClient.DB(conf.Database).C(dao.CollectionOrganization)
	return &OrganizationService{
		mongoClient:      mongoClient,
		organizationColl: organizationColl,
		xl:               xl,
	}, nil
}

// CreateOrganization 创建组织。
func (c *OrganizationService) CreateOrganization(xl *xlog.Logger, organization *model.OrganizationDo) error {
	if xl == nil {
		xl = c.xl
	}
	if organization.ID == "" {
		organization.ID = utils.NewID()
	}
	organization.CreateTime = time.Now()
	err := c.organizationColl.Insert(organization)
	if err != nil {
		if mgo.IsDup(err) {
			return &errors2.ServerError{Code: errors2.ServerErrorDuplicateKey, Summary: "organization already exists"}
		}
		xl.Errorf("failed to insert organization, error %v", err)
		return err
	}
	return nil
}

// GetOrganizationByID 使用ID查找组织。
func (c *OrganizationService) GetOrganizationByID(xl *xlog.Logger, id string) (*model.OrganizationDo, error) {
	if xl == nil {
		xl = c.xl
	}
	organization := model.OrganizationDo{}
	err := c.organizationColl.Find(bson.M{"_id": id}).One(&organization)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no such organization %s", id)
			return nil, &errors2.ServerError{Code: errors2.ServerErrorOrganizationNotFound}
		}
		xl.Errorf("failed to get organization %s, error %v", id, err)
		return nil, err
	}
	return &organization, nil
}

// ListOrganizations 列出全部组织。
func (c *OrganizationService) ListOrganizations(xl *xlog.Logger) ([]model.OrganizationDo, error) {
	if xl == nil {
		xl = c.xl
	}
	organizations := []model.OrganizationDo{}
	err := c.organizationColl.Find(nil).Sort("createTime").All(&organizations)
	if err != nil {
		xl.Errorf("failed to list organizations, error %v", err)
		return nil, err
	}
	return organizations, nil
}

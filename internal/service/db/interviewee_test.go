package db

import (
	"testing"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"

	"github.com/solutions/hire-cube/internal/common/utils"
	"github.com/solutions/hire-cube/internal/protodef/model"
)

// fakeIntervieweeStore 内存版候选人存储，唯一索引语义与mongo一致：
// 身份键重复的Insert返回IsDup错误。
type fakeIntervieweeStore struct {
	rows        []model.IntervieweeDo
	insertCalls int
	// raceRow 不为空时，第一次Insert前会先冒出这条并发写入的记录。
	raceRow *model.IntervieweeDo
}

func (f *fakeIntervieweeStore) FindByIdentity(organizationID, lowerEmail string) (*model.IntervieweeDo, error) {
	for i := range f.rows {
		if f.rows[i].OrganizationID == organizationID && f.rows[i].LowerEmail == lowerEmail {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, mgo.ErrNotFound
}

func (f *fakeIntervieweeStore) CountNameCollisions(organizationID, name, lowerEmail string) (int, error) {
	count := 0
	for i := range f.rows {
		if f.rows[i].OrganizationID == organizationID && f.rows[i].Name == name && f.rows[i].LowerEmail != lowerEmail {
			count++
		}
	}
	return count, nil
}

func (f *fakeIntervieweeStore) Insert(interviewee *model.IntervieweeDo) error {
	f.insertCalls++
	if f.raceRow != nil {
		f.rows = append(f.rows, *f.raceRow)
		f.raceRow = nil
	}
	for i := range f.rows {
		if f.rows[i].OrganizationID == interviewee.OrganizationID && f.rows[i].LowerEmail == interviewee.LowerEmail {
			return &mgo.LastError{Code: 11000, Err: "E11000 duplicate key error"}
		}
	}
	f.rows = append(f.rows, *interviewee)
	return nil
}

func TestResolveIntervieweeIdempotent(t *testing.T) {
	xl := xlog.New("resolve-test")
	store := &fakeIntervieweeStore{}

	first, created, _, err := resolveInterviewee(xl, store, "org-1", "Jane Doe", "jane@x.com", "backend")
	if err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if !created {
		t.Fatalf("first resolve should create a row")
	}
	if first.LowerEmail != "jane@x.com" {
		t.Fatalf("expected normalized email, got %q", first.LowerEmail)
	}

	// 同一邮箱换了大小写、换了岗位，也只能命中同一条记录。
	second, created, _, err := resolveInterviewee(xl, store, "org-1", "Jane Doe", "JANE@x.com", "frontend")
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if created {
		t.Fatalf("second resolve must not create another row")
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same interviewee id, got %s and %s", first.ID, second.ID)
	}
	if second.RoleApplied != "backend" {
		t.Fatalf("existing roleApplied must not be overwritten, got %q", second.RoleApplied)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(store.rows))
	}
}

func TestResolveIntervieweeDifferentOrganizations(t *testing.T) {
	xl := xlog.New("resolve-test")
	store := &fakeIntervieweeStore{}

	first, _, _, err := resolveInterviewee(xl, store, "org-1", "Jane Doe", "jane@x.com", "backend")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	second, created, _, err := resolveInterviewee(xl, store, "org-2", "Jane Doe", "jane@x.com", "backend")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !created || second.ID == first.ID {
		t.Fatalf("identity is organization scoped, expected a fresh row in org-2")
	}
}

func TestResolveIntervieweeDuplicateInsertRace(t *testing.T) {
	xl := xlog.New("resolve-test")
	winner := &model.IntervieweeDo{
		ID:             utils.NewID(),
		Name:           "Jane Doe",
		Email:          "jane@x.com",
		LowerEmail:     "jane@x.com",
		OrganizationID: "org-1",
	}
	store := &fakeIntervieweeStore{raceRow: winner}

	resolved, created, _, err := resolveInterviewee(xl, store, "org-1", "Jane Doe", "jane@x.com", "backend")
	if err != nil {
		t.Fatalf("duplicate insert must be recovered by one retry lookup, got error %v", err)
	}
	if created {
		t.Fatalf("losing the insert race must report created=false")
	}
	if resolved.ID != winner.ID {
		t.Fatalf("expected the concurrently created row %s, got %s", winner.ID, resolved.ID)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected 1 row after the race, got %d", len(store.rows))
	}
}

func TestResolveIntervieweeNameCollision(t *testing.T) {
	xl := xlog.New("resolve-test")
	store := &fakeIntervieweeStore{rows: []model.IntervieweeDo{{
		ID:             utils.NewID(),
		Name:           "Jane Doe",
		Email:          "other@x.com",
		LowerEmail:     "other@x.com",
		OrganizationID: "org-1",
	}}}

	resolved, created, nameCollision, err := resolveInterviewee(xl, store, "org-1", "Jane Doe", "jane@x.com", "backend")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	// 同名不同邮箱只提示，不合并也不阻断。
	if !nameCollision {
		t.Fatalf("expected a name collision advisory")
	}
	if !created || resolved.LowerEmail != "jane@x.com" {
		t.Fatalf("collision must not block creating the new interviewee")
	}
}

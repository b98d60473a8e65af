package db

import (
	"testing"

	"github.com/solutions/hire-cube/internal/protodef/model"
)

func TestRankBySkillOverlap(t *testing.T) {
	i1 := model.InterviewerDo{ID: "i1", Skills: []string{"A"}}
	i2 := model.InterviewerDo{ID: "i2", Skills: []string{"C"}}
	i3 := model.InterviewerDo{ID: "i3", Skills: []string{"A", "B"}}

	ranked := RankBySkillOverlap([]string{"A", "B"}, []model.InterviewerDo{i1, i2, i3})
	if len(ranked) != 2 {
		t.Fatalf("ranked length = %d, want 2", len(ranked))
	}
	if ranked[0].ID != "i3" || ranked[1].ID != "i1" {
		t.Errorf("ranked order = [%s %s], want [i3 i1]", ranked[0].ID, ranked[1].ID)
	}
}

func TestRankBySkillOverlapTieBreak(t *testing.T) {
	// 重合数相同时按ID升序，保证稳定输出。
	b := model.InterviewerDo{ID: "b", Skills: []string{"A"}}
	a := model.InterviewerDo{ID: "a", Skills: []string{"B"}}
	ranked := RankBySkillOverlap([]string{"A", "B"}, []model.InterviewerDo{b, a})
	if ranked[0].ID != "a" || ranked[1].ID != "b" {
		t.Errorf("tie break order = [%s %s], want [a b]", ranked[0].ID, ranked[1].ID)
	}
}

func TestRankBySkillOverlapDeduplicates(t *testing.T) {
	dup := model.InterviewerDo{ID: "i1", Skills: []string{"A", "B"}}
	ranked := RankBySkillOverlap([]string{"A", "B"}, []model.InterviewerDo{dup, dup})
	if len(ranked) != 1 {
		t.Errorf("ranked length = %d, want 1 after dedup", len(ranked))
	}
}

func TestRankBySkillOverlapEmptyRequirements(t *testing.T) {
	i1 := model.InterviewerDo{ID: "i1", Skills: []string{"A"}}
	ranked := RankBySkillOverlap(nil, []model.InterviewerDo{i1})
	if len(ranked) != 0 {
		t.Errorf("empty requirements matched %d interviewers, want 0", len(ranked))
	}
}

func TestRankBySkillOverlapRepeatedSkillCountsOnce(t *testing.T) {
	weird := model.InterviewerDo{ID: "i1", Skills: []string{"A", "A"}}
	deep := model.InterviewerDo{ID: "i2", Skills: []string{"A", "B"}}
	ranked := RankBySkillOverlap([]string{"A", "B"}, []model.InterviewerDo{weird, deep})
	if ranked[0].ID != "i2" {
		t.Errorf("repeated skill inflated overlap, got %s first", ranked[0].ID)
	}
}

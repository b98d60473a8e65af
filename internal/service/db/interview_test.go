package db

import (
	"reflect"
	"testing"
	"time"

	"gopkg.in/mgo.v2/bson"

	"github.com/solutions/hire-cube/internal/protodef/model"
)

func TestBuildListQueryNoFilter(t *testing.T) {
	query := BuildListQuery("org-1", InterviewFilter{})
	want := bson.M{"organizationId": "org-1"}
	if !reflect.DeepEqual(query, want) {
		t.Errorf("query = %v, want %v", query, want)
	}
}

func TestBuildListQueryStatusAndSearch(t *testing.T) {
	status := model.InterviewStatusCodeScheduled
	query := BuildListQuery("org-1", InterviewFilter{Status: &status, Search: "garcia"})

	if query["organizationId"] != "org-1" {
		t.Errorf("organizationId = %v", query["organizationId"])
	}
	if query["status"] != model.InterviewStatusCodeScheduled {
		t.Errorf("status = %v, want scheduled", query["status"])
	}
	or, ok := query["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("$or = %v, want two clauses", query["$or"])
	}
	candidate := or[0]["candidateName"].(bson.RegEx)
	roleTitle := or[1]["roleTitle"].(bson.RegEx)
	if candidate.Pattern != "garcia" || candidate.Options != "i" {
		t.Errorf("candidateName regex = %+v", candidate)
	}
	if roleTitle.Pattern != "garcia" || roleTitle.Options != "i" {
		t.Errorf("roleTitle regex = %+v", roleTitle)
	}
}

func TestBuildListQueryEscapesSearch(t *testing.T) {
	query := BuildListQuery("org-1", InterviewFilter{Search: "c++ (senior)"})
	or := query["$or"].([]bson.M)
	pattern := or[0]["candidateName"].(bson.RegEx).Pattern
	if pattern == "c++ (senior)" {
		t.Error("search text was not regex-escaped")
	}
}

func TestBuildListQueryInterviewerName(t *testing.T) {
	query := BuildListQuery("org-1", InterviewFilter{InterviewerName: "Wang Wei"})
	re, ok := query["interviewerName"].(bson.RegEx)
	if !ok {
		t.Fatalf("interviewerName = %v, want regex", query["interviewerName"])
	}
	if re.Pattern != `^Wang Wei$` || re.Options != "i" {
		t.Errorf("interviewerName regex = %+v", re)
	}
}

func TestBuildListQueryDateRange(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	query := BuildListQuery("org-1", InterviewFilter{From: from, To: to})
	scheduled, ok := query["scheduledAt"].(bson.M)
	if !ok {
		t.Fatalf("scheduledAt = %v, want range", query["scheduledAt"])
	}
	if scheduled["$gte"] != from || scheduled["$lte"] != to {
		t.Errorf("scheduledAt range = %v", scheduled)
	}

	halfOpen := BuildListQuery("org-1", InterviewFilter{From: from})
	scheduled = halfOpen["scheduledAt"].(bson.M)
	if _, hasUpper := scheduled["$lte"]; hasUpper {
		t.Error("half-open range grew an upper bound")
	}
}

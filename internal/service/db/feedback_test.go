package db

import (
	"fmt"
	"testing"

	"github.com/qiniu/x/xlog"

	errors2 "github.com/solutions/hire-cube/internal/protodef/errors"
	"github.com/solutions/hire-cube/internal/protodef/model"
)

// fakeFeedbackStore 内存版反馈存储，可注入置位失败来验证回滚。
type fakeFeedbackStore struct {
	interview model.InterviewDo
	feedback  []model.FeedbackDo
	submitted bool
	failMark  bool
}

func (f *fakeFeedbackStore) GetInterview(interviewID string) (*model.InterviewDo, error) {
	interview := f.interview
	return &interview, nil
}

func (f *fakeFeedbackStore) InsertFeedback(feedback *model.FeedbackDo) error {
	f.feedback = append(f.feedback, *feedback)
	return nil
}

func (f *fakeFeedbackStore) MarkFeedbackSubmitted(interviewID string) error {
	if f.failMark {
		return fmt.Errorf("update failed")
	}
	f.submitted = true
	return nil
}

func (f *fakeFeedbackStore) RemoveFeedback(feedbackID string) error {
	kept := f.feedback[:0]
	for _, row := range f.feedback {
		if row.ID != feedbackID {
			kept = append(kept, row)
		}
	}
	f.feedback = kept
	return nil
}

func TestSubmitFeedbackSetsFlag(t *testing.T) {
	xl := xlog.New("feedback-test")
	store := &fakeFeedbackStore{interview: model.InterviewDo{
		ID:     "interview-1",
		Status: model.InterviewStatusCodeCompleted,
	}}

	feedback, err := submitFeedback(xl, store, "interview-1", "user-1", 4, "solid")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(store.feedback) != 1 || !store.submitted {
		t.Fatalf("expected feedback row and flag together, got %d rows, submitted=%v", len(store.feedback), store.submitted)
	}
	if feedback.Rating != 4 || feedback.InterviewID != "interview-1" {
		t.Fatalf("unexpected feedback row %+v", feedback)
	}
}

func TestSubmitFeedbackRollsBackOnMarkFailure(t *testing.T) {
	xl := xlog.New("feedback-test")
	store := &fakeFeedbackStore{
		interview: model.InterviewDo{
			ID:     "interview-1",
			Status: model.InterviewStatusCodeCompleted,
		},
		failMark: true,
	}

	_, err := submitFeedback(xl, store, "interview-1", "user-1", 4, "solid")
	if err == nil {
		t.Fatalf("expected mark failure to surface")
	}
	// 置位失败后不能留下孤儿反馈行，两步要么都生效要么都不。
	if len(store.feedback) != 0 {
		t.Fatalf("expected feedback row rolled back, got %d rows", len(store.feedback))
	}
	if store.submitted {
		t.Fatalf("flag must stay unset on failure")
	}
}

func TestSubmitFeedbackRequiresCompleted(t *testing.T) {
	xl := xlog.New("feedback-test")
	for _, status := range []model.InterviewStatusCode{
		model.InterviewStatusCodeScheduled,
		model.InterviewStatusCodeInProgress,
		model.InterviewStatusCodeCancelled,
	} {
		store := &fakeFeedbackStore{interview: model.InterviewDo{
			ID:     "interview-1",
			Status: status,
		}}
		_, err := submitFeedback(xl, store, "interview-1", "user-1", 4, "solid")
		if !errors2.IsCode(err, errors2.ServerErrorInvalidTransition) {
			t.Fatalf("status %d: expected invalid transition, got %v", status, err)
		}
		if len(store.feedback) != 0 {
			t.Fatalf("status %d: no feedback row may be written", status)
		}
	}
}

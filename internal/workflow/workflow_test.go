package workflow

import (
	"testing"

	"github.com/imohsin99/Bugzilla/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestLegalStatuses(t *testing.T) {
	// feature 的终态是 completed，bug 的终态是 resolved，fresh 永远不可手动设置
	assert.Equal(t,
		[]model.BugStatus{model.StatusStarted, model.StatusCompleted},
		LegalStatuses(model.BugTypeFeature))
	assert.Equal(t,
		[]model.BugStatus{model.StatusStarted, model.StatusResolved},
		LegalStatuses(model.BugTypeBug))
	assert.Nil(t, LegalStatuses(model.BugType("unknown")))
}

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name      string
		bugType   model.BugType
		requested model.BugStatus
		ok        bool
	}{
		{"feature 可开始", model.BugTypeFeature, model.StatusStarted, true},
		{"feature 可完成", model.BugTypeFeature, model.StatusCompleted, true},
		{"feature 不可解决", model.BugTypeFeature, model.StatusResolved, false},
		{"bug 可开始", model.BugTypeBug, model.StatusStarted, true},
		{"bug 可解决", model.BugTypeBug, model.StatusResolved, true},
		{"bug 不可完成", model.BugTypeBug, model.StatusCompleted, false},
		{"fresh 不是合法目标", model.BugTypeBug, model.StatusFresh, false},
		{"枚举外的值被拒绝", model.BugTypeBug, model.BugStatus(9), false},
		{"负值被拒绝", model.BugTypeFeature, model.BugStatus(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bug := &model.BugModel{BugType: tt.bugType, Status: model.StatusFresh}
			err := ValidateTransition(bug, tt.requested)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, model.ErrInvalidTransition)
			}
		})
	}
}

func TestTransitionUpdatesOnlyStatus(t *testing.T) {
	bug := &model.BugModel{
		Title:   "login fails",
		BugType: model.BugTypeBug,
		Status:  model.StatusStarted,
	}

	err := Transition(bug, model.StatusResolved)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusResolved, bug.Status)
	assert.Equal(t, "login fails", bug.Title)
}

func TestTransitionRejectedLeavesStatus(t *testing.T) {
	bug := &model.BugModel{BugType: model.BugTypeBug, Status: model.StatusStarted}

	err := Transition(bug, model.StatusCompleted)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
	assert.Equal(t, model.StatusStarted, bug.Status)
}

func TestStatusEncodingRoundTrip(t *testing.T) {
	// 状态持久化为小整数，名称与数值必须精确往返
	for _, s := range []model.BugStatus{
		model.StatusFresh, model.StatusStarted, model.StatusCompleted, model.StatusResolved,
	} {
		parsed, err := model.ParseBugStatus(s.String())
		assert.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	assert.Equal(t, 0, int(model.StatusFresh))
	assert.Equal(t, 1, int(model.StatusStarted))
	assert.Equal(t, 2, int(model.StatusCompleted))
	assert.Equal(t, 3, int(model.StatusResolved))
}

package tools_test

import (
	"testing"

	"github.com/effective-security/jokes/mocks/mocktools"
	"github.com/effective-security/jokes/tools"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func Test_Describe(t *testing.T) {
	ctrl := gomock.NewController(t)

	params := map[string]any{"type": "object"}
	t1 := mocktools.NewMockITool(ctrl)
	t1.EXPECT().Name().Return("t1").AnyTimes()
	t1.EXPECT().Description().Return("first tool").AnyTimes()
	t1.EXPECT().Parameters().Return(params).AnyTimes()

	t2 := mocktools.NewMockIMCPTool(ctrl)
	t2.EXPECT().Name().Return("t2").AnyTimes()
	t2.EXPECT().Description().Return("second tool").AnyTimes()
	t2.EXPECT().Parameters().Return(nil).AnyTimes()

	infos := tools.Describe(t1, t2)
	assert.Equal(t, []tools.Info{
		{Name: "t1", Description: "first tool", Parameters: params},
		{Name: "t2", Description: "second tool"},
	}, infos)

	assert.Empty(t, tools.Describe())
}

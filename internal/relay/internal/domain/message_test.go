package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentTask_Valid(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		task AgentTask
		want bool
	}{
		{name: "换考试码", task: TaskChangeKeycodes, want: true},
		{name: "刷新考试", task: TaskRefreshExams, want: true},
		{name: "未知任务", task: AgentTask("reboot"), want: false},
		{name: "空任务", task: AgentTask(""), want: false},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.task.Valid())
		})
	}
}

func TestMessage_JSON(t *testing.T) {
	t.Parallel()
	msg := Message{
		UUID: "abc123",
		Kind: KindCommand,
		Data: map[string]any{"command": "refresh_exams"},
	}
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uuid":"abc123","kind":"command","data":{"command":"refresh_exams"}}`, string(data))

	// 代理的 ping 不带 data
	var ping Message
	require.NoError(t, json.Unmarshal([]byte(`{"uuid":"p1","kind":"ping"}`), &ping))
	assert.Equal(t, KindPing, ping.Kind)
	assert.Nil(t, ping.Data)
}

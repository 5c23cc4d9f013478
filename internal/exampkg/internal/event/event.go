package event

const StateEventTopic = "exam_package_state_events"

// PackageStateEvent 当前考试包发生了一次真正的状态变更
type PackageStateEvent struct {
	ExternalID string `json:"externalId"`
	OldState   string `json:"oldState"`
	NewState   string `json:"newState"`
	// ChangedAt UTC Unix毫秒数
	ChangedAt int64 `json:"changedAt"`
}

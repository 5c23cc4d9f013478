package web

type AddAgentTaskReq struct {
	Name string `json:"name"`
}

type AgentTask struct {
	Name string `json:"name"`
}

type AddAgentTaskResp struct {
	Status    string    `json:"status"`
	AgentTask AgentTask `json:"agent_task"`
	MessageID string    `json:"message_id"`
}

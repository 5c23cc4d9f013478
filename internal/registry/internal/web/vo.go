package web

type UpdateEngineStatusReq struct {
	// Status 引擎的状态报文，内容不透明，原样转发
	Status map[string]any `json:"status"`
}

type UpdateEngineStatusResp struct {
	OK bool `json:"ok"`
}

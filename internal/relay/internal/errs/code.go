package errs

var (
	SystemError      = ErrorCode{Code: 513001, Msg: "系统错误"}
	UnknownAgentTask = ErrorCode{Code: 513002, Msg: "未知的代理任务"}
)

type ErrorCode struct {
	Code int
	Msg  string
}

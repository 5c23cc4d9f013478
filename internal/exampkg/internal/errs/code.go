package errs

var (
	SystemError            = ErrorCode{Code: 512001, Msg: "系统错误"}
	InvalidInput           = ErrorCode{Code: 512002, Msg: "输入参数非法"}
	DuplicateRequest       = ErrorCode{Code: 512003, Msg: "重复的考试信息上报"}
	UnknownScheduledExam   = ErrorCode{Code: 512004, Msg: "考试包引用了未知的考试"}
	PackageNotCurrent      = ErrorCode{Code: 512005, Msg: "不是当前考试包"}
	InvalidStateTransition = ErrorCode{Code: 512006, Msg: "非法的考试包状态变更"}
)

type ErrorCode struct {
	Code int
	Msg  string
}

package errs

var (
	SystemError   = ErrorCode{Code: 514001, Msg: "系统错误"}
	InvalidStatus = ErrorCode{Code: 514002, Msg: "引擎状态报文非法"}
)

type ErrorCode struct {
	Code int
	Msg  string
}

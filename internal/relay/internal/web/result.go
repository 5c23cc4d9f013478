package web

import (
	"github.com/ecodeclub/examctrl/internal/relay/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	unknownAgentTaskResult = ginx.Result{
		Code: errs.UnknownAgentTask.Code,
		Msg:  errs.UnknownAgentTask.Msg,
	}
)

package web

import (
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	duplicateRequestResult = ginx.Result{
		Code: errs.DuplicateRequest.Code,
		Msg:  errs.DuplicateRequest.Msg,
	}
	unknownScheduledExamResult = ginx.Result{
		Code: errs.UnknownScheduledExam.Code,
		Msg:  errs.UnknownScheduledExam.Msg,
	}
	packageNotCurrentResult = ginx.Result{
		Code: errs.PackageNotCurrent.Code,
		Msg:  errs.PackageNotCurrent.Msg,
	}
	invalidStateTransitionResult = ginx.Result{
		Code: errs.InvalidStateTransition.Code,
		Msg:  errs.InvalidStateTransition.Msg,
	}
)

func invalidInputResult(reason string) ginx.Result {
	return ginx.Result{
		Code: errs.InvalidInput.Code,
		Msg:  errs.InvalidInput.Msg + ": " + reason,
	}
}

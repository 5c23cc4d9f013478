// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package web

import (
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/domain"
)

// 字段名沿用考试注册中心的报文格式，所以这里是 snake_case

type ExamFileInfo struct {
	ExternalID  string    `json:"external_id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	SHA256      string    `json:"sha256"`
	DecryptCode string    `json:"decrypt_code"`
	ModifiedAt  time.Time `json:"modified_at"`
}

type ScheduledExam struct {
	ExternalID   string       `json:"external_id"`
	ExamTitle    string       `json:"exam_title"`
	StartTime    time.Time    `json:"start_time"`
	EndTime      time.Time    `json:"end_time"`
	ExamFileInfo ExamFileInfo `json:"exam_file_info"`
	ModifiedAt   time.Time    `json:"modified_at"`
}

type ScheduledExamPackage struct {
	ExternalID               string     `json:"external_id"`
	StartTime                time.Time  `json:"start_time"`
	EndTime                  time.Time  `json:"end_time"`
	LockTime                 *time.Time `json:"lock_time"`
	Locked                   bool       `json:"locked"`
	ScheduledExamExternalIDs []string   `json:"scheduled_exam_external_ids"`
	// State 和 StateChangedAt 只出现在响应里，上报报文里不允许携带
	State          *string    `json:"state,omitempty"`
	StateChangedAt *time.Time `json:"state_changed_at,omitempty"`
}

type SaveExamInfoReq struct {
	RequestID             string                 `json:"request_id"`
	RawData               map[string]any         `json:"raw_data"`
	ScheduledExams        []ScheduledExam        `json:"scheduled_exams"`
	ScheduledExamPackages []ScheduledExamPackage `json:"scheduled_exam_packages"`
}

type SetPackageStateReq struct {
	ExternalID string `json:"external_id"`
	State      string `json:"state"`
}

type GetScheduledExamReq struct {
	ExternalID string `json:"external_id"`
}

func (r SaveExamInfoReq) toDomain() domain.ExamInfo {
	return domain.ExamInfo{
		RequestID: r.RequestID,
		RawData:   r.RawData,
		ScheduledExams: slice.Map(r.ScheduledExams, func(idx int, src ScheduledExam) domain.ScheduledExam {
			return src.toDomain()
		}),
		ScheduledExamPackages: slice.Map(r.ScheduledExamPackages, func(idx int, src ScheduledExamPackage) domain.ScheduledExamPackage {
			return src.toDomain()
		}),
	}
}

func (e ScheduledExam) toDomain() domain.ScheduledExam {
	return domain.ScheduledExam{
		ExternalID: e.ExternalID,
		ExamTitle:  e.ExamTitle,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		ModifiedAt: e.ModifiedAt,
		ExamFileInfo: domain.ExamFileInfo{
			ExternalID:  e.ExamFileInfo.ExternalID,
			Name:        e.ExamFileInfo.Name,
			Size:        e.ExamFileInfo.Size,
			SHA256:      e.ExamFileInfo.SHA256,
			DecryptCode: e.ExamFileInfo.DecryptCode,
			ModifiedAt:  e.ExamFileInfo.ModifiedAt,
		},
	}
}

func (p ScheduledExamPackage) toDomain() domain.ScheduledExamPackage {
	return domain.ScheduledExamPackage{
		ExternalID:               p.ExternalID,
		StartTime:                p.StartTime,
		EndTime:                  p.EndTime,
		LockTime:                 p.LockTime,
		Locked:                   p.Locked,
		ScheduledExamExternalIDs: p.ScheduledExamExternalIDs,
	}
}

func newScheduledExamPackage(p domain.ScheduledExamPackage) ScheduledExamPackage {
	res := ScheduledExamPackage{
		ExternalID:               p.ExternalID,
		StartTime:                p.StartTime,
		EndTime:                  p.EndTime,
		LockTime:                 p.LockTime,
		Locked:                   p.Locked,
		ScheduledExamExternalIDs: p.ScheduledExamExternalIDs,
		StateChangedAt:           p.StateChangedAt,
	}
	if p.State != domain.PackageStateUnset {
		state := p.State.String()
		res.State = &state
	}
	return res
}

func newScheduledExam(e domain.ScheduledExam) ScheduledExam {
	return ScheduledExam{
		ExternalID: e.ExternalID,
		ExamTitle:  e.ExamTitle,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		ModifiedAt: e.ModifiedAt,
		ExamFileInfo: ExamFileInfo{
			ExternalID:  e.ExamFileInfo.ExternalID,
			Name:        e.ExamFileInfo.Name,
			Size:        e.ExamFileInfo.Size,
			SHA256:      e.ExamFileInfo.SHA256,
			DecryptCode: e.ExamFileInfo.DecryptCode,
			ModifiedAt:  e.ExamFileInfo.ModifiedAt,
		},
	}
}

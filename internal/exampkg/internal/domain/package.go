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

package domain

import "time"

// PackageState 考试包状态。空字符串表示尚未进入任何状态，
// 也就是刚被选为当前考试包、还没切换到 ready 的阶段。
type PackageState string

const (
	PackageStateUnset    PackageState = ""
	PackageStateReady    PackageState = "ready"
	PackageStateRunning  PackageState = "running"
	PackageStateStopping PackageState = "stopping"
	PackageStateStopped  PackageState = "stopped"
	PackageStateArchived PackageState = "archived"
)

// 状态只能沿着这条链单向前进，不允许回退，也不允许跳级
var validNextState = map[PackageState]PackageState{
	PackageStateUnset:    PackageStateReady,
	PackageStateReady:    PackageStateRunning,
	PackageStateRunning:  PackageStateStopping,
	PackageStateStopping: PackageStateStopped,
	PackageStateStopped:  PackageStateArchived,
}

func (s PackageState) String() string {
	return string(s)
}

// Valid 判断是不是已知状态，unset 也算合法
func (s PackageState) Valid() bool {
	if s == PackageStateUnset {
		return true
	}
	_, ok := validNextState[s]
	return ok || s == PackageStateArchived
}

// Next 返回唯一合法的下一个状态。archived 是终态，没有下一个状态
func (s PackageState) Next() (PackageState, bool) {
	next, ok := validNextState[s]
	return next, ok
}

// Terminal 终态。到达终态的考试包永远退出当前考试包的候选
func (s PackageState) Terminal() bool {
	return s == PackageStateArchived
}

type ExamFileInfo struct {
	ID          int64
	ExternalID  string
	Name        string
	Size        int64
	SHA256      string
	DecryptCode string
	ModifiedAt  time.Time
}

type ScheduledExam struct {
	ID           int64
	ExternalID   string
	ExamTitle    string
	StartTime    time.Time
	EndTime      time.Time
	ModifiedAt   time.Time
	ExamFileInfo ExamFileInfo
}

type ScheduledExamPackage struct {
	ID         int64
	ExternalID string
	StartTime  time.Time
	EndTime    time.Time
	// LockTime 为空表示还没有锁定时间
	LockTime *time.Time
	Locked   bool
	State    PackageState
	// StateChangedAt 只在真正发生状态变更时更新，幂等的重复设置不会动它
	StateChangedAt *time.Time
	Current        bool
	// ScheduledExamExternalIDs 包内考试的 external_id 列表
	ScheduledExamExternalIDs []string
}

// ExamInfo 一次考试信息上报。RawData 是注册中心的原始报文，原样留档，
// 不对内容做任何校验
type ExamInfo struct {
	RequestID             string
	RawData               map[string]any
	ScheduledExams        []ScheduledExam
	ScheduledExamPackages []ScheduledExamPackage
}

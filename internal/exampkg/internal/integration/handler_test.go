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

//go:build e2e

package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/errs"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/integration/startup"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/repository/dao"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/web"
	"github.com/ecodeclub/examctrl/internal/test"
	testioc "github.com/ecodeclub/examctrl/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	server *egin.Component
	db     *egorm.Component
	dao    dao.ExamDAO
}

func TestHandler(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupSuite() {
	handler, err := startup.InitHandler()
	require.NoError(s.T(), err)
	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	handler.PublicRoutes(server.Engine)
	s.server = server
	s.db = testioc.InitDB()
	s.dao = dao.NewGORMExamDAO(s.db)
}

func (s *HandlerTestSuite) TearDownSuite() {
	for _, table := range []string{
		"exam_infos", "scheduled_exams", "scheduled_exam_packages", "exam_file_infos",
	} {
		err := s.db.Exec("DROP TABLE `" + table + "`").Error
		require.NoError(s.T(), err)
	}
}

func (s *HandlerTestSuite) TearDownTest() {
	for _, table := range []string{
		"exam_infos", "scheduled_exams", "scheduled_exam_packages", "exam_file_infos",
	} {
		err := s.db.Exec("TRUNCATE TABLE `" + table + "`").Error
		require.NoError(s.T(), err)
	}
}

func (s *HandlerTestSuite) post(path string, body any, recorder http.ResponseWriter) {
	req, err := http.NewRequest(http.MethodPost, path, iox.NewJSONReader(body))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	s.server.ServeHTTP(recorder, req)
}

func (s *HandlerTestSuite) saveExamInfo(requestID string, pkgs ...web.ScheduledExamPackage) {
	exams := make([]web.ScheduledExam, 0, len(pkgs))
	for _, pkg := range pkgs {
		for _, examID := range pkg.ScheduledExamExternalIDs {
			exams = append(exams, newExam(examID, pkg.StartTime, pkg.EndTime))
		}
	}
	recorder := test.NewJSONResponseRecorder[any]()
	s.post("/exam/save_exam_info", web.SaveExamInfoReq{
		RequestID:             requestID,
		RawData:               map[string]any{"request_id": requestID},
		ScheduledExams:        exams,
		ScheduledExamPackages: pkgs,
	}, recorder)
	require.Equal(s.T(), 200, recorder.Code)
}

func (s *HandlerTestSuite) currentPackage() test.Result[web.ScheduledExamPackage] {
	recorder := test.NewJSONResponseRecorder[web.ScheduledExamPackage]()
	s.post("/exam/get_current_scheduled_exam_package", nil, recorder)
	require.Equal(s.T(), 200, recorder.Code)
	return recorder.MustScan()
}

func (s *HandlerTestSuite) setState(externalID, state string) (int, test.Result[string]) {
	recorder := test.NewJSONResponseRecorder[string]()
	s.post("/exam/set_current_scheduled_exam_package_state", web.SetPackageStateReq{
		ExternalID: externalID,
		State:      state,
	}, recorder)
	return recorder.Code, recorder.MustScan()
}

func newExam(externalID string, start, end time.Time) web.ScheduledExam {
	return web.ScheduledExam{
		ExternalID: externalID,
		ExamTitle:  "考试 " + externalID,
		StartTime:  start,
		EndTime:    end,
		ModifiedAt: start,
		ExamFileInfo: web.ExamFileInfo{
			ExternalID:  "file-" + externalID,
			Name:        externalID + ".dat",
			Size:        1024,
			SHA256:      "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			DecryptCode: "secret",
			ModifiedAt:  start,
		},
	}
}

func newPackage(externalID string, start, end time.Time, examIDs ...string) web.ScheduledExamPackage {
	lockTime := start.Add(-time.Hour)
	return web.ScheduledExamPackage{
		ExternalID:               externalID,
		StartTime:                start,
		EndTime:                  end,
		LockTime:                 &lockTime,
		Locked:                   true,
		ScheduledExamExternalIDs: examIDs,
	}
}

func (s *HandlerTestSuite) TestGetCurrentPackage_Empty() {
	res := s.currentPackage()
	assert.Empty(s.T(), res.Data.ExternalID)
}

func (s *HandlerTestSuite) TestSaveAndGetCurrentPackage() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.saveExamInfo("req-1",
		newPackage("pkg-1", now.Add(15*time.Minute), now.Add(2*time.Hour), "exam-1"))

	res := s.currentPackage()
	assert.Equal(s.T(), "pkg-1", res.Data.ExternalID)
	assert.Nil(s.T(), res.Data.State)
	assert.True(s.T(), res.Data.Locked)
	assert.Equal(s.T(), []string{"exam-1"}, res.Data.ScheduledExamExternalIDs)

	// 再查一次还是它
	res = s.currentPackage()
	assert.Equal(s.T(), "pkg-1", res.Data.ExternalID)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	pkg, err := s.dao.FindCurrentByExternalId(ctx, "pkg-1")
	require.NoError(s.T(), err)
	assert.True(s.T(), pkg.Current.Valid && pkg.Current.Bool)
	assert.False(s.T(), pkg.State.Valid)
}

func (s *HandlerTestSuite) TestTieBreak() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	pkgs := make([]web.ScheduledExamPackage, 0, 10)
	for i := 0; i < 10; i++ {
		pkgs = append(pkgs, newPackage(fmt.Sprintf("pkg-%d", i),
			now.Add(15*time.Minute), now.Add(2*time.Hour), fmt.Sprintf("exam-%d", i)))
	}
	s.saveExamInfo("req-1", pkgs...)

	// 开始时间全相同，反复查询必须稳定选第一个入库的
	for i := 0; i < 5; i++ {
		res := s.currentPackage()
		assert.Equal(s.T(), "pkg-0", res.Data.ExternalID)
	}
}

func (s *HandlerTestSuite) TestStickyCurrent() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.saveExamInfo("req-1",
		newPackage("pkg-late", now.Add(3*time.Hour), now.Add(5*time.Hour), "exam-1"))
	res := s.currentPackage()
	require.Equal(s.T(), "pkg-late", res.Data.ExternalID)

	// 之后来了一个开始更早的包，也不能顶掉已经是当前的包
	s.saveExamInfo("req-2",
		newPackage("pkg-early", now.Add(10*time.Minute), now.Add(time.Hour), "exam-2"))
	res = s.currentPackage()
	assert.Equal(s.T(), "pkg-late", res.Data.ExternalID)
}

func (s *HandlerTestSuite) TestSetPackageState() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.saveExamInfo("req-1",
		newPackage("pkg-1", now.Add(15*time.Minute), now.Add(2*time.Hour), "exam-1"))

	// 还不是当前考试包
	code, res := s.setState("pkg-1", "ready")
	assert.Equal(s.T(), 500, code)
	assert.Equal(s.T(), errs.PackageNotCurrent.Code, res.Code)

	cur := s.currentPackage()
	require.Equal(s.T(), "pkg-1", cur.Data.ExternalID)

	// 只能从未设置推进到 ready，跳到 running 非法
	code, res = s.setState("pkg-1", "running")
	assert.Equal(s.T(), 500, code)
	assert.Equal(s.T(), errs.InvalidStateTransition.Code, res.Code)

	code, res = s.setState("pkg-1", "ready")
	assert.Equal(s.T(), 200, code)
	assert.Empty(s.T(), res.Data)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	pkg, err := s.dao.FindCurrentByExternalId(ctx, "pkg-1")
	require.NoError(s.T(), err)
	require.True(s.T(), pkg.StateChangedAt.Valid)
	firstChangedAt := pkg.StateChangedAt.Int64

	// 幂等的重复设置：返回之前的状态，state_changed_at 不变
	code, res = s.setState("pkg-1", "ready")
	assert.Equal(s.T(), 200, code)
	assert.Equal(s.T(), "ready", res.Data)
	pkg, err = s.dao.FindCurrentByExternalId(ctx, "pkg-1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), firstChangedAt, pkg.StateChangedAt.Int64)

	for _, next := range []string{"running", "stopping", "stopped"} {
		code, _ = s.setState("pkg-1", next)
		assert.Equal(s.T(), 200, code)
	}

	// 归档之后永久退出当前考试包
	code, res = s.setState("pkg-1", "archived")
	assert.Equal(s.T(), 200, code)
	assert.Equal(s.T(), "stopped", res.Data)

	cur = s.currentPackage()
	assert.Empty(s.T(), cur.Data.ExternalID)

	// 已经不再是当前考试包了
	code, res = s.setState("pkg-1", "archived")
	assert.Equal(s.T(), 500, code)
	assert.Equal(s.T(), errs.PackageNotCurrent.Code, res.Code)
}

func (s *HandlerTestSuite) TestTerminalExitSelectsNextCandidate() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.saveExamInfo("req-1",
		newPackage("pkg-1", now.Add(15*time.Minute), now.Add(2*time.Hour), "exam-1"),
		newPackage("pkg-2", now.Add(30*time.Minute), now.Add(3*time.Hour), "exam-2"))

	res := s.currentPackage()
	require.Equal(s.T(), "pkg-1", res.Data.ExternalID)

	for _, next := range []string{"ready", "running", "stopping", "stopped", "archived"} {
		code, _ := s.setState("pkg-1", next)
		require.Equal(s.T(), 200, code)
	}

	res = s.currentPackage()
	assert.Equal(s.T(), "pkg-2", res.Data.ExternalID)
}

func (s *HandlerTestSuite) TestSaveExamInfo_DuplicateRequestID() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	pkg := newPackage("pkg-1", now.Add(15*time.Minute), now.Add(2*time.Hour), "exam-1")
	s.saveExamInfo("req-1", pkg)

	var examInfoCount int64
	require.NoError(s.T(), s.db.Model(&dao.ExamInfo{}).Count(&examInfoCount).Error)

	recorder := test.NewJSONResponseRecorder[any]()
	s.post("/exam/save_exam_info", web.SaveExamInfoReq{
		RequestID:             "req-1",
		RawData:               map[string]any{},
		ScheduledExams:        []web.ScheduledExam{newExam("exam-1", pkg.StartTime, pkg.EndTime)},
		ScheduledExamPackages: []web.ScheduledExamPackage{pkg},
	}, recorder)
	assert.Equal(s.T(), 500, recorder.Code)
	assert.Equal(s.T(), errs.DuplicateRequest.Code, recorder.MustScan().Code)

	// 第二次调用没有留下任何新数据
	var count int64
	require.NoError(s.T(), s.db.Model(&dao.ExamInfo{}).Count(&count).Error)
	assert.Equal(s.T(), examInfoCount, count)
}

func (s *HandlerTestSuite) TestSaveExamInfo_UpsertPreservesLifecycleFields() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.saveExamInfo("req-1",
		newPackage("pkg-1", now.Add(15*time.Minute), now.Add(2*time.Hour), "exam-1"))
	res := s.currentPackage()
	require.Equal(s.T(), "pkg-1", res.Data.ExternalID)
	code, _ := s.setState("pkg-1", "ready")
	require.Equal(s.T(), 200, code)

	// 同一个考试包重复上报：时间和成员被覆盖，state/current 原样保留
	s.saveExamInfo("req-2",
		newPackage("pkg-1", now.Add(20*time.Minute), now.Add(4*time.Hour), "exam-1", "exam-3"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	pkg, err := s.dao.FindCurrentByExternalId(ctx, "pkg-1")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), now.Add(20*time.Minute).UnixMilli(), pkg.StartTime)
	assert.Equal(s.T(), now.Add(4*time.Hour).UnixMilli(), pkg.EndTime)
	assert.Equal(s.T(), "ready", pkg.State.String)
	assert.True(s.T(), pkg.Current.Valid && pkg.Current.Bool)

	ids, err := s.dao.PackageExamExternalIds(ctx, pkg.Id)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"exam-1", "exam-3"}, ids)
}

func (s *HandlerTestSuite) TestSaveExamInfo_InvalidTimeRange() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	recorder := test.NewJSONResponseRecorder[any]()
	s.post("/exam/save_exam_info", web.SaveExamInfoReq{
		RequestID: "req-1",
		RawData:   map[string]any{},
		ScheduledExamPackages: []web.ScheduledExamPackage{
			newPackage("pkg-1", now.Add(2*time.Hour), now.Add(time.Hour)),
		},
	}, recorder)
	assert.Equal(s.T(), 500, recorder.Code)
	assert.Equal(s.T(), errs.InvalidInput.Code, recorder.MustScan().Code)

	// 整体回滚，连留档行都没有
	var count int64
	require.NoError(s.T(), s.db.Model(&dao.ExamInfo{}).Count(&count).Error)
	assert.Equal(s.T(), int64(0), count)
}

func (s *HandlerTestSuite) TestSaveExamInfo_UnknownExamReference() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	recorder := test.NewJSONResponseRecorder[any]()
	s.post("/exam/save_exam_info", web.SaveExamInfoReq{
		RequestID: "req-1",
		RawData:   map[string]any{},
		ScheduledExamPackages: []web.ScheduledExamPackage{
			newPackage("pkg-1", now.Add(time.Hour), now.Add(2*time.Hour), "exam-ghost"),
		},
	}, recorder)
	assert.Equal(s.T(), 500, recorder.Code)
	assert.Equal(s.T(), errs.UnknownScheduledExam.Code, recorder.MustScan().Code)

	var count int64
	require.NoError(s.T(), s.db.Model(&dao.ExamInfo{}).Count(&count).Error)
	assert.Equal(s.T(), int64(0), count)
}

func (s *HandlerTestSuite) TestGetScheduledExam() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	s.saveExamInfo("req-1",
		newPackage("pkg-1", now.Add(15*time.Minute), now.Add(2*time.Hour), "exam-1"))

	recorder := test.NewJSONResponseRecorder[web.ScheduledExam]()
	s.post("/exam/get_scheduled_exam", web.GetScheduledExamReq{ExternalID: "exam-1"}, recorder)
	require.Equal(s.T(), 200, recorder.Code)
	res := recorder.MustScan()
	assert.Equal(s.T(), "exam-1", res.Data.ExternalID)
	assert.Equal(s.T(), "file-exam-1", res.Data.ExamFileInfo.ExternalID)
	assert.Equal(s.T(), int64(1024), res.Data.ExamFileInfo.Size)

	// 不存在的考试返回空数据
	recorder = test.NewJSONResponseRecorder[web.ScheduledExam]()
	s.post("/exam/get_scheduled_exam", web.GetScheduledExamReq{ExternalID: "exam-404"}, recorder)
	require.Equal(s.T(), 200, recorder.Code)
	assert.Empty(s.T(), recorder.MustScan().Data.ExternalID)
}

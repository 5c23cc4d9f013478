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

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/domain"
	"github.com/ecodeclub/examctrl/internal/exampkg/internal/repository/dao"
	"gorm.io/gorm"
)

var (
	ErrDuplicateRequest     = dao.ErrDuplicateRequest
	ErrUnknownScheduledExam = dao.ErrUnknownScheduledExam
	ErrPackageStateConflict = dao.ErrPackageStateConflict
	// ErrNoPackage 没有当前考试包，也没有符合条件的候选
	ErrNoPackage    = errors.New("没有当前考试包")
	ErrExamNotFound = errors.New("考试不存在")
)

//go:generate mockgen -source=./exam.go -destination=./mocks/exam.mock.go -package=repomocks ExamRepository
type ExamRepository interface {
	SaveExamInfo(ctx context.Context, info domain.ExamInfo) error
	// CurrentPackage 返回当前考试包，没有时返回 ErrNoPackage
	CurrentPackage(ctx context.Context, now time.Time) (domain.ScheduledExamPackage, error)
	FindCurrentByExternalID(ctx context.Context, externalID string) (domain.ScheduledExamPackage, error)
	UpdateCurrentState(ctx context.Context, id int64, prev, next domain.PackageState, now time.Time) error
	FindExamByExternalID(ctx context.Context, externalID string) (domain.ScheduledExam, error)
}

type examRepository struct {
	dao dao.ExamDAO
}

func NewExamRepository(d dao.ExamDAO) ExamRepository {
	return &examRepository{dao: d}
}

func (r *examRepository) SaveExamInfo(ctx context.Context, info domain.ExamInfo) error {
	rawData, err := json.Marshal(info.RawData)
	if err != nil {
		return fmt.Errorf("序列化原始报文失败: %w", err)
	}
	exams := slice.Map(info.ScheduledExams, func(idx int, src domain.ScheduledExam) dao.ExamAndFileInfo {
		return dao.ExamAndFileInfo{
			Exam:     r.examToEntity(src),
			FileInfo: r.fileInfoToEntity(src.ExamFileInfo),
		}
	})
	pkgs := slice.Map(info.ScheduledExamPackages, func(idx int, src domain.ScheduledExamPackage) dao.PackageExams {
		return dao.PackageExams{
			Pkg: r.pkgToEntity(src),
			// 去重，同一场考试在成员列表里出现多次只挂一次
			ExamExternalIds: dedup(src.ScheduledExamExternalIDs),
		}
	})
	return r.dao.SaveExamInfo(ctx, dao.ExamInfo{
		RequestId: info.RequestID,
		RawData:   string(rawData),
	}, exams, pkgs)
}

func (r *examRepository) CurrentPackage(ctx context.Context, now time.Time) (domain.ScheduledExamPackage, error) {
	pkg, err := r.dao.CurrentPackage(ctx, now.UnixMilli())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ScheduledExamPackage{}, ErrNoPackage
	}
	if err != nil {
		return domain.ScheduledExamPackage{}, err
	}
	return r.fillExamIDs(ctx, pkg)
}

func (r *examRepository) FindCurrentByExternalID(ctx context.Context, externalID string) (domain.ScheduledExamPackage, error) {
	pkg, err := r.dao.FindCurrentByExternalId(ctx, externalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ScheduledExamPackage{}, ErrNoPackage
	}
	if err != nil {
		return domain.ScheduledExamPackage{}, err
	}
	return r.pkgToDomain(pkg), nil
}

func (r *examRepository) UpdateCurrentState(ctx context.Context, id int64, prev, next domain.PackageState, now time.Time) error {
	var prevState sql.NullString
	if prev != domain.PackageStateUnset {
		prevState = sql.NullString{String: prev.String(), Valid: true}
	}
	return r.dao.UpdateCurrentState(ctx, id, prevState, next.String(), now.UnixMilli(), next.Terminal())
}

func (r *examRepository) FindExamByExternalID(ctx context.Context, externalID string) (domain.ScheduledExam, error) {
	exam, fileInfo, err := r.dao.FindExamByExternalId(ctx, externalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ScheduledExam{}, ErrExamNotFound
	}
	if err != nil {
		return domain.ScheduledExam{}, err
	}
	res := r.examToDomain(exam)
	res.ExamFileInfo = r.fileInfoToDomain(fileInfo)
	return res, nil
}

func (r *examRepository) fillExamIDs(ctx context.Context, pkg dao.ScheduledExamPackage) (domain.ScheduledExamPackage, error) {
	res := r.pkgToDomain(pkg)
	ids, err := r.dao.PackageExamExternalIds(ctx, pkg.Id)
	if err != nil {
		return domain.ScheduledExamPackage{}, err
	}
	res.ScheduledExamExternalIDs = ids
	return res, nil
}

func (r *examRepository) fileInfoToEntity(f domain.ExamFileInfo) dao.ExamFileInfo {
	return dao.ExamFileInfo{
		ExternalId:  f.ExternalID,
		Name:        f.Name,
		Size:        f.Size,
		Sha256:      f.SHA256,
		DecryptCode: f.DecryptCode,
		ModifiedAt:  f.ModifiedAt.UnixMilli(),
	}
}

func (r *examRepository) fileInfoToDomain(f dao.ExamFileInfo) domain.ExamFileInfo {
	return domain.ExamFileInfo{
		ID:          f.Id,
		ExternalID:  f.ExternalId,
		Name:        f.Name,
		Size:        f.Size,
		SHA256:      f.Sha256,
		DecryptCode: f.DecryptCode,
		ModifiedAt:  time.UnixMilli(f.ModifiedAt).UTC(),
	}
}

func (r *examRepository) examToEntity(e domain.ScheduledExam) dao.ScheduledExam {
	return dao.ScheduledExam{
		ExternalId: e.ExternalID,
		ExamTitle:  e.ExamTitle,
		StartTime:  e.StartTime.UnixMilli(),
		EndTime:    e.EndTime.UnixMilli(),
		ModifiedAt: e.ModifiedAt.UnixMilli(),
	}
}

func (r *examRepository) examToDomain(e dao.ScheduledExam) domain.ScheduledExam {
	return domain.ScheduledExam{
		ID:         e.Id,
		ExternalID: e.ExternalId,
		ExamTitle:  e.ExamTitle,
		StartTime:  time.UnixMilli(e.StartTime).UTC(),
		EndTime:    time.UnixMilli(e.EndTime).UTC(),
		ModifiedAt: time.UnixMilli(e.ModifiedAt).UTC(),
	}
}

func (r *examRepository) pkgToEntity(p domain.ScheduledExamPackage) dao.ScheduledExamPackage {
	res := dao.ScheduledExamPackage{
		ExternalId: p.ExternalID,
		StartTime:  p.StartTime.UnixMilli(),
		EndTime:    p.EndTime.UnixMilli(),
		Locked:     p.Locked,
	}
	if p.LockTime != nil {
		res.LockTime = sql.NullInt64{Int64: p.LockTime.UnixMilli(), Valid: true}
	}
	return res
}

func (r *examRepository) pkgToDomain(p dao.ScheduledExamPackage) domain.ScheduledExamPackage {
	res := domain.ScheduledExamPackage{
		ID:         p.Id,
		ExternalID: p.ExternalId,
		StartTime:  time.UnixMilli(p.StartTime).UTC(),
		EndTime:    time.UnixMilli(p.EndTime).UTC(),
		Locked:     p.Locked,
		State:      domain.PackageState(p.State.String),
		Current:    p.Current.Valid && p.Current.Bool,
	}
	if p.LockTime.Valid {
		lockTime := time.UnixMilli(p.LockTime.Int64).UTC()
		res.LockTime = &lockTime
	}
	if p.StateChangedAt.Valid {
		changedAt := time.UnixMilli(p.StateChangedAt.Int64).UTC()
		res.StateChangedAt = &changedAt
	}
	return res
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}

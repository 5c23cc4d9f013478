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

package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrDuplicateRequest     = errors.New("考试信息上报重复")
	ErrUnknownScheduledExam = errors.New("考试包引用了未知的考试")
	// ErrPackageStateConflict 状态变更的前置条件在提交前被并发修改
	ErrPackageStateConflict = errors.New("考试包状态已被并发修改")
)

// ExamAndFileInfo 一场考试和它引用的考试文件
type ExamAndFileInfo struct {
	Exam     ScheduledExam
	FileInfo ExamFileInfo
}

// PackageExams 一个考试包和包内考试的 external_id
type PackageExams struct {
	Pkg             ScheduledExamPackage
	ExamExternalIds []string
}

type ExamDAO interface {
	// SaveExamInfo 在一个事务里落库一次完整的上报。
	// request_id 重复返回 ErrDuplicateRequest，
	// 考试包引用了不存在的考试返回 ErrUnknownScheduledExam，
	// 任何错误都会整体回滚
	SaveExamInfo(ctx context.Context, info ExamInfo, exams []ExamAndFileInfo, pkgs []PackageExams) error
	// CurrentPackage 返回当前考试包。没有当前考试包时挑选候选并标记，
	// 没有候选返回 gorm.ErrRecordNotFound
	CurrentPackage(ctx context.Context, now int64) (ScheduledExamPackage, error)
	FindCurrentByExternalId(ctx context.Context, externalId string) (ScheduledExamPackage, error)
	// UpdateCurrentState 以 CAS 方式推进状态：只有这一行仍然是当前考试包、
	// 状态仍然等于 prevState 时才会生效，否则返回 ErrPackageStateConflict
	UpdateCurrentState(ctx context.Context, id int64, prevState sql.NullString, state string, now int64, clearCurrent bool) error
	FindExamByExternalId(ctx context.Context, externalId string) (ScheduledExam, ExamFileInfo, error)
	PackageExamExternalIds(ctx context.Context, pkgId int64) ([]string, error)
}

type GORMExamDAO struct {
	db *egorm.Component
}

func NewGORMExamDAO(db *egorm.Component) ExamDAO {
	return &GORMExamDAO{db: db}
}

func (d *GORMExamDAO) SaveExamInfo(ctx context.Context, info ExamInfo, exams []ExamAndFileInfo, pkgs []PackageExams) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		info.Ctime = now
		if err := tx.Create(&info).Error; err != nil {
			if isUniqueConflict(err) {
				return fmt.Errorf("%w: %s", ErrDuplicateRequest, info.RequestId)
			}
			return err
		}
		for _, ef := range exams {
			fid, err := d.upsertFileInfo(tx, ef.FileInfo, now)
			if err != nil {
				return err
			}
			if err = d.upsertExam(tx, ef.Exam, fid, now); err != nil {
				return err
			}
		}
		for _, pe := range pkgs {
			if err := d.upsertPackage(tx, pe, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func (d *GORMExamDAO) upsertFileInfo(tx *gorm.DB, f ExamFileInfo, now int64) (int64, error) {
	var existing ExamFileInfo
	err := tx.Where("external_id = ?", f.ExternalId).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		f.Ctime, f.Utime = now, now
		if err = tx.Create(&f).Error; err != nil {
			return 0, err
		}
		return f.Id, nil
	}
	if err != nil {
		return 0, err
	}
	err = tx.Model(&ExamFileInfo{}).Where("id = ?", existing.Id).Updates(map[string]any{
		"name":         f.Name,
		"size":         f.Size,
		"sha256":       f.Sha256,
		"decrypt_code": f.DecryptCode,
		"modified_at":  f.ModifiedAt,
		"utime":        now,
	}).Error
	return existing.Id, err
}

func (d *GORMExamDAO) upsertExam(tx *gorm.DB, e ScheduledExam, fileInfoId int64, now int64) error {
	var existing ScheduledExam
	err := tx.Where("external_id = ?", e.ExternalId).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		e.ExamFileInfoId = fileInfoId
		e.Ctime, e.Utime = now, now
		return tx.Create(&e).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&ScheduledExam{}).Where("id = ?", existing.Id).Updates(map[string]any{
		"exam_title":        e.ExamTitle,
		"start_time":        e.StartTime,
		"end_time":          e.EndTime,
		"modified_at":       e.ModifiedAt,
		"exam_file_info_id": fileInfoId,
		"utime":             now,
	}).Error
}

func (d *GORMExamDAO) upsertPackage(tx *gorm.DB, pe PackageExams, now int64) error {
	pkg := pe.Pkg
	var pkgId int64
	var existing ScheduledExamPackage
	err := tx.Where("external_id = ?", pkg.ExternalId).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// state、state_changed_at、current 归生命周期管理，新建时一律为空
		pkg.State = sql.NullString{}
		pkg.StateChangedAt = sql.NullInt64{}
		pkg.Current = sql.NullBool{}
		pkg.Ctime, pkg.Utime = now, now
		if err = tx.Create(&pkg).Error; err != nil {
			return err
		}
		pkgId = pkg.Id
	case err != nil:
		return err
	default:
		// 重复上报只覆盖时间和锁定标志，state/state_changed_at/current 原样保留
		err = tx.Model(&ScheduledExamPackage{}).Where("id = ?", existing.Id).Updates(map[string]any{
			"start_time": pkg.StartTime,
			"end_time":   pkg.EndTime,
			"lock_time":  pkg.LockTime,
			"locked":     pkg.Locked,
			"utime":      now,
		}).Error
		if err != nil {
			return err
		}
		// 先拆掉旧的考试归属，再按这次上报重建
		err = tx.Model(&ScheduledExam{}).Where("package_id = ?", existing.Id).
			Updates(map[string]any{"package_id": nil, "utime": now}).Error
		if err != nil {
			return err
		}
		pkgId = existing.Id
	}
	for _, examExternalId := range pe.ExamExternalIds {
		res := tx.Model(&ScheduledExam{}).Where("external_id = ?", examExternalId).
			Updates(map[string]any{"package_id": pkgId, "utime": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrUnknownScheduledExam, examExternalId)
		}
	}
	return nil
}

func (d *GORMExamDAO) CurrentPackage(ctx context.Context, now int64) (ScheduledExamPackage, error) {
	var pkg ScheduledExamPackage
	err := d.db.WithContext(ctx).Where("`current` = ?", true).First(&pkg).Error
	if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg, err
	}
	for {
		// 锁定、还没进入任何状态、还没结束的考试包里挑最早开始的，
		// 开始时间相同时用自增主键保证每次都选同一个
		err = d.db.WithContext(ctx).
			Where("locked = ? AND state IS NULL AND end_time >= ?", true, now).
			Order("start_time ASC, id ASC").
			First(&pkg).Error
		if err != nil {
			return pkg, err
		}
		res := d.db.WithContext(ctx).Model(&ScheduledExamPackage{}).
			Where("id = ? AND state IS NULL AND `current` IS NULL", pkg.Id).
			Updates(map[string]any{
				"current": true,
				"utime":   time.Now().UnixMilli(),
			})
		switch {
		case res.Error != nil && isUniqueConflict(res.Error):
			// 唯一索引挡住了：并发调用里别的包刚成为当前考试包，用它的结果
			var cur ScheduledExamPackage
			cerr := d.db.WithContext(ctx).Where("`current` = ?", true).First(&cur).Error
			if cerr == nil {
				return cur, nil
			}
			if !errors.Is(cerr, gorm.ErrRecordNotFound) {
				return cur, cerr
			}
			// 赢家在我们读到它之前已经归档退出了，重新挑选
		case res.Error != nil:
			return pkg, res.Error
		case res.RowsAffected == 1:
			pkg.Current = sql.NullBool{Bool: true, Valid: true}
			return pkg, nil
		default:
			// 候选行被并发改掉了（比如刚被推进状态），重新挑选
		}
	}
}

func (d *GORMExamDAO) FindCurrentByExternalId(ctx context.Context, externalId string) (ScheduledExamPackage, error) {
	var pkg ScheduledExamPackage
	err := d.db.WithContext(ctx).
		Where("external_id = ? AND `current` = ?", externalId, true).
		First(&pkg).Error
	return pkg, err
}

func (d *GORMExamDAO) UpdateCurrentState(ctx context.Context, id int64, prevState sql.NullString, state string, now int64, clearCurrent bool) error {
	updates := map[string]any{
		"state":            state,
		"state_changed_at": now,
		"utime":            time.Now().UnixMilli(),
	}
	if clearCurrent {
		// 到达终态，永久退出当前考试包的候选
		updates["current"] = nil
	}
	res := d.db.WithContext(ctx).Model(&ScheduledExamPackage{}).
		Where("id = ? AND `current` = ? AND state <=> ?", id, true, prevState).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPackageStateConflict
	}
	return nil
}

func (d *GORMExamDAO) FindExamByExternalId(ctx context.Context, externalId string) (ScheduledExam, ExamFileInfo, error) {
	var exam ScheduledExam
	err := d.db.WithContext(ctx).Where("external_id = ?", externalId).First(&exam).Error
	if err != nil {
		return ScheduledExam{}, ExamFileInfo{}, err
	}
	var fileInfo ExamFileInfo
	err = d.db.WithContext(ctx).Where("id = ?", exam.ExamFileInfoId).First(&fileInfo).Error
	return exam, fileInfo, err
}

func (d *GORMExamDAO) PackageExamExternalIds(ctx context.Context, pkgId int64) ([]string, error) {
	var ids []string
	err := d.db.WithContext(ctx).Model(&ScheduledExam{}).
		Where("package_id = ?", pkgId).
		Order("id ASC").
		Pluck("external_id", &ids).Error
	return ids, err
}

func isUniqueConflict(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}

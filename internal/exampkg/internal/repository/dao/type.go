package dao

import "database/sql"

// ExamFileInfo 考试内容文件的元数据，来自考试注册中心
type ExamFileInfo struct {
	Id          int64  `gorm:"primaryKey,autoIncrement"`
	ExternalId  string `gorm:"type:varchar(128);not null;uniqueIndex:unq_external_id;comment:注册中心的文件ID"`
	Name        string `gorm:"type:varchar(512);not null"`
	Size        int64  `gorm:"not null;comment:字节数"`
	Sha256      string `gorm:"type:char(64);not null"`
	DecryptCode string `gorm:"type:varchar(256);not null;comment:解密码"`
	ModifiedAt  int64  `gorm:"not null;comment:注册中心的修改时间,UTC Unix毫秒数"`
	Ctime       int64
	Utime       int64
}

func (ExamFileInfo) TableName() string {
	return "exam_file_infos"
}

type ScheduledExam struct {
	Id             int64         `gorm:"primaryKey,autoIncrement"`
	ExternalId     string        `gorm:"type:varchar(128);not null;uniqueIndex:unq_external_id;comment:注册中心的考试ID"`
	ExamTitle      string        `gorm:"type:varchar(512);not null"`
	StartTime      int64         `gorm:"not null;comment:UTC Unix毫秒数"`
	EndTime        int64         `gorm:"not null;comment:UTC Unix毫秒数"`
	ModifiedAt     int64         `gorm:"not null;comment:UTC Unix毫秒数"`
	ExamFileInfoId int64         `gorm:"not null;index:idx_exam_file_info_id"`
	// PackageId 为 NULL 表示暂时不属于任何考试包
	PackageId sql.NullInt64 `gorm:"index:idx_package_id"`
	Ctime     int64
	Utime     int64
}

func (ScheduledExam) TableName() string {
	return "scheduled_exams"
}

type ScheduledExamPackage struct {
	Id         int64  `gorm:"primaryKey,autoIncrement"`
	ExternalId string `gorm:"type:varchar(128);not null;uniqueIndex:unq_external_id;comment:注册中心的考试包ID"`
	StartTime  int64  `gorm:"not null;index:idx_start_time;comment:UTC Unix毫秒数"`
	EndTime    int64  `gorm:"not null;comment:UTC Unix毫秒数"`
	LockTime   sql.NullInt64
	Locked     bool `gorm:"not null;default:0"`
	// State 为 NULL 表示还没被推进到任何状态
	State          sql.NullString `gorm:"type:varchar(16)"`
	StateChangedAt sql.NullInt64
	// Current 只会是 TRUE 或 NULL，不会是 FALSE。
	// MySQL 的唯一索引不约束 NULL，所以这个唯一索引保证了
	// 全表至多只有一行是当前考试包
	Current sql.NullBool `gorm:"uniqueIndex:unq_current"`
	Ctime   int64
	Utime   int64
}

func (ScheduledExamPackage) TableName() string {
	return "scheduled_exam_packages"
}

// ExamInfo 上报留档表，只增不改
type ExamInfo struct {
	Id        int64  `gorm:"primaryKey,autoIncrement"`
	RequestId string `gorm:"type:varchar(128);not null;uniqueIndex:unq_request_id;comment:上报请求的去重ID"`
	RawData   string `gorm:"type:text;comment:原始报文,原样留档"`
	Ctime     int64
}

func (ExamInfo) TableName() string {
	return "exam_infos"
}

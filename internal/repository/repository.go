package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Course    CourseRepository
	Faculty   FacultyRepository
	Subject   SubjectRepository
	Entry     TimetableEntryRepository
	PrintDate PrintDateRepository
	Tx        TxManager
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	repo := newScopedRepository(db)
	repo.Tx = NewTxManager(db)
	return repo
}

// newScopedRepository 创建绑定到指定 *gorm.DB（可能是事务）的 Repository，不含 Tx
func newScopedRepository(db *gorm.DB) *Repository {
	return &Repository{
		Course:    NewCourseRepo(db),
		Faculty:   NewFacultyRepo(db),
		Subject:   NewSubjectRepo(db),
		Entry:     NewTimetableEntryRepo(db),
		PrintDate: NewPrintDateRepo(db),
	}
}

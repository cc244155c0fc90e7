package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-timetable/backend/config"
	"course-timetable/backend/internal/model"
	"course-timetable/backend/internal/repository"
	pkgerrors "course-timetable/backend/pkg/errors"
)

// ── 内存数据源（所有 mock repo 共享，便于加载关联） ──

type memStore struct {
	seq        int
	courses    map[string]*model.Course
	faculties  map[string]*model.Faculty
	subjects   map[string]*model.Subject
	entries    map[string]*model.TimetableEntry
	entryOrder []string
	printDates map[string]*model.TimetablePrintDate
}

func newMemStore() *memStore {
	return &memStore{
		courses:    make(map[string]*model.Course),
		faculties:  make(map[string]*model.Faculty),
		subjects:   make(map[string]*model.Subject),
		entries:    make(map[string]*model.TimetableEntry),
		printDates: make(map[string]*model.TimetablePrintDate),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

// newMockRepository 返回由内存数据源支撑的 Repository
func newMockRepository() (*repository.Repository, *memStore) {
	store := newMemStore()
	repo := &repository.Repository{
		Course:    &mockCourseRepo{store},
		Faculty:   &mockFacultyRepo{store},
		Subject:   &mockSubjectRepo{store},
		Entry:     &mockEntryRepo{store},
		PrintDate: &mockPrintDateRepo{store},
	}
	repo.Tx = &mockTx{repo: repo}
	return repo, store
}

func testConfig() *config.Config {
	return &config.Config{Export: config.ExportConfig{
		CacheTTL:   time.Minute,
		RateLimit:  10,
		RateWindow: time.Minute,
		Timezone:   "Asia/Kolkata",
	}}
}

// ── Mock TxManager ──

type mockTx struct {
	repo  *repository.Repository
	calls int
}

func (m *mockTx) Serializable(_ context.Context, fn func(tx *repository.Repository) error) error {
	m.calls++
	return fn(m.repo)
}

// ── Mock CourseRepository ──

type mockCourseRepo struct{ s *memStore }

func (m *mockCourseRepo) Create(_ context.Context, c *model.Course) error {
	if c.CourseID == "" {
		c.CourseID = m.s.nextID("course")
	}
	cp := *c
	m.s.courses[c.CourseID] = &cp
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.s.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context, f repository.CourseFilter) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.s.courses {
		if f.Semester != nil && c.Semester != *f.Semester {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Name)) {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].Semester < result[j].Semester
	})
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, c *model.Course) error {
	cp := *c
	m.s.courses[c.CourseID] = &cp
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.s.courses, id)
	for sid, sub := range m.s.subjects {
		if sub.CourseID == id {
			delete(m.s.subjects, sid)
		}
	}
	for eid, e := range m.s.entries {
		if e.CourseID == id {
			delete(m.s.entries, eid)
		}
	}
	delete(m.s.printDates, id)
	return nil
}

// ── Mock FacultyRepository ──

type mockFacultyRepo struct{ s *memStore }

func (m *mockFacultyRepo) Create(_ context.Context, f *model.Faculty) error {
	if f.FacultyID == "" {
		f.FacultyID = m.s.nextID("faculty")
	}
	cp := *f
	m.s.faculties[f.FacultyID] = &cp
	return nil
}

func (m *mockFacultyRepo) GetByID(_ context.Context, id string) (*model.Faculty, error) {
	if f, ok := m.s.faculties[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFacultyRepo) List(_ context.Context, keyword string) ([]model.Faculty, error) {
	var result []model.Faculty
	for _, f := range m.s.faculties {
		if keyword == "" || strings.Contains(strings.ToLower(f.Name), strings.ToLower(keyword)) {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockFacultyRepo) Update(_ context.Context, f *model.Faculty) error {
	cp := *f
	m.s.faculties[f.FacultyID] = &cp
	return nil
}

func (m *mockFacultyRepo) Delete(_ context.Context, id string) error {
	delete(m.s.faculties, id)
	for _, sub := range m.s.subjects {
		if sub.FacultyID != nil && *sub.FacultyID == id {
			sub.FacultyID = nil
		}
	}
	for _, e := range m.s.entries {
		if e.FacultyID != nil && *e.FacultyID == id {
			e.FacultyID = nil
		}
	}
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct{ s *memStore }

func (m *mockSubjectRepo) hydrate(sub *model.Subject) *model.Subject {
	cp := *sub
	cp.Course, cp.Faculty = nil, nil
	if c, ok := m.s.courses[cp.CourseID]; ok {
		cc := *c
		cp.Course = &cc
	}
	if cp.FacultyID != nil {
		if f, ok := m.s.faculties[*cp.FacultyID]; ok {
			fc := *f
			cp.Faculty = &fc
		}
	}
	return &cp
}

func (m *mockSubjectRepo) Create(_ context.Context, sub *model.Subject) error {
	if sub.SubjectID == "" {
		sub.SubjectID = m.s.nextID("subject")
	}
	cp := *sub
	cp.Course, cp.Faculty = nil, nil
	m.s.subjects[sub.SubjectID] = &cp
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if sub, ok := m.s.subjects[id]; ok {
		return m.hydrate(sub), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context, f repository.SubjectFilter) ([]model.Subject, error) {
	var result []model.Subject
	for _, sub := range m.s.subjects {
		if f.CourseID != "" && sub.CourseID != f.CourseID {
			continue
		}
		if f.Track != "" && (sub.Track == nil || string(*sub.Track) != f.Track) {
			continue
		}
		if f.IsCommon != nil && sub.IsCommon != *f.IsCommon {
			continue
		}
		result = append(result, *m.hydrate(sub))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSubjectRepo) Update(ctx context.Context, sub *model.Subject) error {
	return m.Create(ctx, sub)
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string) error {
	delete(m.s.subjects, id)
	for _, e := range m.s.entries {
		if e.SubjectID != nil && *e.SubjectID == id {
			e.SubjectID = nil
		}
	}
	return nil
}

// ── Mock TimetableEntryRepository ──

type mockEntryRepo struct{ s *memStore }

func (m *mockEntryRepo) hydrate(e *model.TimetableEntry) model.TimetableEntry {
	cp := *e
	cp.Course, cp.Subject, cp.Faculty = nil, nil, nil
	if c, ok := m.s.courses[cp.CourseID]; ok {
		cc := *c
		cp.Course = &cc
	}
	if cp.SubjectID != nil {
		if sub, ok := m.s.subjects[*cp.SubjectID]; ok {
			sc := *sub
			cp.Subject = &sc
		}
	}
	if cp.FacultyID != nil {
		if f, ok := m.s.faculties[*cp.FacultyID]; ok {
			fc := *f
			cp.Faculty = &fc
		}
	}
	return cp
}

// ordered 按开始时间、插入顺序返回满足条件的条目
func (m *mockEntryRepo) ordered(keep func(e *model.TimetableEntry) bool) []model.TimetableEntry {
	var result []model.TimetableEntry
	for _, id := range m.s.entryOrder {
		e, ok := m.s.entries[id]
		if !ok || !keep(e) {
			continue
		}
		result = append(result, m.hydrate(e))
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result
}

func (m *mockEntryRepo) Create(_ context.Context, e *model.TimetableEntry) error {
	if e.EntryID == "" {
		e.EntryID = m.s.nextID("entry")
	}
	if e.Version == 0 {
		e.Version = 1
	}
	cp := *e
	cp.Course, cp.Subject, cp.Faculty = nil, nil, nil
	m.s.entries[e.EntryID] = &cp
	m.s.entryOrder = append(m.s.entryOrder, e.EntryID)
	return nil
}

func (m *mockEntryRepo) GetByID(_ context.Context, id string) (*model.TimetableEntry, error) {
	if e, ok := m.s.entries[id]; ok {
		h := m.hydrate(e)
		return &h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEntryRepo) List(_ context.Context, f repository.EntryFilter) ([]model.TimetableEntry, error) {
	return m.ordered(func(e *model.TimetableEntry) bool {
		switch {
		case f.CourseID != "" && e.CourseID != f.CourseID,
			f.Day != "" && string(e.Day) != f.Day,
			f.FacultyID != "" && (e.FacultyID == nil || *e.FacultyID != f.FacultyID),
			f.IsBreak != nil && e.IsBreak != *f.IsBreak,
			f.IsLab != nil && e.IsLab != *f.IsLab,
			f.LabChoice != "" && (e.LabChoice == nil || string(*e.LabChoice) != f.LabChoice):
			return false
		}
		return true
	}), nil
}

func (m *mockEntryRepo) ListByCourse(_ context.Context, courseID string) ([]model.TimetableEntry, error) {
	return m.ordered(func(e *model.TimetableEntry) bool { return e.CourseID == courseID }), nil
}

func (m *mockEntryRepo) ListCourseOverlapping(_ context.Context, courseID string, day model.Weekday, start, end model.ClockTime, excludeID string) ([]model.TimetableEntry, error) {
	return m.ordered(func(e *model.TimetableEntry) bool {
		return e.CourseID == courseID && e.Day == day && e.EntryID != excludeID && e.Overlaps(start, end)
	}), nil
}

func (m *mockEntryRepo) ListFacultyOverlapping(_ context.Context, facultyID string, day model.Weekday, start, end model.ClockTime, excludeID string) ([]model.TimetableEntry, error) {
	return m.ordered(func(e *model.TimetableEntry) bool {
		return e.FacultyID != nil && *e.FacultyID == facultyID && e.Day == day &&
			e.EntryID != excludeID && e.Overlaps(start, end)
	}), nil
}

func (m *mockEntryRepo) Update(_ context.Context, e *model.TimetableEntry) error {
	cur, ok := m.s.entries[e.EntryID]
	if !ok || cur.Version != e.Version {
		return pkgerrors.ErrOptimisticLock
	}
	e.Version++
	cp := *e
	cp.Course, cp.Subject, cp.Faculty = nil, nil, nil
	m.s.entries[e.EntryID] = &cp
	return nil
}

func (m *mockEntryRepo) Delete(_ context.Context, id string) error {
	delete(m.s.entries, id)
	return nil
}

// ── Mock PrintDateRepository ──

type mockPrintDateRepo struct{ s *memStore }

func (m *mockPrintDateRepo) GetByCourse(_ context.Context, courseID string) (*model.TimetablePrintDate, error) {
	if pd, ok := m.s.printDates[courseID]; ok {
		cp := *pd
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPrintDateRepo) Upsert(_ context.Context, pd *model.TimetablePrintDate) error {
	if pd.PrintDateID == "" {
		pd.PrintDateID = m.s.nextID("pd")
	}
	cp := *pd
	m.s.printDates[pd.CourseID] = &cp
	return nil
}

// ── Mock ExportCache ──

type mapCache struct {
	mu        sync.Mutex
	values    map[string][]byte
	revisions map[string]int64
	gets      int
	hits      int
}

func newMapCache() *mapCache {
	return &mapCache{values: make(map[string][]byte), revisions: make(map[string]int64)}
}

func (c *mapCache) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.values[key]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *mapCache) SetBytes(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *mapCache) Revision(_ context.Context, scope string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revisions[scope], nil
}

func (c *mapCache) BumpRevision(_ context.Context, scope string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revisions[scope]++
	return nil
}

// ── 测试数据构造 ──

type fixture struct {
	repo  *repository.Repository
	store *memStore
	cache *mapCache
	svc   *Service
}

func newFixture() *fixture {
	repo, store := newMockRepository()
	cache := newMapCache()
	return &fixture{
		repo:  repo,
		store: store,
		cache: cache,
		svc:   NewService(testConfig(), repo, cache, zap.NewNop()),
	}
}

func (f *fixture) course(name string, semester int) *model.Course {
	c := &model.Course{Name: name, Semester: semester}
	_ = f.repo.Course.Create(context.Background(), c)
	return c
}

func (f *fixture) faculty(name string) *model.Faculty {
	fa := &model.Faculty{Name: name}
	_ = f.repo.Faculty.Create(context.Background(), fa)
	return fa
}

func (f *fixture) subject(c *model.Course, name string, track *model.Track, common bool, fa *model.Faculty) *model.Subject {
	s := &model.Subject{Name: name, CourseID: c.CourseID, Track: track, IsCommon: common}
	if fa != nil {
		s.FacultyID = &fa.FacultyID
	}
	_ = f.repo.Subject.Create(context.Background(), s)
	return s
}

// lecture 直接写入数据源（绕过校验）
func (f *fixture) lecture(c *model.Course, day model.Weekday, start, end string, s *model.Subject, fa *model.Faculty) *model.TimetableEntry {
	e := &model.TimetableEntry{
		CourseID:  c.CourseID,
		Day:       day,
		StartTime: model.MustClockTime(start),
		EndTime:   model.MustClockTime(end),
	}
	if s != nil {
		e.SubjectID = &s.SubjectID
	}
	if fa != nil {
		e.FacultyID = &fa.FacultyID
	}
	_ = f.repo.Entry.Create(context.Background(), e)
	return e
}

func trackPtr(t model.Track) *model.Track { return &t }

func strPtr(s string) *string { return &s }

package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"aerocode/backend/internal/model"
	"aerocode/backend/internal/repository"
	pkgerrors "aerocode/backend/pkg/errors"
)

// mockStore 各 mock Repository 共享的内存数据，模拟外键与唯一约束
type mockStore struct {
	aircraft    map[string]*model.Aircraft
	parts       map[string]*model.Part
	stages      map[string]*model.Stage
	assignments map[string]map[string]bool // stageID → cpf
	employees   map[string]*model.Employee
	tests       map[string]*model.QualityTest
	reports     map[string]*model.Report
	logs        []model.StatusChangeLog
	metrics     []model.RequestMetric
	seq         int
}

func (s *mockStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

// newMockRepository 构造不持有数据库连接的 Repository 聚合
func newMockRepository() (*repository.Repository, *mockStore) {
	store := &mockStore{
		aircraft:    make(map[string]*model.Aircraft),
		parts:       make(map[string]*model.Part),
		stages:      make(map[string]*model.Stage),
		assignments: make(map[string]map[string]bool),
		employees:   make(map[string]*model.Employee),
		tests:       make(map[string]*model.QualityTest),
		reports:     make(map[string]*model.Report),
	}
	return &repository.Repository{
		Aircraft:        &mockAircraftRepo{s: store},
		Part:            &mockPartRepo{s: store},
		Stage:           &mockStageRepo{s: store},
		StageAssignment: &mockStageAssignmentRepo{s: store},
		Employee:        &mockEmployeeRepo{s: store},
		QualityTest:     &mockQualityTestRepo{s: store},
		Report:          &mockReportRepo{s: store},
		StatusLog:       &mockStatusLogRepo{s: store},
		Metric:          &mockMetricRepo{s: store},
	}, store
}

// ── Mock AircraftRepository ──

type mockAircraftRepo struct{ s *mockStore }

func (m *mockAircraftRepo) Create(_ context.Context, a *model.Aircraft) error {
	if _, ok := m.s.aircraft[a.Code]; ok {
		return gorm.ErrDuplicatedKey
	}
	cp := *a
	m.s.aircraft[a.Code] = &cp
	return nil
}

func (m *mockAircraftRepo) GetByCode(_ context.Context, code string) (*model.Aircraft, error) {
	if a, ok := m.s.aircraft[code]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAircraftRepo) GetWithRelations(ctx context.Context, code string) (*model.Aircraft, error) {
	a, err := m.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	a.Parts, _ = (&mockPartRepo{s: m.s}).List(ctx, code)
	a.Stages, _ = (&mockStageRepo{s: m.s}).List(ctx, code)
	a.Tests, _ = (&mockQualityTestRepo{s: m.s}).List(ctx, code)
	return a, nil
}

func (m *mockAircraftRepo) ListWithRelations(ctx context.Context) ([]model.Aircraft, error) {
	codes := make([]string, 0, len(m.s.aircraft))
	for code := range m.s.aircraft {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	result := make([]model.Aircraft, 0, len(codes))
	for _, code := range codes {
		a, _ := m.GetWithRelations(ctx, code)
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAircraftRepo) Update(_ context.Context, a *model.Aircraft) error {
	cp := *a
	cp.Parts, cp.Stages, cp.Tests = nil, nil, nil
	m.s.aircraft[a.Code] = &cp
	return nil
}

func (m *mockAircraftRepo) Delete(_ context.Context, code string) error {
	delete(m.s.aircraft, code)
	for id, p := range m.s.parts {
		if p.AircraftCode == code {
			delete(m.s.parts, id)
		}
	}
	for id, st := range m.s.stages {
		if st.AircraftCode == code {
			delete(m.s.stages, id)
			delete(m.s.assignments, id)
		}
	}
	for id, t := range m.s.tests {
		if t.AircraftCode == code {
			delete(m.s.tests, id)
		}
	}
	for id, r := range m.s.reports {
		if r.AircraftCode == code {
			delete(m.s.reports, id)
		}
	}
	return nil
}

// ── Mock PartRepository ──

type mockPartRepo struct{ s *mockStore }

func (m *mockPartRepo) checkConstraints(p *model.Part) error {
	if _, ok := m.s.aircraft[p.AircraftCode]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	for id, other := range m.s.parts {
		if id != p.PartID && other.Name == p.Name && other.AircraftCode == p.AircraftCode {
			return gorm.ErrDuplicatedKey
		}
	}
	return nil
}

func (m *mockPartRepo) Create(_ context.Context, p *model.Part) error {
	if err := m.checkConstraints(p); err != nil {
		return err
	}
	if p.PartID == "" {
		p.PartID = m.s.nextID("part")
	}
	cp := *p
	m.s.parts[p.PartID] = &cp
	return nil
}

func (m *mockPartRepo) GetByID(_ context.Context, id string) (*model.Part, error) {
	if p, ok := m.s.parts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPartRepo) GetByNameAndAircraft(_ context.Context, name, aircraftCode string) (*model.Part, error) {
	for _, p := range m.s.parts {
		if p.Name == name && p.AircraftCode == aircraftCode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPartRepo) List(_ context.Context, aircraftCode string) ([]model.Part, error) {
	var result []model.Part
	for _, p := range m.s.parts {
		if aircraftCode == "" || p.AircraftCode == aircraftCode {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockPartRepo) Update(_ context.Context, p *model.Part) error {
	if err := m.checkConstraints(p); err != nil {
		return err
	}
	stored, ok := m.s.parts[p.PartID]
	if !ok {
		return nil
	}
	stored.Name, stored.Origin, stored.Supplier, stored.AircraftCode = p.Name, p.Origin, p.Supplier, p.AircraftCode
	return nil
}

func (m *mockPartRepo) Delete(_ context.Context, id string) error {
	delete(m.s.parts, id)
	return nil
}

func (m *mockPartRepo) AdvanceStatus(_ context.Context, id, from, to string) (*model.Part, error) {
	p, ok := m.s.parts[id]
	if !ok || p.Status != from {
		return nil, pkgerrors.ErrOptimisticLock
	}
	p.Status = to
	cp := *p
	return &cp, nil
}

// ── Mock StageRepository ──

type mockStageRepo struct{ s *mockStore }

func (m *mockStageRepo) withAssignments(st *model.Stage, withEmployee bool) model.Stage {
	cp := *st
	cp.Assignments = nil
	cpfs := make([]string, 0)
	for cpf := range m.s.assignments[st.StageID] {
		cpfs = append(cpfs, cpf)
	}
	sort.Strings(cpfs)
	for _, cpf := range cpfs {
		a := model.StageAssignment{StageID: st.StageID, EmployeeCPF: cpf}
		if withEmployee {
			if e, ok := m.s.employees[cpf]; ok {
				ec := *e
				a.Employee = &ec
			}
		}
		cp.Assignments = append(cp.Assignments, a)
	}
	return cp
}

func (m *mockStageRepo) checkConstraints(st *model.Stage) error {
	if _, ok := m.s.aircraft[st.AircraftCode]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	for id, other := range m.s.stages {
		if id != st.StageID && other.Name == st.Name && other.AircraftCode == st.AircraftCode {
			return gorm.ErrDuplicatedKey
		}
	}
	return nil
}

func (m *mockStageRepo) Create(_ context.Context, st *model.Stage) error {
	if err := m.checkConstraints(st); err != nil {
		return err
	}
	if st.StageID == "" {
		st.StageID = m.s.nextID("stage")
	}
	cp := *st
	cp.Assignments = nil
	m.s.stages[st.StageID] = &cp
	return nil
}

func (m *mockStageRepo) GetByID(_ context.Context, id string) (*model.Stage, error) {
	if st, ok := m.s.stages[id]; ok {
		cp := m.withAssignments(st, false)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStageRepo) GetByNameAndAircraft(_ context.Context, name, aircraftCode string) (*model.Stage, error) {
	for _, st := range m.s.stages {
		if st.Name == name && st.AircraftCode == aircraftCode {
			cp := *st
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStageRepo) list(aircraftCode string, withEmployee bool) []model.Stage {
	var result []model.Stage
	for _, st := range m.s.stages {
		if aircraftCode == "" || st.AircraftCode == aircraftCode {
			result = append(result, m.withAssignments(st, withEmployee))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Deadline.Equal(result[j].Deadline) {
			return result[i].Deadline.Before(result[j].Deadline)
		}
		return result[i].Name < result[j].Name
	})
	return result
}

func (m *mockStageRepo) List(_ context.Context, aircraftCode string) ([]model.Stage, error) {
	return m.list(aircraftCode, false), nil
}

func (m *mockStageRepo) ListWithEmployees(_ context.Context, aircraftCode string) ([]model.Stage, error) {
	return m.list(aircraftCode, true), nil
}

func (m *mockStageRepo) Update(_ context.Context, st *model.Stage) error {
	if err := m.checkConstraints(st); err != nil {
		return err
	}
	stored, ok := m.s.stages[st.StageID]
	if !ok {
		return nil
	}
	stored.Name, stored.Deadline, stored.AircraftCode = st.Name, st.Deadline, st.AircraftCode
	return nil
}

func (m *mockStageRepo) Delete(_ context.Context, id string) error {
	delete(m.s.stages, id)
	delete(m.s.assignments, id)
	return nil
}

func (m *mockStageRepo) TransitionStatus(_ context.Context, id, from, to string) (*model.Stage, error) {
	st, ok := m.s.stages[id]
	if !ok || st.Status != from {
		return nil, pkgerrors.ErrOptimisticLock
	}
	st.Status = to
	cp := *st
	return &cp, nil
}

// ── Mock StageAssignmentRepository ──

type mockStageAssignmentRepo struct{ s *mockStore }

func (m *mockStageAssignmentRepo) Create(_ context.Context, a *model.StageAssignment) error {
	if _, ok := m.s.stages[a.StageID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	if _, ok := m.s.employees[a.EmployeeCPF]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	if m.s.assignments[a.StageID][a.EmployeeCPF] {
		return gorm.ErrDuplicatedKey
	}
	if m.s.assignments[a.StageID] == nil {
		m.s.assignments[a.StageID] = make(map[string]bool)
	}
	m.s.assignments[a.StageID][a.EmployeeCPF] = true
	return nil
}

func (m *mockStageAssignmentRepo) Exists(_ context.Context, stageID, cpf string) (bool, error) {
	return m.s.assignments[stageID][cpf], nil
}

func (m *mockStageAssignmentRepo) Delete(_ context.Context, stageID, cpf string) (int64, error) {
	if !m.s.assignments[stageID][cpf] {
		return 0, nil
	}
	delete(m.s.assignments[stageID], cpf)
	return 1, nil
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct{ s *mockStore }

func (m *mockEmployeeRepo) Create(_ context.Context, e *model.Employee) error {
	if _, ok := m.s.employees[e.CPF]; ok {
		return gorm.ErrDuplicatedKey
	}
	for _, other := range m.s.employees {
		if other.Login == e.Login {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *e
	m.s.employees[e.CPF] = &cp
	return nil
}

func (m *mockEmployeeRepo) GetByCPF(_ context.Context, cpf string) (*model.Employee, error) {
	if e, ok := m.s.employees[cpf]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByLogin(_ context.Context, login string) (*model.Employee, error) {
	for _, e := range m.s.employees {
		if e.Login == login {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.s.employees {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, e *model.Employee) error {
	for cpf, other := range m.s.employees {
		if cpf != e.CPF && other.Login == e.Login {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *e
	m.s.employees[e.CPF] = &cp
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, cpf string) error {
	for _, t := range m.s.tests {
		if t.EmployeeCPF == cpf {
			return gorm.ErrForeignKeyViolated
		}
	}
	delete(m.s.employees, cpf)
	for _, set := range m.s.assignments {
		delete(set, cpf)
	}
	return nil
}

// ── Mock QualityTestRepository ──

type mockQualityTestRepo struct{ s *mockStore }

func (m *mockQualityTestRepo) Create(_ context.Context, t *model.QualityTest) error {
	if _, ok := m.s.aircraft[t.AircraftCode]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	if _, ok := m.s.employees[t.EmployeeCPF]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	if t.TestID == "" {
		t.TestID = m.s.nextID("test")
	}
	cp := *t
	m.s.tests[t.TestID] = &cp
	return nil
}

func (m *mockQualityTestRepo) GetByID(_ context.Context, id string) (*model.QualityTest, error) {
	if t, ok := m.s.tests[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockQualityTestRepo) list(aircraftCode string, withEmployee bool) []model.QualityTest {
	var result []model.QualityTest
	for _, t := range m.s.tests {
		if aircraftCode != "" && t.AircraftCode != aircraftCode {
			continue
		}
		cp := *t
		if withEmployee {
			if e, ok := m.s.employees[t.EmployeeCPF]; ok {
				ec := *e
				cp.Employee = &ec
			}
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].PerformedOn.Equal(result[j].PerformedOn) {
			return result[i].PerformedOn.Before(result[j].PerformedOn)
		}
		return result[i].Type < result[j].Type
	})
	return result
}

func (m *mockQualityTestRepo) List(_ context.Context, aircraftCode string) ([]model.QualityTest, error) {
	return m.list(aircraftCode, false), nil
}

func (m *mockQualityTestRepo) ListWithEmployee(_ context.Context, aircraftCode string) ([]model.QualityTest, error) {
	return m.list(aircraftCode, true), nil
}

func (m *mockQualityTestRepo) Update(_ context.Context, t *model.QualityTest) error {
	cp := *t
	cp.Employee = nil
	m.s.tests[t.TestID] = &cp
	return nil
}

func (m *mockQualityTestRepo) Delete(_ context.Context, id string) error {
	delete(m.s.tests, id)
	return nil
}

// ── Mock ReportRepository ──

type mockReportRepo struct{ s *mockStore }

func (m *mockReportRepo) Create(_ context.Context, r *model.Report) error {
	if _, ok := m.s.aircraft[r.AircraftCode]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	if r.ReportID == "" {
		r.ReportID = m.s.nextID("report")
	}
	cp := *r
	m.s.reports[r.ReportID] = &cp
	return nil
}

func (m *mockReportRepo) GetByID(_ context.Context, id string) (*model.Report, error) {
	if r, ok := m.s.reports[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReportRepo) List(_ context.Context, aircraftCode string) ([]model.Report, error) {
	var result []model.Report
	for _, r := range m.s.reports {
		if aircraftCode == "" || r.AircraftCode == aircraftCode {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GeneratedAt.After(result[j].GeneratedAt) })
	return result, nil
}

func (m *mockReportRepo) Delete(_ context.Context, id string) error {
	delete(m.s.reports, id)
	return nil
}

// ── Mock StatusLogRepository ──

type mockStatusLogRepo struct{ s *mockStore }

func (m *mockStatusLogRepo) Create(_ context.Context, log *model.StatusChangeLog) error {
	log.LogID = m.s.nextID("log")
	log.CreatedAt = time.Now()
	m.s.logs = append(m.s.logs, *log)
	return nil
}

func (m *mockStatusLogRepo) List(_ context.Context, entityType, entityID string, offset, limit int) ([]model.StatusChangeLog, int64, error) {
	var matched []model.StatusChangeLog
	for i := len(m.s.logs) - 1; i >= 0; i-- {
		l := m.s.logs[i]
		if (entityType == "" || l.EntityType == entityType) && (entityID == "" || l.EntityID == entityID) {
			matched = append(matched, l)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return []model.StatusChangeLog{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ── Mock MetricRepository ──

type mockMetricRepo struct{ s *mockStore }

func (m *mockMetricRepo) Create(_ context.Context, metric *model.RequestMetric) error {
	if metric.CreatedAt.IsZero() {
		metric.CreatedAt = time.Now()
	}
	m.s.metrics = append(m.s.metrics, *metric)
	return nil
}

func (m *mockMetricRepo) ListRecent(_ context.Context, limit int) ([]model.RequestMetric, error) {
	result := make([]model.RequestMetric, len(m.s.metrics))
	copy(result, m.s.metrics)
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockMetricRepo) DeleteBefore(_ context.Context, before time.Time) (int64, error) {
	kept := m.s.metrics[:0]
	var n int64
	for _, metric := range m.s.metrics {
		if metric.CreatedAt.Before(before) {
			n++
			continue
		}
		kept = append(kept, metric)
	}
	m.s.metrics = kept
	return n, nil
}

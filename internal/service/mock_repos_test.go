package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/PeterLoonenMetis/eduview-sub000/internal/model"
	"github.com/PeterLoonenMetis/eduview-sub000/internal/repository"
)

// errInjected is returned by fakes configured to fail mid-operation.
var errInjected = errors.New("injected store failure")

// ── generic table ──

type memUnique[T any] struct {
	name string
	same func(a, b *T) bool
}

// memTable is an in-memory CRUD table. Rows are stored by value so callers
// never alias stored state.
type memTable[T any] struct {
	rows    map[string]T
	seq     []string
	id      func(*T) *string
	uniques []memUnique[T]
}

func newMemTable[T any](id func(*T) *string, uniques ...memUnique[T]) *memTable[T] {
	return &memTable[T]{rows: make(map[string]T), id: id, uniques: uniques}
}

func (t *memTable[T]) violates(v *T) error {
	self := *t.id(v)
	for _, u := range t.uniques {
		for _, key := range t.seq {
			if key == self {
				continue
			}
			row := t.rows[key]
			if u.same(&row, v) {
				return &pgconn.PgError{Code: "23505", ConstraintName: u.name, Message: "duplicate key value violates unique constraint"}
			}
		}
	}
	return nil
}

func (t *memTable[T]) Create(_ context.Context, v *T) error {
	if *t.id(v) == "" {
		*t.id(v) = uuid.NewString()
	}
	if err := t.violates(v); err != nil {
		return err
	}
	key := *t.id(v)
	if _, ok := t.rows[key]; !ok {
		t.seq = append(t.seq, key)
	}
	t.rows[key] = *v
	return nil
}

func (t *memTable[T]) GetByID(_ context.Context, id string) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (t *memTable[T]) Update(_ context.Context, v *T) error {
	if err := t.violates(v); err != nil {
		return err
	}
	key := *t.id(v)
	if _, ok := t.rows[key]; !ok {
		t.seq = append(t.seq, key)
	}
	t.rows[key] = *v
	return nil
}

func (t *memTable[T]) Delete(_ context.Context, id string) error {
	if _, ok := t.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	t.remove(id)
	return nil
}

func (t *memTable[T]) remove(id string) {
	delete(t.rows, id)
	for i, key := range t.seq {
		if key == id {
			t.seq = append(t.seq[:i:i], t.seq[i+1:]...)
			break
		}
	}
}

// where returns the matching rows in insertion order, sorted by less when given.
func (t *memTable[T]) where(keep func(*T) bool, less func(a, b *T) bool) []T {
	var out []T
	for _, key := range t.seq {
		row := t.rows[key]
		if keep == nil || keep(&row) {
			out = append(out, row)
		}
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	}
	return out
}

func (t *memTable[T]) put(v T) T {
	_ = t.Create(context.Background(), &v)
	return v
}

func (t *memTable[T]) snapshot() func() {
	rows := make(map[string]T, len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}
	seq := append([]string(nil), t.seq...)
	return func() {
		t.rows = rows
		t.seq = seq
	}
}

// ── generic sibling ordering ──

type memSiblings[T any] struct {
	t      *memTable[T]
	parent func(*T) string
	order  func(*T) *int
	// failAfter makes SetSortOrders fail after that many writes; negative disables.
	failAfter int
}

func newMemSiblings[T any](t *memTable[T], parent func(*T) string, order func(*T) *int) *memSiblings[T] {
	return &memSiblings[T]{t: t, parent: parent, order: order, failAfter: -1}
}

func (s *memSiblings[T]) group(parentID string) []T {
	return s.t.where(
		func(v *T) bool { return s.parent(v) == parentID },
		func(a, b *T) bool {
			if *s.order(a) != *s.order(b) {
				return *s.order(a) < *s.order(b)
			}
			return *s.t.id(a) < *s.t.id(b)
		},
	)
}

func (s *memSiblings[T]) NextSortOrder(_ context.Context, parentID string) (int, error) {
	next := 1
	for _, row := range s.group(parentID) {
		if o := *s.order(&row); o >= next {
			next = o + 1
		}
	}
	return next, nil
}

func (s *memSiblings[T]) LockSiblingIDs(_ context.Context, parentID string) ([]string, error) {
	rows := s.group(parentID)
	ids := make([]string, 0, len(rows))
	for i := range rows {
		ids = append(ids, *s.t.id(&rows[i]))
	}
	return ids, nil
}

func (s *memSiblings[T]) SetSortOrders(_ context.Context, parentID string, ids []string) error {
	for i, id := range ids {
		if s.failAfter >= 0 && i >= s.failAfter {
			return errInjected
		}
		row, ok := s.t.rows[id]
		if !ok || s.parent(&row) != parentID {
			return gorm.ErrRecordNotFound
		}
		*s.order(&row) = i + 1
		s.t.rows[id] = row
	}
	return nil
}

// ── store ──

// memStore is a complete in-memory repository. Transactions snapshot every
// table and restore them when fn fails. Deletes do not cascade.
type memStore struct {
	institutes    *memTable[model.Institute]
	academies     *memTable[model.Academy]
	programs      *memTable[model.Program]
	mboConfigs    *memTable[model.MBOConfig]
	hboConfigs    *memTable[model.HBOConfig]
	kerntaken     *memTable[model.Kerntaak]
	werkprocessen *memTable[model.Werkproces]
	keuzedelen    *memTable[model.Keuzedeel]
	cohorts       *memTable[model.Cohort]
	visions       *memTable[model.Vision]
	principles    *memTable[model.VisionPrinciple]
	outcomes      *memTable[model.LearningOutcome]
	years         *memTable[model.AcademicYear]
	blocks        *memTable[model.Block]
	units         *memTable[model.TeachingUnit]
	weeks         *memTable[model.WeekPlanning]
	activities    *memTable[model.LearningActivity]
	assignments   *memTable[model.Assignment]
	assessments   *memTable[model.Assessment]
	criteria      *memTable[model.AssessmentCriterion]
	levels        *memTable[model.RubricLevel]

	outcomeVisions   *memTable[model.OutcomeVisionLink]
	blockVisions     *memTable[model.BlockVisionRelation]
	assignOutcomes   *memTable[model.AssignmentOutcome]
	assessOutcomes   *memTable[model.AssessmentOutcome]
	blockSiblings    *memSiblings[model.Block]
	outcomeSiblings  *memSiblings[model.LearningOutcome]
	principleSibling *memSiblings[model.VisionPrinciple]

	repo *repository.Repository
}

func newMemStore() *memStore {
	s := &memStore{
		institutes: newMemTable(func(v *model.Institute) *string { return &v.InstituteID },
			memUnique[model.Institute]{"uq_institutes_short_code", func(a, b *model.Institute) bool { return a.ShortCode == b.ShortCode }}),
		academies: newMemTable(func(v *model.Academy) *string { return &v.AcademyID },
			memUnique[model.Academy]{"uq_academies_institute_code", func(a, b *model.Academy) bool {
				return a.InstituteID == b.InstituteID && a.Code == b.Code
			}}),
		programs:   newMemTable(func(v *model.Program) *string { return &v.ProgramID }),
		mboConfigs: newMemTable(func(v *model.MBOConfig) *string { return &v.MBOConfigID },
			memUnique[model.MBOConfig]{"uq_mbo_configs_program", func(a, b *model.MBOConfig) bool { return a.ProgramID == b.ProgramID }}),
		hboConfigs: newMemTable(func(v *model.HBOConfig) *string { return &v.HBOConfigID },
			memUnique[model.HBOConfig]{"uq_hbo_configs_program", func(a, b *model.HBOConfig) bool { return a.ProgramID == b.ProgramID }}),
		kerntaken:     newMemTable(func(v *model.Kerntaak) *string { return &v.KerntaakID }),
		werkprocessen: newMemTable(func(v *model.Werkproces) *string { return &v.WerkprocesID }),
		keuzedelen:    newMemTable(func(v *model.Keuzedeel) *string { return &v.KeuzedeelID }),
		cohorts:       newMemTable(func(v *model.Cohort) *string { return &v.CohortID },
			memUnique[model.Cohort]{"uq_cohorts_one_active_per_program", func(a, b *model.Cohort) bool {
				return a.ProgramID == b.ProgramID && a.IsActive && b.IsActive
			}}),
		visions: newMemTable(func(v *model.Vision) *string { return &v.VisionID },
			memUnique[model.Vision]{"uq_visions_cohort_type", func(a, b *model.Vision) bool {
				return a.CohortID == b.CohortID && a.Type == b.Type
			}}),
		principles: newMemTable(func(v *model.VisionPrinciple) *string { return &v.PrincipleID }),
		outcomes:   newMemTable(func(v *model.LearningOutcome) *string { return &v.OutcomeID }),
		years:      newMemTable(func(v *model.AcademicYear) *string { return &v.AcademicYearID }),
		blocks:     newMemTable(func(v *model.Block) *string { return &v.BlockID }),
		units:      newMemTable(func(v *model.TeachingUnit) *string { return &v.TeachingUnitID }),
		weeks:      newMemTable(func(v *model.WeekPlanning) *string { return &v.WeekPlanningID },
			memUnique[model.WeekPlanning]{"uq_week_plannings_unit_week", func(a, b *model.WeekPlanning) bool {
				return a.TeachingUnitID == b.TeachingUnitID && a.WeekNumber == b.WeekNumber
			}}),
		activities:  newMemTable(func(v *model.LearningActivity) *string { return &v.ActivityID }),
		assignments: newMemTable(func(v *model.Assignment) *string { return &v.AssignmentID }),
		assessments: newMemTable(func(v *model.Assessment) *string { return &v.AssessmentID }),
		criteria:    newMemTable(func(v *model.AssessmentCriterion) *string { return &v.CriterionID }),
		levels:      newMemTable(func(v *model.RubricLevel) *string { return &v.RubricLevelID },
			memUnique[model.RubricLevel]{"uq_rubric_levels_criterion_level", func(a, b *model.RubricLevel) bool {
				return a.CriterionID == b.CriterionID && a.LevelNumber == b.LevelNumber
			}}),

		outcomeVisions: newMemTable(func(v *model.OutcomeVisionLink) *string { return &v.LinkID }),
		blockVisions:   newMemTable(func(v *model.BlockVisionRelation) *string { return &v.RelationID }),
		assignOutcomes: newMemTable(func(v *model.AssignmentOutcome) *string { return &v.LinkID }),
		assessOutcomes: newMemTable(func(v *model.AssessmentOutcome) *string { return &v.LinkID }),
	}

	s.blockSiblings = newMemSiblings(s.blocks,
		func(v *model.Block) string { return v.AcademicYearID }, func(v *model.Block) *int { return &v.SortOrder })
	s.outcomeSiblings = newMemSiblings(s.outcomes,
		func(v *model.LearningOutcome) string { return v.CohortID }, func(v *model.LearningOutcome) *int { return &v.SortOrder })
	s.principleSibling = newMemSiblings(s.principles,
		func(v *model.VisionPrinciple) string { return v.VisionID }, func(v *model.VisionPrinciple) *int { return &v.SortOrder })

	s.repo = &repository.Repository{
		Tx: &memTransactor{store: s},

		Institute: &memInstituteRepo{s.institutes},
		Academy:   &memAcademyRepo{s.academies},
		Program:   &memProgramRepo{s.programs},
		MBOConfig: &memMBOConfigRepo{memTable: s.mboConfigs, store: s},
		HBOConfig: &memHBOConfigRepo{s.hboConfigs},
		Kerntaak:  &memKerntaakRepo{s.kerntaken, newMemSiblings(s.kerntaken,
			func(v *model.Kerntaak) string { return v.MBOConfigID }, func(v *model.Kerntaak) *int { return &v.SortOrder })},
		Werkproces: &memWerkprocesRepo{s.werkprocessen, newMemSiblings(s.werkprocessen,
			func(v *model.Werkproces) string { return v.KerntaakID }, func(v *model.Werkproces) *int { return &v.SortOrder })},
		Keuzedeel: &memKeuzedeelRepo{s.keuzedelen, newMemSiblings(s.keuzedelen,
			func(v *model.Keuzedeel) string { return v.MBOConfigID }, func(v *model.Keuzedeel) *int { return &v.SortOrder })},
		Cohort:       &memCohortRepo{memTable: s.cohorts, store: s},
		Vision:       &memVisionRepo{memTable: s.visions, store: s},
		Principle:    &memPrincipleRepo{s.principles, s.principleSibling},
		Outcome:      &memOutcomeRepo{s.outcomes, s.outcomeSiblings},
		AcademicYear: &memAcademicYearRepo{s.years},
		Block:        &memBlockRepo{memTable: s.blocks, memSiblings: s.blockSiblings, store: s},
		TeachingUnit: &memTeachingUnitRepo{s.units, newMemSiblings(s.units,
			func(v *model.TeachingUnit) string { return v.BlockID }, func(v *model.TeachingUnit) *int { return &v.SortOrder })},
		WeekPlanning: &memWeekPlanningRepo{memTable: s.weeks, store: s},
		Activity:     &memActivityRepo{s.activities, newMemSiblings(s.activities,
			func(v *model.LearningActivity) string { return v.WeekPlanningID }, func(v *model.LearningActivity) *int { return &v.SortOrder })},
		Assignment: &memAssignmentRepo{s.assignments, newMemSiblings(s.assignments,
			func(v *model.Assignment) string { return v.TeachingUnitID }, func(v *model.Assignment) *int { return &v.SortOrder })},
		Assessment: &memAssessmentRepo{memTable: s.assessments, memSiblings: newMemSiblings(s.assessments,
			func(v *model.Assessment) string { return v.BlockID }, func(v *model.Assessment) *int { return &v.SortOrder }), store: s},
		Criterion: &memCriterionRepo{memTable: s.criteria, memSiblings: newMemSiblings(s.criteria,
			func(v *model.AssessmentCriterion) string { return v.AssessmentID }, func(v *model.AssessmentCriterion) *int { return &v.SortOrder }), store: s},
		RubricLevel: &memRubricLevelRepo{s.levels},
		Link:        &memLinkRepo{store: s},
	}
	return s
}

func (s *memStore) snapshot() func() {
	restores := []func(){
		s.institutes.snapshot(), s.academies.snapshot(), s.programs.snapshot(),
		s.mboConfigs.snapshot(), s.hboConfigs.snapshot(), s.kerntaken.snapshot(),
		s.werkprocessen.snapshot(), s.keuzedelen.snapshot(), s.cohorts.snapshot(),
		s.visions.snapshot(), s.principles.snapshot(), s.outcomes.snapshot(),
		s.years.snapshot(), s.blocks.snapshot(), s.units.snapshot(),
		s.weeks.snapshot(), s.activities.snapshot(), s.assignments.snapshot(),
		s.assessments.snapshot(), s.criteria.snapshot(), s.levels.snapshot(),
		s.outcomeVisions.snapshot(), s.blockVisions.snapshot(),
		s.assignOutcomes.snapshot(), s.assessOutcomes.snapshot(),
	}
	return func() {
		for _, r := range restores {
			r()
		}
	}
}

type memTransactor struct {
	store *memStore
}

func (t *memTransactor) Transaction(_ context.Context, fn func(tx *repository.Repository) error) error {
	restore := t.store.snapshot()
	if err := fn(t.store.repo); err != nil {
		restore()
		return err
	}
	return nil
}

// ── seeding ──

func (s *memStore) seedProgram(eduType model.EducationType, durationYears int, totalCredits float64) model.Program {
	inst := s.institutes.put(model.Institute{Name: "Hogeschool Test", ShortCode: uuid.NewString()[:8]})
	acad := s.academies.put(model.Academy{InstituteID: inst.InstituteID, Name: "Academie ICT", Code: "ICT"})
	return s.programs.put(model.Program{
		AcademyID:     acad.AcademyID,
		Name:          "HBO-ICT",
		Code:          "HICT",
		EducationType: eduType,
		DurationYears: durationYears,
		TotalCredits:  totalCredits,
	})
}

func (s *memStore) seedCohort(programID, name string) model.Cohort {
	return s.cohorts.put(model.Cohort{ProgramID: programID, Name: name, StartYear: 2025, EndYear: 2029, Status: model.CohortDraft})
}

func (s *memStore) seedYear(cohortID string, n int) model.AcademicYear {
	return s.years.put(model.AcademicYear{CohortID: cohortID, YearNumber: n, Name: academicYearName(n), TargetCredits: DefaultTargetCredits, SortOrder: n})
}

func (s *memStore) seedBlock(yearID, code string, credits float64, order int) model.Block {
	return s.blocks.put(model.Block{AcademicYearID: yearID, Code: code, Name: "Blok " + code, Credits: credits, SortOrder: order,
		Type: model.BlockEducational, DurationWeeks: 10, Status: model.StatusDraft, Color: defaultBlockColor})
}

func (s *memStore) seedOutcome(cohortID, code string, order int) model.LearningOutcome {
	return s.outcomes.put(model.LearningOutcome{CohortID: cohortID, Code: code, Title: "Leeruitkomst " + code, SortOrder: order})
}

func (s *memStore) seedAssessment(blockID, code string) model.Assessment {
	return s.assessments.put(model.Assessment{BlockID: blockID, Code: code, Title: "Toets " + code,
		AssessmentType: model.AssessmentSummative, AssessmentForm: model.FormWrittenExam, Weight: 100, SortOrder: 1})
}

// ── institutes & programs ──

type memInstituteRepo struct{ *memTable[model.Institute] }

func (r *memInstituteRepo) List(_ context.Context) ([]model.Institute, error) {
	return r.where(nil, func(a, b *model.Institute) bool { return a.Name < b.Name }), nil
}

type memAcademyRepo struct{ *memTable[model.Academy] }

func (r *memAcademyRepo) ListByInstitute(_ context.Context, instituteID string) ([]model.Academy, error) {
	return r.where(func(v *model.Academy) bool { return v.InstituteID == instituteID },
		func(a, b *model.Academy) bool { return a.Name < b.Name }), nil
}

type memProgramRepo struct{ *memTable[model.Program] }

func (r *memProgramRepo) ListByAcademy(_ context.Context, academyID string) ([]model.Program, error) {
	return r.where(func(v *model.Program) bool { return v.AcademyID == academyID },
		func(a, b *model.Program) bool { return a.Name < b.Name }), nil
}

type memMBOConfigRepo struct {
	*memTable[model.MBOConfig]
	store *memStore
}

func (r *memMBOConfigRepo) GetByProgram(_ context.Context, programID string) (*model.MBOConfig, error) {
	found := r.where(func(v *model.MBOConfig) bool { return v.ProgramID == programID }, nil)
	if len(found) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	cfg := found[0]
	bySort := func(a, b *model.Kerntaak) bool { return a.SortOrder < b.SortOrder }
	cfg.Kerntaken = r.store.kerntaken.where(func(v *model.Kerntaak) bool { return v.MBOConfigID == cfg.MBOConfigID }, bySort)
	for i := range cfg.Kerntaken {
		id := cfg.Kerntaken[i].KerntaakID
		cfg.Kerntaken[i].Werkprocessen = r.store.werkprocessen.where(
			func(v *model.Werkproces) bool { return v.KerntaakID == id },
			func(a, b *model.Werkproces) bool { return a.SortOrder < b.SortOrder })
	}
	cfg.Keuzedelen = r.store.keuzedelen.where(func(v *model.Keuzedeel) bool { return v.MBOConfigID == cfg.MBOConfigID },
		func(a, b *model.Keuzedeel) bool { return a.SortOrder < b.SortOrder })
	return &cfg, nil
}

type memHBOConfigRepo struct{ *memTable[model.HBOConfig] }

func (r *memHBOConfigRepo) GetByProgram(_ context.Context, programID string) (*model.HBOConfig, error) {
	found := r.where(func(v *model.HBOConfig) bool { return v.ProgramID == programID }, nil)
	if len(found) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &found[0], nil
}

type memKerntaakRepo struct {
	*memTable[model.Kerntaak]
	*memSiblings[model.Kerntaak]
}

func (r *memKerntaakRepo) ListByConfig(_ context.Context, mboConfigID string) ([]model.Kerntaak, error) {
	return r.group(mboConfigID), nil
}

type memWerkprocesRepo struct {
	*memTable[model.Werkproces]
	*memSiblings[model.Werkproces]
}

func (r *memWerkprocesRepo) ListByKerntaak(_ context.Context, kerntaakID string) ([]model.Werkproces, error) {
	return r.group(kerntaakID), nil
}

type memKeuzedeelRepo struct {
	*memTable[model.Keuzedeel]
	*memSiblings[model.Keuzedeel]
}

func (r *memKeuzedeelRepo) ListByConfig(_ context.Context, mboConfigID string) ([]model.Keuzedeel, error) {
	return r.group(mboConfigID), nil
}

// ── cohorts, visions, outcomes ──

type memCohortRepo struct {
	*memTable[model.Cohort]
	store *memStore
}

func (r *memCohortRepo) ListByProgram(_ context.Context, programID string) ([]model.Cohort, error) {
	return r.where(func(v *model.Cohort) bool { return v.ProgramID == programID },
		func(a, b *model.Cohort) bool { return a.StartYear > b.StartYear }), nil
}

func (r *memCohortRepo) Activate(_ context.Context, programID, cohortID string) error {
	target, ok := r.rows[cohortID]
	if !ok || target.ProgramID != programID {
		return gorm.ErrRecordNotFound
	}
	for key, row := range r.rows {
		if row.ProgramID == programID && key != cohortID && row.IsActive {
			row.IsActive = false
			r.rows[key] = row
		}
	}
	target.IsActive = true
	r.rows[cohortID] = target
	return nil
}

func (r *memCohortRepo) HasContent(_ context.Context, cohortID string) (bool, error) {
	visions := r.store.visions.where(func(v *model.Vision) bool { return v.CohortID == cohortID }, nil)
	years := r.store.years.where(func(v *model.AcademicYear) bool { return v.CohortID == cohortID }, nil)
	return len(visions) > 0 || len(years) > 0, nil
}

func (r *memCohortRepo) active(programID string) []model.Cohort {
	return r.where(func(v *model.Cohort) bool { return v.ProgramID == programID && v.IsActive }, nil)
}

var visionRank = map[model.VisionType]int{model.VisionLearning: 1, model.VisionProfession: 2, model.VisionAssessment: 3}

type memVisionRepo struct {
	*memTable[model.Vision]
	store *memStore
}

func (r *memVisionRepo) ListByCohort(_ context.Context, cohortID string) ([]model.Vision, error) {
	list := r.where(func(v *model.Vision) bool { return v.CohortID == cohortID },
		func(a, b *model.Vision) bool { return visionRank[a.Type] < visionRank[b.Type] })
	for i := range list {
		list[i].Principles = r.store.principleSibling.group(list[i].VisionID)
	}
	return list, nil
}

func (r *memVisionRepo) ListByIDs(_ context.Context, ids []string) ([]model.Vision, error) {
	want := toSet(ids)
	return r.where(func(v *model.Vision) bool { return want[v.VisionID] }, nil), nil
}

type memPrincipleRepo struct {
	*memTable[model.VisionPrinciple]
	*memSiblings[model.VisionPrinciple]
}

func (r *memPrincipleRepo) ListByVision(_ context.Context, visionID string) ([]model.VisionPrinciple, error) {
	return r.group(visionID), nil
}

type memOutcomeRepo struct {
	*memTable[model.LearningOutcome]
	*memSiblings[model.LearningOutcome]
}

func (r *memOutcomeRepo) ListByCohort(_ context.Context, cohortID string) ([]model.LearningOutcome, error) {
	return r.group(cohortID), nil
}

func (r *memOutcomeRepo) ListByIDs(_ context.Context, ids []string) ([]model.LearningOutcome, error) {
	want := toSet(ids)
	return r.where(func(v *model.LearningOutcome) bool { return want[v.OutcomeID] }, nil), nil
}

// ── curriculum ──

type memAcademicYearRepo struct{ *memTable[model.AcademicYear] }

func (r *memAcademicYearRepo) ListByCohort(_ context.Context, cohortID string) ([]model.AcademicYear, error) {
	return r.where(func(v *model.AcademicYear) bool { return v.CohortID == cohortID },
		func(a, b *model.AcademicYear) bool { return a.YearNumber < b.YearNumber }), nil
}

type memBlockRepo struct {
	*memTable[model.Block]
	*memSiblings[model.Block]
	store *memStore
}

func (r *memBlockRepo) ListByYear(_ context.Context, academicYearID string) ([]model.Block, error) {
	return r.group(academicYearID), nil
}

func (r *memBlockRepo) ListByCohort(_ context.Context, cohortID string) ([]repository.CohortBlock, error) {
	var out []repository.CohortBlock
	for _, y := range r.store.years.where(func(v *model.AcademicYear) bool { return v.CohortID == cohortID },
		func(a, b *model.AcademicYear) bool { return a.YearNumber < b.YearNumber }) {
		for _, b := range r.group(y.AcademicYearID) {
			out = append(out, repository.CohortBlock{Block: b, YearNumber: y.YearNumber})
		}
	}
	return out, nil
}

func (r *memBlockRepo) SumCreditsByYear(_ context.Context, academicYearID string) (float64, error) {
	var sum float64
	for _, b := range r.group(academicYearID) {
		sum += b.Credits
	}
	return sum, nil
}

func (r *memBlockRepo) SumCreditsByCohort(ctx context.Context, cohortID string) (float64, error) {
	blocks, _ := r.ListByCohort(ctx, cohortID)
	var sum float64
	for _, b := range blocks {
		sum += b.Credits
	}
	return sum, nil
}

type memTeachingUnitRepo struct {
	*memTable[model.TeachingUnit]
	*memSiblings[model.TeachingUnit]
}

func (r *memTeachingUnitRepo) ListByBlock(_ context.Context, blockID string) ([]model.TeachingUnit, error) {
	return r.group(blockID), nil
}

type memWeekPlanningRepo struct {
	*memTable[model.WeekPlanning]
	store *memStore
}

func (r *memWeekPlanningRepo) ListByUnit(_ context.Context, teachingUnitID string) ([]model.WeekPlanning, error) {
	list := r.where(func(v *model.WeekPlanning) bool { return v.TeachingUnitID == teachingUnitID },
		func(a, b *model.WeekPlanning) bool { return a.WeekNumber < b.WeekNumber })
	for i := range list {
		id := list[i].WeekPlanningID
		list[i].Activities = r.store.activities.where(func(v *model.LearningActivity) bool { return v.WeekPlanningID == id },
			func(a, b *model.LearningActivity) bool { return a.SortOrder < b.SortOrder })
	}
	return list, nil
}

type memActivityRepo struct {
	*memTable[model.LearningActivity]
	*memSiblings[model.LearningActivity]
}

func (r *memActivityRepo) ListByWeek(_ context.Context, weekPlanningID string) ([]model.LearningActivity, error) {
	return r.group(weekPlanningID), nil
}

type memAssignmentRepo struct {
	*memTable[model.Assignment]
	*memSiblings[model.Assignment]
}

func (r *memAssignmentRepo) ListByUnit(_ context.Context, teachingUnitID string) ([]model.Assignment, error) {
	return r.group(teachingUnitID), nil
}

// ── assessments ──

type memAssessmentRepo struct {
	*memTable[model.Assessment]
	*memSiblings[model.Assessment]
	store *memStore
}

func (r *memAssessmentRepo) ListByBlock(_ context.Context, blockID string) ([]model.Assessment, error) {
	list := r.group(blockID)
	for i := range list {
		id := list[i].AssessmentID
		list[i].Outcomes = r.store.assessOutcomes.where(func(v *model.AssessmentOutcome) bool { return v.AssessmentID == id }, nil)
	}
	return list, nil
}

type memCriterionRepo struct {
	*memTable[model.AssessmentCriterion]
	*memSiblings[model.AssessmentCriterion]
	store *memStore
}

func (r *memCriterionRepo) ListByAssessment(_ context.Context, assessmentID string) ([]model.AssessmentCriterion, error) {
	list := r.group(assessmentID)
	for i := range list {
		id := list[i].CriterionID
		list[i].Levels = r.store.levels.where(func(v *model.RubricLevel) bool { return v.CriterionID == id },
			func(a, b *model.RubricLevel) bool { return a.LevelNumber < b.LevelNumber })
	}
	return list, nil
}

type memRubricLevelRepo struct{ *memTable[model.RubricLevel] }

func (r *memRubricLevelRepo) ListByCriterion(_ context.Context, criterionID string) ([]model.RubricLevel, error) {
	return r.where(func(v *model.RubricLevel) bool { return v.CriterionID == criterionID },
		func(a, b *model.RubricLevel) bool { return a.LevelNumber < b.LevelNumber }), nil
}

// ── links ──

type memLinkRepo struct {
	store *memStore
	// failReplace makes every Replace* call fail after deleting the old links.
	failReplace bool
}

func replaceMem[T any](r *memLinkRepo, t *memTable[T], owner func(*T) string, ownerID string, links []T) error {
	for _, row := range t.where(func(v *T) bool { return owner(v) == ownerID }, nil) {
		t.remove(*t.id(&row))
	}
	if r.failReplace {
		return errInjected
	}
	for i := range links {
		if err := t.Create(context.Background(), &links[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *memLinkRepo) ListOutcomeVisionLinks(_ context.Context, outcomeID string) ([]model.OutcomeVisionLink, error) {
	return r.store.outcomeVisions.where(func(v *model.OutcomeVisionLink) bool { return v.OutcomeID == outcomeID }, nil), nil
}

func (r *memLinkRepo) ReplaceOutcomeVisionLinks(_ context.Context, outcomeID string, links []model.OutcomeVisionLink) error {
	return replaceMem(r, r.store.outcomeVisions, func(v *model.OutcomeVisionLink) string { return v.OutcomeID }, outcomeID, links)
}

func (r *memLinkRepo) ListBlockVisionRelations(_ context.Context, blockID string) ([]model.BlockVisionRelation, error) {
	return r.store.blockVisions.where(func(v *model.BlockVisionRelation) bool { return v.BlockID == blockID }, nil), nil
}

func (r *memLinkRepo) ReplaceBlockVisionRelations(_ context.Context, blockID string, rels []model.BlockVisionRelation) error {
	return replaceMem(r, r.store.blockVisions, func(v *model.BlockVisionRelation) string { return v.BlockID }, blockID, rels)
}

func (r *memLinkRepo) ListAssignmentOutcomes(_ context.Context, assignmentID string) ([]model.AssignmentOutcome, error) {
	return r.store.assignOutcomes.where(func(v *model.AssignmentOutcome) bool { return v.AssignmentID == assignmentID }, nil), nil
}

func (r *memLinkRepo) ReplaceAssignmentOutcomes(_ context.Context, assignmentID string, links []model.AssignmentOutcome) error {
	return replaceMem(r, r.store.assignOutcomes, func(v *model.AssignmentOutcome) string { return v.AssignmentID }, assignmentID, links)
}

func (r *memLinkRepo) ListAssessmentOutcomes(_ context.Context, assessmentID string) ([]model.AssessmentOutcome, error) {
	return r.store.assessOutcomes.where(func(v *model.AssessmentOutcome) bool { return v.AssessmentID == assessmentID }, nil), nil
}

func (r *memLinkRepo) ReplaceAssessmentOutcomes(_ context.Context, assessmentID string, links []model.AssessmentOutcome) error {
	return replaceMem(r, r.store.assessOutcomes, func(v *model.AssessmentOutcome) string { return v.AssessmentID }, assessmentID, links)
}

func (r *memLinkRepo) ListCoverageByCohort(ctx context.Context, cohortID string) ([]repository.CoveragePair, error) {
	blocks, _ := r.store.repo.Block.ListByCohort(ctx, cohortID)
	inCohort := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		inCohort[b.BlockID] = true
	}

	seen := map[repository.CoveragePair]bool{}
	var pairs []repository.CoveragePair
	for _, link := range r.store.assessOutcomes.where(nil, nil) {
		a, ok := r.store.assessments.rows[link.AssessmentID]
		if !ok || !inCohort[a.BlockID] {
			continue
		}
		p := repository.CoveragePair{BlockID: a.BlockID, OutcomeID: link.OutcomeID}
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}
	return pairs, nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

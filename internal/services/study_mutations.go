package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/platformbuilds/studygraph/internal/catalog"
	"github.com/platformbuilds/studygraph/internal/ids"
	"github.com/platformbuilds/studygraph/internal/importer"
	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/internal/monitoring"
	"github.com/platformbuilds/studygraph/internal/naming"
	"github.com/platformbuilds/studygraph/internal/quarter"
	"github.com/platformbuilds/studygraph/internal/tracing"
)

const (
	DraftLevelKey = "tactico"
	DraftStatus   = "🟡 En curso"
)

// Saved is a stored study plus advisory warnings that did not block the save.
type Saved struct {
	Study    models.Study `json:"study"`
	Warnings []string     `json:"warnings"`
}

// ImportReport summarises one CSV batch.
type ImportReport struct {
	BatchID    string                `json:"batchId"`
	Rows       int                   `json:"rows"`
	Imported   int                   `json:"imported"`
	Dropped    []importer.DroppedRow `json:"dropped"`
	Collisions []string              `json:"collisions"`
	Studies    []models.Study        `json:"studies"`
}

// NewDraft returns an unsaved study pre-filled for typeCode and verticalCode.
// Empty arguments use the naming defaults.
func (s *StudyService) NewDraft(typeCode, verticalCode string) (models.Study, error) {
	if typeCode == "" {
		typeCode = naming.DefaultTypeCode
	}
	if verticalCode == "" {
		verticalCode = naming.DefaultVertical
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	cat := s.catalog

	it, ok := cat.TypeByCode(typeCode)
	if !ok {
		return models.Study{}, fmt.Errorf("%w: unknown initiative type %s", models.ErrInvalidStudy, typeCode)
	}
	if !cat.HasVertical(verticalCode) {
		return models.Study{}, fmt.Errorf("%w: unknown vertical %s", models.ErrInvalidStudy, verticalCode)
	}
	productID, _ := cat.ProductForVertical(verticalCode)

	draft := models.Study{
		ID:                  ids.NextID(s.studies, it.Code),
		InitiativeTypeCode:  it.Code,
		InitiativeTypeLabel: it.Label,
		Quarter:             quarter.Of(s.now()),
		VerticalCode:        verticalCode,
		ProductID:           productID,
		Status:              DraftStatus,
	}
	if _, ok := cat.Level(DraftLevelKey); ok {
		draft.LevelKey = DraftLevelKey
	}
	draft.EnsureCollections()
	return draft, nil
}

// Create validates study and prepends it to the collection. An empty id, or
// an auto-generated id whose digit no longer matches the type, is allocated
// afresh; an explicit id already in use is rejected.
func (s *StudyService) Create(ctx context.Context, study models.Study) (*Saved, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat := s.catalog

	study = study.Clone()
	if study.Quarter == "" {
		study.Quarter = quarter.Of(s.now())
	}
	if study.ID == "" || (models.ValidStudyID(study.ID) && !ids.HasDigit(study.ID, study.InitiativeTypeCode)) {
		study.ID = ids.NextID(s.studies, study.InitiativeTypeCode)
		for seq := 1; indexOf(s.studies, study.ID) >= 0; seq++ {
			study.ID = ids.Format(ids.Digit(study.InitiativeTypeCode), seq)
		}
	} else if indexOf(s.studies, study.ID) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, study.ID)
	}

	reconcile(cat, &study, nil)
	warnings, err := checkStudy(cat, &study)
	if err != nil {
		return nil, err
	}

	next := make([]models.Study, 0, len(s.studies)+1)
	next = append(next, study)
	next = append(next, s.studies...)
	if err := s.commit(ctx, next, EventCreated, []string{study.ID}); err != nil {
		return nil, err
	}

	s.logger.Info("Study created", "id", study.ID, "product", study.ProductID)
	return &Saved{Study: study.Clone(), Warnings: warnings}, nil
}

// Update replaces the study stored under id with the whole record given.
// Renaming to an id already in use is rejected.
func (s *StudyService) Update(ctx context.Context, id string, study models.Study) (*Saved, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat := s.catalog

	i := indexOf(s.studies, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrStudyNotFound, id)
	}
	study = study.Clone()
	if study.ID == "" {
		study.ID = id
	}
	if study.ID != id && indexOf(s.studies, study.ID) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, study.ID)
	}

	prev := s.studies[i]
	reconcile(cat, &study, &prev)
	warnings, err := checkStudy(cat, &study)
	if err != nil {
		return nil, err
	}

	next := models.CloneStudies(s.studies)
	next[i] = study
	if err := s.commit(ctx, next, EventUpdated, []string{study.ID}); err != nil {
		return nil, err
	}

	s.logger.Info("Study updated", "id", study.ID)
	return &Saved{Study: study.Clone(), Warnings: warnings}, nil
}

// Import parses a CSV batch and appends its studies. Ids are kept as the
// rows define them; clashes are reported, not rejected.
func (s *StudyService) Import(ctx context.Context, r io.Reader) (*ImportReport, error) {
	ctx, span := s.tracer.Start(ctx, "studies.import")
	var err error
	defer func() { tracing.End(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	batchID := uuid.NewString()
	res, err := importer.New(s.catalog, s.maxRows, s.logger).Parse(r)
	if err != nil {
		monitoring.RecordImport("rejected", 0, 0)
		s.logger.Warn("Import rejected", "batch", batchID, "error", err)
		return nil, err
	}

	report := &ImportReport{
		BatchID:    batchID,
		Rows:       res.Rows,
		Imported:   len(res.Studies),
		Dropped:    res.Dropped,
		Collisions: collisions(s.studies, res.Studies),
		Studies:    res.Studies,
	}
	if report.Dropped == nil {
		report.Dropped = []importer.DroppedRow{}
	}
	if report.Studies == nil {
		report.Studies = []models.Study{}
	}

	if len(res.Studies) == 0 {
		monitoring.RecordImport("empty", 0, len(res.Dropped))
		return report, nil
	}

	next := make([]models.Study, 0, len(s.studies)+len(res.Studies))
	next = append(next, s.studies...)
	next = append(next, res.Studies...)
	imported := make([]string, len(res.Studies))
	for i := range res.Studies {
		imported[i] = res.Studies[i].ID
	}
	if err = s.commit(ctx, next, EventImported, imported); err != nil {
		monitoring.RecordImport("failed", 0, 0)
		return nil, err
	}

	monitoring.RecordImport("imported", report.Imported, len(report.Dropped))
	if len(report.Collisions) > 0 {
		s.logger.Warn("Imported ids collide", "batch", batchID, "ids", strings.Join(report.Collisions, ","))
	}
	s.logger.Info("Import completed", "batch", batchID, "rows", report.Rows,
		"imported", report.Imported, "dropped", len(report.Dropped))
	return report, nil
}

// IsValidationError reports whether err came from study validation.
func IsValidationError(err error) bool {
	return errors.Is(err, models.ErrInvalidStudy)
}

// collisions lists, once each in first-seen order, batch ids already present
// in existing or repeated within the batch.
func collisions(existing, batch []models.Study) []string {
	seen := make(map[string]bool, len(existing)+len(batch))
	for _, st := range existing {
		seen[st.ID] = true
	}
	reported := make(map[string]bool)
	out := []string{}
	for _, st := range batch {
		if seen[st.ID] && !reported[st.ID] {
			reported[st.ID] = true
			out = append(out, st.ID)
		}
		seen[st.ID] = true
	}
	return out
}

// reconcile derives the type label and keeps product and vertical
// consistent. When they disagree, whichever side changed since prev wins.
func reconcile(cat *catalog.Catalog, st *models.Study, prev *models.Study) {
	st.EnsureCollections()
	st.TitleShort = strings.TrimSpace(st.TitleShort)
	if label := cat.TypeLabel(st.InitiativeTypeCode); label != "" {
		st.InitiativeTypeLabel = label
	}

	owner, owned := cat.ProductForVertical(st.VerticalCode)
	switch {
	case st.VerticalCode == "" && st.ProductID != "":
		if p, ok := cat.Product(st.ProductID); ok && len(p.Verticals) > 0 {
			st.VerticalCode = p.Verticals[0]
		}
	case !owned:
	case st.ProductID == owner:
	case prev != nil && prev.VerticalCode == st.VerticalCode && prev.ProductID != st.ProductID:
		if p, ok := cat.Product(st.ProductID); ok && len(p.Verticals) > 0 {
			st.VerticalCode = p.Verticals[0]
		} else {
			st.ProductID = owner
		}
	default:
		st.ProductID = owner
	}
}

// checkStudy validates shapes and catalog references. Level/type and id/type
// mismatches are advisory and come back as warnings; an edit keeps its id
// when only the type changes.
func checkStudy(cat *catalog.Catalog, st *models.Study) ([]string, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}

	var problems []string
	_, knownType := cat.TypeByCode(st.InitiativeTypeCode)
	if !knownType {
		problems = append(problems, "unknown initiativeTypeCode "+st.InitiativeTypeCode)
	}
	if !cat.HasVertical(st.VerticalCode) {
		problems = append(problems, "unknown verticalCode "+st.VerticalCode)
	}
	if st.ProductID != "" {
		if _, ok := cat.Product(st.ProductID); !ok {
			problems = append(problems, "unknown productId "+st.ProductID)
		}
	}
	if st.Responsible != "" && !cat.HasResponsible(st.Responsible) {
		problems = append(problems, "unknown responsible "+st.Responsible)
	}
	level, hasLevel := cat.Level(st.LevelKey)
	if st.LevelKey != "" && !hasLevel {
		problems = append(problems, "unknown levelKey "+st.LevelKey)
	}
	if st.ParentID != "" && st.ParentID == st.ID {
		problems = append(problems, "parentId cannot reference the study itself")
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidStudy, strings.Join(problems, ", "))
	}

	warnings := []string{}
	if knownType && !ids.HasDigit(st.ID, st.InitiativeTypeCode) {
		warnings = append(warnings, fmt.Sprintf("id %s does not carry the digit of %s", st.ID, st.InitiativeTypeCode))
	}
	if hasLevel && len(level.AllowedTypes) > 0 && !level.Allows(st.InitiativeTypeLabel) {
		warnings = append(warnings, fmt.Sprintf("level %q is not usually used for %q", level.Label, st.InitiativeTypeLabel))
	}
	return warnings, nil
}

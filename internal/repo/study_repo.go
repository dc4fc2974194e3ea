package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/platformbuilds/studygraph/internal/models"
	"github.com/platformbuilds/studygraph/pkg/logger"
)

// StudyRepo loads and saves the ordered study collection.
type StudyRepo interface {
	Load(ctx context.Context) ([]models.Study, error)
	Save(ctx context.Context, studies []models.Study) error
}

type DefaultStudyRepo struct {
	store  BlobStore
	key    string
	logger logger.Logger
}

func NewDefaultStudyRepo(store BlobStore, key string, logger logger.Logger) *DefaultStudyRepo {
	if key == "" {
		key = DefaultKey
	}
	return &DefaultStudyRepo{store: store, key: key, logger: logger}
}

// Load returns the stored collection. Absent or undecodable content yields
// DefaultStudies; only backend failures are returned as errors.
func (r *DefaultStudyRepo) Load(ctx context.Context) ([]models.Study, error) {
	raw, err := r.store.Get(ctx, r.key)
	if errors.Is(err, ErrNotFound) {
		r.logger.Info("no stored studies, using defaults", "key", r.key)
		return DefaultStudies(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load studies: %w", err)
	}

	studies, ok := DecodeCollection(raw)
	if !ok {
		r.logger.Warn("stored studies are malformed, using defaults", "key", r.key, "bytes", len(raw))
		return DefaultStudies(), nil
	}
	return studies, nil
}

func (r *DefaultStudyRepo) Save(ctx context.Context, studies []models.Study) error {
	if studies == nil {
		studies = []models.Study{}
	}
	raw, err := json.Marshal(studies)
	if err != nil {
		return fmt.Errorf("encode studies: %w", err)
	}
	if err := r.store.Put(ctx, r.key, raw); err != nil {
		return fmt.Errorf("save studies: %w", err)
	}
	return nil
}

// DecodeCollection parses a JSON list of studies. ok is false when raw is
// not a JSON array of objects. Records without an id are skipped.
func DecodeCollection(raw []byte) ([]models.Study, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var decoded []models.Study
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, false
	}
	out := make([]models.Study, 0, len(decoded))
	for _, s := range decoded {
		if s.ID == "" {
			continue
		}
		s.EnsureCollections()
		out = append(out, s)
	}
	return out, true
}

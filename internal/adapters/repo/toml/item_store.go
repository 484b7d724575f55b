package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/review-queue/internal/domain"
	"github.com/bnema/review-queue/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	itemsPathKey    = "items.path"
	itemsConfigDir  = ".rq"
	itemsConfigFile = "items.toml"
)

// ItemStore keeps items and their evaluations in a single TOML file.
type ItemStore struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.ItemStore = (*ItemStore)(nil)

func NewItemStore(cfg *viper.Viper) (*ItemStore, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(itemsPathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, itemsConfigDir, itemsConfigFile)
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &ItemStore{path: path, mu: lockForPath(path)}, nil
}

func (s *ItemStore) Path() string {
	return s.path
}

func (s *ItemStore) FetchCandidatePool(ctx context.Context, excluding domain.UserID) ([]domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(file.Items))
	for _, entry := range file.Items {
		if entry.OwnerID == string(excluding) {
			continue
		}
		if strings.TrimSpace(entry.PayloadRef) == "" {
			continue
		}
		if evaluatedBy(entry, excluding) {
			continue
		}
		items = append(items, fromItemSchema(entry))
	}

	return items, nil
}

func (s *ItemStore) RecordEvaluation(ctx context.Context, evaluation domain.Evaluation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := evaluation.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	idx := indexOfItem(file, evaluation.ItemID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, evaluation.ItemID)
	}

	entry := &file.Items[idx]
	if entry.OwnerID == string(evaluation.EvaluatorID) {
		return domain.ErrSelfEvaluation
	}
	if entry.OwnerID != string(evaluation.OwnerID) {
		return fmt.Errorf("%w: item %s is not owned by %s", domain.ErrInvalidEvaluation, evaluation.ItemID, evaluation.OwnerID)
	}

	encoded := toEvaluationSchema(evaluation)
	updated := false
	for i := range entry.Evaluations {
		if entry.Evaluations[i].EvaluatorID == encoded.EvaluatorID {
			entry.Evaluations[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		entry.Evaluations = append(entry.Evaluations, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return writeTOMLFile(s.path, file)
}

func (s *ItemStore) SaveItem(ctx context.Context, item domain.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.readSchema()
	if err != nil {
		return err
	}

	encoded := toItemSchema(item)
	if idx := indexOfItem(file, item.ID); idx >= 0 {
		encoded.Evaluations = file.Items[idx].Evaluations
		file.Items[idx] = encoded
	} else {
		file.Items = append(file.Items, encoded)
	}

	return writeTOMLFile(s.path, file)
}

func (s *ItemStore) ItemStats(ctx context.Context, owner domain.UserID) ([]domain.ItemStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.readSchema()
	if err != nil {
		return nil, err
	}

	stats := make([]domain.ItemStats, 0)
	for _, entry := range file.Items {
		if entry.OwnerID != string(owner) {
			continue
		}

		evaluations := make([]domain.Evaluation, 0, len(entry.Evaluations))
		for _, evaluation := range entry.Evaluations {
			evaluations = append(evaluations, fromEvaluationSchema(entry, evaluation))
		}
		stats = append(stats, domain.NewItemStats(fromItemSchema(entry), evaluations))
	}

	return stats, nil
}

func (s *ItemStore) readSchema() (itemsFileSchema, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := itemsFileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return itemsFileSchema{}, fmt.Errorf("read items file: %w", err)
	}

	var file itemsFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return itemsFileSchema{}, fmt.Errorf("decode items file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return itemsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func indexOfItem(file itemsFileSchema, id domain.ItemID) int {
	for i := range file.Items {
		if file.Items[i].ID == string(id) {
			return i
		}
	}
	return -1
}

func evaluatedBy(entry itemSchema, user domain.UserID) bool {
	for _, evaluation := range entry.Evaluations {
		if evaluation.EvaluatorID == string(user) {
			return true
		}
	}
	return false
}

func toItemSchema(item domain.Item) itemSchema {
	return itemSchema{
		ID:         string(item.ID),
		OwnerID:    string(item.OwnerID),
		PayloadRef: item.PayloadRef,
		CreatedAt:  formatTime(item.CreatedAt),
	}
}

func fromItemSchema(schema itemSchema) domain.Item {
	return domain.Item{
		OwnerID:         domain.UserID(schema.OwnerID),
		ID:              domain.ItemID(schema.ID),
		PayloadRef:      schema.PayloadRef,
		EvaluationCount: len(schema.Evaluations),
		CreatedAt:       parseTime(schema.CreatedAt),
	}
}

func toEvaluationSchema(evaluation domain.Evaluation) evaluationSchema {
	return evaluationSchema{
		EvaluatorID: string(evaluation.EvaluatorID),
		Kind:        string(evaluation.Kind),
		Rating:      evaluation.Rating,
		Text:        evaluation.Text,
		Reaction:    string(evaluation.Reaction),
		RecordedAt:  formatTime(evaluation.RecordedAt),
	}
}

func fromEvaluationSchema(item itemSchema, schema evaluationSchema) domain.Evaluation {
	return domain.Evaluation{
		OwnerID:     domain.UserID(item.OwnerID),
		ItemID:      domain.ItemID(item.ID),
		EvaluatorID: domain.UserID(schema.EvaluatorID),
		Kind:        domain.EvaluationKind(schema.Kind),
		Rating:      schema.Rating,
		Text:        schema.Text,
		Reaction:    domain.Reaction(schema.Reaction),
		RecordedAt:  parseTime(schema.RecordedAt),
	}
}

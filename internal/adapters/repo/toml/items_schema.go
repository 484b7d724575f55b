package toml

import "fmt"

const currentItemsSchemaVersion = 1

type itemsFileSchema struct {
	Version int          `toml:"version"`
	Items   []itemSchema `toml:"items"`
}

func (s *itemsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentItemsSchemaVersion
	}
}

func (s itemsFileSchema) validateVersion() error {
	if s.Version > currentItemsSchemaVersion {
		return fmt.Errorf("unsupported items schema version %d (current %d)", s.Version, currentItemsSchemaVersion)
	}

	return nil
}

type itemSchema struct {
	ID          string             `toml:"id"`
	OwnerID     string             `toml:"owner_id"`
	PayloadRef  string             `toml:"payload_ref"`
	CreatedAt   string             `toml:"created_at,omitempty"`
	Evaluations []evaluationSchema `toml:"evaluations,omitempty"`
}

type evaluationSchema struct {
	EvaluatorID string `toml:"evaluator_id"`
	Kind        string `toml:"kind"`
	Rating      int    `toml:"rating,omitempty"`
	Text        string `toml:"text,omitempty"`
	Reaction    string `toml:"reaction,omitempty"`
	RecordedAt  string `toml:"recorded_at,omitempty"`
}

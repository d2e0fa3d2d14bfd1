// Package store keeps rendered LilyPond documents so they can be fetched
// again by id.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/lilyscore/constants"
	"github.com/jsphweid/lilyscore/model"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("document not found")

type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Composer  string    `json:"composer,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDocument wraps rendered source with a fresh id and the score's title
// and composer.
func NewDocument(s model.Score, source string) Document {
	return Document{
		ID:        uuid.New().String(),
		Title:     s.Header[model.HeaderTitle],
		Composer:  s.Header[model.HeaderComposer],
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
}

type Store interface {
	Put(ctx context.Context, d Document) error
	// Get returns ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (Document, error)
	// GetMany skips unknown ids. At most constants.MaxBatchGet ids.
	GetMany(ctx context.Context, ids []string) (map[string]Document, error)
}

// FromEnv returns a DynamoDB store when DYNAMODB_ENDPOINT is set and an
// in-memory one otherwise.
func FromEnv() (Store, error) {
	endpoint := constants.GetDynamoEndpoint()
	if endpoint == "" {
		return NewMemory(), nil
	}
	return NewDynamo(endpoint, constants.GetDynamoRegion(), constants.GetDynamoTable())
}

func checkBatch(ids []string) error {
	if len(ids) > constants.MaxBatchGet {
		return errors.Errorf("cannot get more than %d documents at once, got %d", constants.MaxBatchGet, len(ids))
	}
	return nil
}

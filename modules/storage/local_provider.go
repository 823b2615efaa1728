package storage

import (
	"context"
	"errors"
	"fmt"

	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"
	"github.com/preppal-io/prep-pal/domain/stock"
)

// LocalProvider stores records as JSON blobs in a kv-jetstream bucket, one
// key per record.
type LocalProvider struct {
	bucket kvjetstream.KVStoragePort
}

var _ Provider = (*LocalProvider)(nil)

// NewLocalProvider creates a provider over bucket.
func NewLocalProvider(bucket kvjetstream.KVStoragePort) *LocalProvider {
	return &LocalProvider{bucket: bucket}
}

// Name returns the backend name.
func (p *LocalProvider) Name() string {
	return BackendLocal
}

// Lookup reads the record key.
func (p *LocalProvider) Lookup(_ context.Context, record stock.Record) (Payload, error) {
	data, err := p.bucket.Get(record.LocalKey())
	if err != nil {
		if errors.Is(err, kvjetstream.ErrKeyNotFound) {
			return Payload{State: Absent}, nil
		}
		return Payload{}, fmt.Errorf("failed to get %s: %w", record.LocalKey(), err)
	}
	return Classify(data), nil
}

// Store replaces the record key. Values never expire.
func (p *LocalProvider) Store(_ context.Context, record stock.Record, data []byte) error {
	if err := p.bucket.Set(record.LocalKey(), data, 0); err != nil {
		return fmt.Errorf("failed to set %s: %w", record.LocalKey(), err)
	}
	return nil
}

// Remove deletes the record key. A missing key is not an error.
func (p *LocalProvider) Remove(_ context.Context, record stock.Record) error {
	if _, err := p.bucket.Get(record.LocalKey()); err != nil {
		if errors.Is(err, kvjetstream.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get %s: %w", record.LocalKey(), err)
	}
	if err := p.bucket.Delete(record.LocalKey()); err != nil {
		if errors.Is(err, kvjetstream.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete %s: %w", record.LocalKey(), err)
	}
	return nil
}

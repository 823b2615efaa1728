package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/preppal-io/prep-pal/domain/stock"
	"golang.org/x/sync/singleflight"
)

// HostPort is the privileged host process as seen by this package.
// Read reports found=false when the host holds nothing for the record.
type HostPort interface {
	Read(ctx context.Context, record stock.Record) (data []byte, found bool, err error)
	Write(ctx context.Context, record stock.Record, data []byte) error
	Delete(ctx context.Context, record stock.Record) error
}

// HostProvider stores records through the privileged host process.
type HostProvider struct {
	host    HostPort
	timeout time.Duration
	reads   singleflight.Group // concurrent reads of one record share a round trip
}

type hostRead struct {
	data  []byte
	found bool
}

var _ Provider = (*HostProvider)(nil)

// NewHostProvider creates a provider over host. A positive timeout bounds
// every call.
func NewHostProvider(host HostPort, timeout time.Duration) *HostProvider {
	return &HostProvider{host: host, timeout: timeout}
}

// Name returns the backend name.
func (p *HostProvider) Name() string {
	return BackendHost
}

// Lookup reads the record from the host. Concurrent lookups of one record
// share a single host read. The shared read is detached from the callers'
// cancellation and bounded by the provider timeout only; each caller still
// stops waiting when its own context ends.
func (p *HostProvider) Lookup(ctx context.Context, record stock.Record) (Payload, error) {
	op := record.Operation(stock.VerbRead)

	results := p.reads.DoChan(string(record), func() (any, error) {
		readCtx, cancel := p.withTimeout(context.WithoutCancel(ctx))
		defer cancel()

		data, found, err := p.host.Read(readCtx, record)
		return hostRead{data: data, found: found}, err
	})

	select {
	case <-ctx.Done():
		return Payload{}, fmt.Errorf("host %s: %w", op, ctx.Err())
	case res := <-results:
		if res.Err != nil {
			return Payload{}, fmt.Errorf("host %s: %w", op, res.Err)
		}
		read := res.Val.(hostRead)
		if !read.found {
			return Payload{State: Absent}, nil
		}
		return Classify(read.data), nil
	}
}

// Store writes the record through the host.
func (p *HostProvider) Store(ctx context.Context, record stock.Record, data []byte) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	if err := p.host.Write(ctx, record, data); err != nil {
		return fmt.Errorf("host %s: %w", record.Operation(stock.VerbWrite), err)
	}
	return nil
}

// Remove deletes the record through the host.
func (p *HostProvider) Remove(ctx context.Context, record stock.Record) error {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	if err := p.host.Delete(ctx, record); err != nil {
		return fmt.Errorf("host %s: %w", record.Operation(stock.VerbDelete), err)
	}
	return nil
}

func (p *HostProvider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.timeout)
}

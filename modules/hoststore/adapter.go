package hoststore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/preppal-io/prep-pal/domain/stock"
	"github.com/preppal-io/prep-pal/modules/storage"
)

// Adapter wraps the host store ServiceContainer for type-safe calls from
// other modules.
type Adapter struct {
	container mono.ServiceContainer
}

var _ storage.HostPort = (*Adapter)(nil)

// NewAdapter creates a new adapter for host store services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	if container == nil {
		panic("hoststore adapter requires non-nil ServiceContainer")
	}
	return &Adapter{container: container}
}

// Read fetches the record document.
func (a *Adapter) Read(ctx context.Context, record stock.Record) ([]byte, bool, error) {
	op := record.Operation(stock.VerbRead)
	var resp ReadResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		op,
		json.Marshal,
		json.Unmarshal,
		&ReadRequest{},
		&resp,
	); err != nil {
		return nil, false, fmt.Errorf("%s service call failed: %w", op, err)
	}
	if resp.Error != "" {
		return nil, false, fmt.Errorf("%s: %s", op, resp.Error)
	}
	return resp.Data, resp.Found, nil
}

// Write replaces the record document.
func (a *Adapter) Write(ctx context.Context, record stock.Record, data []byte) error {
	op := record.Operation(stock.VerbWrite)
	var resp WriteResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		op,
		json.Marshal,
		json.Unmarshal,
		&WriteRequest{Data: data},
		&resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", op, err)
	}
	if resp.Error != "" {
		return fmt.Errorf("%s: %s", op, resp.Error)
	}
	if !resp.Success {
		return fmt.Errorf("%s: host reported failure", op)
	}
	return nil
}

// Delete removes the record document.
func (a *Adapter) Delete(ctx context.Context, record stock.Record) error {
	op := record.Operation(stock.VerbDelete)
	var resp DeleteResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		op,
		json.Marshal,
		json.Unmarshal,
		&DeleteRequest{},
		&resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", op, err)
	}
	if resp.Error != "" {
		return fmt.Errorf("%s: %s", op, resp.Error)
	}
	if !resp.Success {
		return fmt.Errorf("%s: host reported failure", op)
	}
	return nil
}

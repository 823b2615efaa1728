package hoststore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/preppal-io/prep-pal/domain/stock"
)

var emptyObject = json.RawMessage("{}")

func (m *Module) readHandler(record stock.Record) func(context.Context, ReadRequest, *mono.Msg) (ReadResponse, error) {
	return func(ctx context.Context, _ ReadRequest, _ *mono.Msg) (ReadResponse, error) {
		return m.read(record), nil
	}
}

func (m *Module) writeHandler(record stock.Record) func(context.Context, WriteRequest, *mono.Msg) (WriteResponse, error) {
	return func(ctx context.Context, req WriteRequest, _ *mono.Msg) (WriteResponse, error) {
		return m.write(ctx, record, req), nil
	}
}

func (m *Module) deleteHandler(record stock.Record) func(context.Context, DeleteRequest, *mono.Msg) (DeleteResponse, error) {
	return func(ctx context.Context, _ DeleteRequest, _ *mono.Msg) (DeleteResponse, error) {
		return m.delete(record), nil
	}
}

// read returns the record document, or an empty object when absent.
func (m *Module) read(record stock.Record) ReadResponse {
	name := record.FileName()

	found, err := m.exists(name)
	if err != nil {
		m.logger.Error("Failed to look up record", "file", name, "error", err)
		return ReadResponse{Data: emptyObject, Error: fmt.Sprintf("failed to look up %s: %v", name, err)}
	}
	if !found {
		return ReadResponse{Data: emptyObject}
	}

	data, err := m.bucket.Get(name)
	if err != nil {
		m.logger.Error("Failed to read record", "file", name, "error", err)
		return ReadResponse{Data: emptyObject, Error: fmt.Sprintf("failed to read %s: %v", name, err)}
	}
	if !json.Valid(data) {
		return ReadResponse{Data: emptyObject, Found: true, Error: fmt.Sprintf("%s is not valid JSON", name)}
	}
	return ReadResponse{Data: data, Found: true}
}

// write replaces the record document.
func (m *Module) write(ctx context.Context, record stock.Record, req WriteRequest) WriteResponse {
	name := record.FileName()

	if len(req.Data) == 0 {
		return WriteResponse{Error: "data is required"}
	}
	if !json.Valid(req.Data) {
		return WriteResponse{Error: "data must be valid JSON"}
	}

	writeID := uuid.New().String()
	objInfo, err := m.bucket.Put(ctx, name, req.Data,
		fsjetstream.WithDescription(fmt.Sprintf("Record: %s", record)),
		fsjetstream.WithHeaders(map[string]string{
			"Content-Type": "application/json",
			"Record":       string(record),
			"Write-ID":     writeID,
			"Written-At":   time.Now().Format(time.RFC3339),
		}),
	)
	if err != nil {
		m.logger.Error("Failed to write record", "file", name, "error", err)
		return WriteResponse{Error: fmt.Sprintf("failed to write %s: %v", name, err)}
	}

	m.logger.Debug("Record written", "file", name, "write_id", writeID, "size", objInfo.Size)
	return WriteResponse{
		Success: true,
		WriteID: writeID,
		Size:    int64(objInfo.Size),
		Digest:  objInfo.Digest,
	}
}

// delete removes the record document. Deleting an absent record succeeds.
func (m *Module) delete(record stock.Record) DeleteResponse {
	name := record.FileName()

	found, err := m.exists(name)
	if err != nil {
		m.logger.Error("Failed to look up record", "file", name, "error", err)
		return DeleteResponse{Error: fmt.Sprintf("failed to look up %s: %v", name, err)}
	}
	if !found {
		return DeleteResponse{Success: true}
	}

	if err := m.bucket.Delete(name); err != nil {
		m.logger.Error("Failed to delete record", "file", name, "error", err)
		return DeleteResponse{Error: fmt.Sprintf("failed to delete %s: %v", name, err)}
	}

	m.logger.Debug("Record deleted", "file", name)
	return DeleteResponse{Success: true}
}

// exists reports whether an object named name is stored.
func (m *Module) exists(name string) (bool, error) {
	objects, err := m.list(name)
	if err != nil {
		return false, err
	}
	for _, obj := range objects {
		if obj.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// listRecords returns the names of the record files currently stored.
func (m *Module) listRecords() ([]string, error) {
	var names []string
	for _, record := range stock.Records() {
		found, err := m.exists(record.FileName())
		if err != nil {
			return nil, err
		}
		if found {
			names = append(names, record.FileName())
		}
	}
	return names, nil
}

func (m *Module) list(prefix string) ([]fsjetstream.ObjectInfo, error) {
	objects, err := m.bucket.List(fsjetstream.WithPrefix(prefix))
	if err != nil {
		// An empty bucket reports no objects as an error.
		if errors.Is(err, jetstream.ErrNoObjectsFound) || strings.Contains(err.Error(), "no objects found") {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}
	return objects, nil
}

package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/preppal-io/prep-pal/domain/stock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)         {}
func (m *mockLogger) Info(msg string, args ...any)          {}
func (m *mockLogger) Warn(msg string, args ...any)          {}
func (m *mockLogger) Error(msg string, args ...any)         {}
func (m *mockLogger) With(args ...any) types.Logger         { return m }
func (m *mockLogger) WithError(err error) types.Logger      { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

// fakeProvider is an in-memory Provider with per-record failure injection.
type fakeProvider struct {
	data      map[stock.Record][]byte
	lookupErr map[stock.Record]error
	storeErr  map[stock.Record]error
	removeErr map[stock.Record]error
	removed   []stock.Record
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		data:      make(map[stock.Record][]byte),
		lookupErr: make(map[stock.Record]error),
		storeErr:  make(map[stock.Record]error),
		removeErr: make(map[stock.Record]error),
	}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Lookup(_ context.Context, record stock.Record) (Payload, error) {
	if err := f.lookupErr[record]; err != nil {
		return Payload{}, err
	}
	data, ok := f.data[record]
	if !ok {
		return Payload{State: Absent}, nil
	}
	return Classify(data), nil
}

func (f *fakeProvider) Store(_ context.Context, record stock.Record, data []byte) error {
	if err := f.storeErr[record]; err != nil {
		return err
	}
	f.data[record] = append([]byte(nil), data...)
	return nil
}

func (f *fakeProvider) Remove(_ context.Context, record stock.Record) error {
	f.removed = append(f.removed, record)
	if err := f.removeErr[record]; err != nil {
		return err
	}
	delete(f.data, record)
	return nil
}

func newTestGateway() (*Gateway, *fakeProvider) {
	p := newFakeProvider()
	return NewGateway(p, &mockLogger{}), p
}

func sampleCategories() stock.CategoriesRecord {
	unit := "kg"
	return stock.CategoriesRecord{
		BaseCategories: []stock.Category{
			{
				ID:                     1,
				OnlineShopLink:         []string{"https://shop.example/rice"},
				UsualExpiryCheckDays:   365,
				QuantityOverride:       "",
				RecommendedQtyDayAdult: 0.1,
				ProductType:            "Rice",
				Description:            "Long grain rice",
				DefaultUnit:            &unit,
				Quantity:               3,
			},
			{ID: 2, OnlineShopLink: []string{}, ProductType: "Radio", Quantity: 1},
		},
		LastUpdate: "2026-10-16T08:00:00.000Z",
	}
}

func TestGateway_RoundTrip(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGateway()

	cats := sampleCategories()
	require.NoError(t, g.WriteCategories(ctx, cats))
	gotCats, err := g.ReadCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, cats, gotCats)

	s := stock.Stock{Products: []stock.StockItem{{
		TypeID: 1, Description: "Basmati", Quantity: 2,
		AddedDate: "2026-10-16", CheckedDate: "2026-10-16", NextCheck: "2027-10-16",
	}}}
	require.NoError(t, g.WriteStock(ctx, s))
	gotStock, err := g.ReadStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, gotStock)

	profile := stock.UserProfile{"name": "Household", "people": float64(3)}
	require.NoError(t, g.WriteProfile(ctx, profile))
	gotProfile, err := g.ReadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile, gotProfile)
}

func TestGateway_Exists(t *testing.T) {
	ctx := context.Background()

	t.Run("false before write and true after", func(t *testing.T) {
		g, _ := newTestGateway()
		for _, r := range stock.Records() {
			assert.False(t, g.Exists(ctx, r), string(r))
		}

		require.NoError(t, g.WriteStock(ctx, stock.DefaultStock()))
		assert.True(t, g.Exists(ctx, stock.RecordStock))
		assert.False(t, g.Exists(ctx, stock.RecordCategories))
	})

	t.Run("empty values do not exist", func(t *testing.T) {
		g, p := newTestGateway()
		p.data[stock.RecordCategories] = []byte("{}")
		p.data[stock.RecordStock] = []byte("")
		p.data[stock.RecordProfile] = []byte("null")

		for _, r := range stock.Records() {
			assert.False(t, g.Exists(ctx, r), string(r))
		}
	})

	t.Run("lookup error degrades to false", func(t *testing.T) {
		g, p := newTestGateway()
		p.data[stock.RecordStock] = []byte(`{"products":[]}`)
		p.lookupErr[stock.RecordStock] = errors.New("disk unavailable")

		assert.False(t, g.Exists(ctx, stock.RecordStock))
	})
}

func TestGateway_ReadErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		setup   func(p *fakeProvider)
		wantErr error
	}{
		{
			name:    "absent",
			setup:   func(p *fakeProvider) {},
			wantErr: stock.ErrNotFound,
		},
		{
			name:    "empty object",
			setup:   func(p *fakeProvider) { p.data[stock.RecordCategories] = []byte("{}") },
			wantErr: stock.ErrNotFound,
		},
		{
			name:    "backend failure",
			setup:   func(p *fakeProvider) { p.lookupErr[stock.RecordCategories] = errors.New("boom") },
			wantErr: stock.ErrBackend,
		},
		{
			name:    "undecodable",
			setup:   func(p *fakeProvider) { p.data[stock.RecordCategories] = []byte("{not json") },
			wantErr: stock.ErrBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, p := newTestGateway()
			tt.setup(p)

			_, err := g.ReadCategories(ctx)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGateway_WriteFailure(t *testing.T) {
	ctx := context.Background()
	g, p := newTestGateway()
	p.storeErr[stock.RecordStock] = errors.New("quota exceeded")

	err := g.WriteStock(ctx, stock.DefaultStock())
	assert.ErrorIs(t, err, stock.ErrBackend)
	assert.False(t, g.Exists(ctx, stock.RecordStock))
}

func TestGateway_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	g, _ := newTestGateway()

	require.NoError(t, g.WriteProfile(ctx, stock.UserProfile{"v": "first"}))
	require.NoError(t, g.WriteProfile(ctx, stock.UserProfile{"v": "second"}))

	got, err := g.ReadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", got["v"])
}

func TestGateway_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("idempotent", func(t *testing.T) {
		g, _ := newTestGateway()
		require.NoError(t, g.Delete(ctx, stock.RecordProfile))

		require.NoError(t, g.WriteProfile(ctx, stock.UserProfile{"a": "b"}))
		require.NoError(t, g.Delete(ctx, stock.RecordProfile))
		require.NoError(t, g.Delete(ctx, stock.RecordProfile))
		assert.False(t, g.Exists(ctx, stock.RecordProfile))
	})

	t.Run("unknown record", func(t *testing.T) {
		g, _ := newTestGateway()
		err := g.Delete(ctx, stock.Record("orders"))
		assert.ErrorIs(t, err, stock.ErrUnknownRecord)
	})

	t.Run("backend failure", func(t *testing.T) {
		g, p := newTestGateway()
		p.removeErr[stock.RecordStock] = errors.New("locked")
		assert.ErrorIs(t, g.Delete(ctx, stock.RecordStock), stock.ErrBackend)
	})
}

func TestGateway_DeleteAll(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes categories then stock", func(t *testing.T) {
		g, p := newTestGateway()
		require.NoError(t, g.WriteCategories(ctx, sampleCategories()))
		require.NoError(t, g.WriteStock(ctx, stock.DefaultStock()))
		require.NoError(t, g.WriteProfile(ctx, stock.UserProfile{"keep": true}))

		require.NoError(t, g.DeleteAll(ctx))
		assert.Equal(t, []stock.Record{stock.RecordCategories, stock.RecordStock}, p.removed)
		assert.False(t, g.Exists(ctx, stock.RecordCategories))
		assert.False(t, g.Exists(ctx, stock.RecordStock))
		assert.True(t, g.Exists(ctx, stock.RecordProfile))
	})

	t.Run("stops after categories failure", func(t *testing.T) {
		g, p := newTestGateway()
		require.NoError(t, g.WriteStock(ctx, stock.DefaultStock()))
		p.removeErr[stock.RecordCategories] = errors.New("locked")

		err := g.DeleteAll(ctx)
		assert.ErrorIs(t, err, stock.ErrBackend)
		assert.Equal(t, []stock.Record{stock.RecordCategories}, p.removed)
		assert.True(t, g.Exists(ctx, stock.RecordStock))
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		state State
	}{
		{"blank", "", Empty},
		{"whitespace", "  \n", Empty},
		{"null", "null", Empty},
		{"empty object", "{}", Empty},
		{"object with keys", `{"products":[]}`, Present},
		{"invalid json", "{oops", Present},
		{"array", "[]", Present},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.state, Classify([]byte(tt.data)).State)
		})
	}
}

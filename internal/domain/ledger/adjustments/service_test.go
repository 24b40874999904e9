package adjustments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "oilbook/internal/core/context"
	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/oiltype"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	rows []Adjustment
}

func (f *fakeRepo) Create(ctx context.Context, a *Adjustment) error {
	f.rows = append(f.rows, *a)
	return nil
}

func (f *fakeRepo) ListRecent(ctx context.Context, officeID id.ID, limit int) ([]Adjustment, error) {
	var out []Adjustment
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if f.rows[i].OfficeID == officeID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

func TestCreate_AppendsWithAuthor(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopTxManager{})
	office := id.New()

	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{Email: "admin@station.test"})

	err := svc.Create(ctx, &Adjustment{
		OfficeID: office,
		Date:     time.Date(2024, 3, 10, 13, 45, 0, 0, time.UTC),
		OilType:  oiltype.Diesel,
		Liters:   types.NewLitersFromFloat64(-100),
		Reason:   "calibration loss",
	})
	require.NoError(t, err)
	require.Len(t, repo.rows, 1)

	got := repo.rows[0]
	assert.Equal(t, "admin@station.test", got.CreatedBy)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got.Date, "date is truncated to the day")
}

func TestCreate_Rejections(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopTxManager{})
	office := id.New()
	d := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		adj  Adjustment
	}{
		{"zero liters", Adjustment{OfficeID: office, Date: d, OilType: oiltype.Diesel, Reason: "x"}},
		{"missing reason", Adjustment{OfficeID: office, Date: d, OilType: oiltype.Diesel, Liters: 1000}},
		{"bad oil type", Adjustment{OfficeID: office, Date: d, OilType: "LPG", Liters: 1000, Reason: "x"}},
		{"missing office", Adjustment{Date: d, OilType: oiltype.Diesel, Liters: 1000, Reason: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := tt.adj
			assert.Error(t, svc.Create(context.Background(), &adj))
		})
	}
}

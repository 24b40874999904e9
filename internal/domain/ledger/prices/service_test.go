package prices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oilbook/internal/core/id"
	"oilbook/internal/core/types"
	"oilbook/internal/domain/oiltype"
)

type nopTxManager struct{}

func (nopTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	rows []Row
}

func (f *fakeRepo) DeleteDay(ctx context.Context, officeID id.ID, date time.Time) error {
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.OfficeID != officeID || !r.Date.Equal(date) {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeRepo) CreateBatch(ctx context.Context, rows []Row) error {
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeRepo) GetDay(ctx context.Context, officeID id.ID, date time.Time) ([]Row, error) {
	var out []Row
	for _, r := range f.rows {
		if r.OfficeID == officeID && r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListRecent(ctx context.Context, officeID id.ID, days int) ([]Row, error) {
	return f.rows, nil
}

func TestUpsertDay_ReplacesByNaturalKey(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopTxManager{})
	office := id.New()
	d := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.UpsertDay(context.Background(), office, d, []Row{
		{OilType: oiltype.Diesel, SellPrice: types.MustMoney("29.94")},
		{OilType: oiltype.Gasohol95, SellPrice: types.MustMoney("30.00")},
	})
	require.NoError(t, err)

	_, err = svc.UpsertDay(context.Background(), office, d, []Row{
		{OilType: oiltype.Diesel, SellPrice: types.MustMoney("30.44")},
	})
	require.NoError(t, err)

	got, err := svc.GetDay(context.Background(), office, d)
	require.NoError(t, err)
	require.Len(t, got, 1, "second post for the day replaces the board")
	assert.True(t, got[0].SellPrice.Equal(types.MustMoney("30.44")))
}

func TestUpsertDay_RejectsDuplicateOilType(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopTxManager{})

	_, err := svc.UpsertDay(context.Background(), id.New(), time.Now(), []Row{
		{OilType: oiltype.Diesel, SellPrice: types.MustMoney("29.94")},
		{OilType: oiltype.Diesel, SellPrice: types.MustMoney("30.00")},
	})
	assert.Error(t, err)
}

package dips

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
	rows []Record
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

func (f *fakeRepo) CreateBatch(ctx context.Context, rows []Record) error {
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeRepo) GetDay(ctx context.Context, officeID id.ID, date time.Time) ([]Record, error) {
	var out []Record
	for _, r := range f.rows {
		if r.OfficeID == officeID && r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) LatestPerTank(ctx context.Context, officeID id.ID, before time.Time) (map[int]Record, error) {
	out := map[int]Record{}
	for _, r := range f.rows {
		if r.OfficeID != officeID || !r.Date.Before(before) {
			continue
		}
		if prev, ok := out[r.TankNumber]; !ok || r.Date.After(prev.Date) {
			out[r.TankNumber] = r
		}
	}
	return out, nil
}

func (f *fakeRepo) ListRecent(ctx context.Context, officeID id.ID, limit int) ([]Record, error) {
	return f.rows, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSaveDay_Overwrites(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopTxManager{})
	office := id.New()
	d := day(2024, 3, 10)

	_, err := svc.SaveDay(context.Background(), office, d, []Record{
		{TankNumber: 1, OilType: oiltype.Diesel, Volume: types.NewLitersFromFloat64(5000)},
		{TankNumber: 9, OilType: oiltype.GasoholE20, Volume: types.NewLitersFromFloat64(3000)},
	})
	require.NoError(t, err)

	saved, err := svc.SaveDay(context.Background(), office, d, []Record{
		{TankNumber: 1, OilType: oiltype.Diesel, Volume: types.NewLitersFromFloat64(4800)},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	got, err := svc.GetDay(context.Background(), office, d)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, types.NewLitersFromFloat64(4800), got[0].Volume)
}

func TestSaveDay_DropsEmptyRows(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopTxManager{})
	dip := 120.5

	saved, err := svc.SaveDay(context.Background(), id.New(), day(2024, 3, 10), []Record{
		{TankNumber: 1, OilType: oiltype.Diesel},
		{TankNumber: 2, OilType: oiltype.Diesel, DipLevel: &dip},
	})
	require.NoError(t, err)
	assert.Len(t, saved, 1, "zero volume without dip level means untouched tank")
}

func TestDayDefaults_CarriesPriorVolume(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopTxManager{})
	office := id.New()

	_, err := svc.SaveDay(context.Background(), office, day(2024, 3, 9), []Record{
		{TankNumber: 1, OilType: oiltype.Diesel, Volume: types.NewLitersFromFloat64(5000)},
	})
	require.NoError(t, err)

	defaults, fromSaved, err := svc.DayDefaults(context.Background(), office, day(2024, 3, 10))
	require.NoError(t, err)
	assert.False(t, fromSaved)
	require.Len(t, defaults, 1)
	assert.Equal(t, types.NewLitersFromFloat64(5000), defaults[0].Volume)

	saved, err := svc.GetDay(context.Background(), office, day(2024, 3, 10))
	require.NoError(t, err)
	assert.Empty(t, saved, "defaults are never persisted")
}

package meters

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
	rows []Reading

	deleteCalls int
	insertCalls int
}

func (f *fakeRepo) DeleteDay(ctx context.Context, officeID id.ID, date time.Time) error {
	f.deleteCalls++
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.OfficeID != officeID || !r.Date.Equal(date) {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeRepo) CreateBatch(ctx context.Context, rows []Reading) error {
	f.insertCalls++
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeRepo) GetDay(ctx context.Context, officeID id.ID, date time.Time) ([]Reading, error) {
	var out []Reading
	for _, r := range f.rows {
		if r.OfficeID == officeID && r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) LatestPerTank(ctx context.Context, officeID id.ID, before time.Time) (map[int]Reading, error) {
	out := map[int]Reading{}
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

func (f *fakeRepo) ListRecent(ctx context.Context, officeID id.ID, limit int) ([]Reading, error) {
	return f.rows, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSaveDay_OverwritesAtomically(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopTxManager{})
	office := id.New()
	d := day(2024, 3, 10)

	_, err := svc.SaveDay(context.Background(), office, d, []Reading{
		{TankNumber: 1, OilType: oiltype.Diesel, StartMeter: types.NewLitersFromFloat64(100), EndMeter: types.NewLitersFromFloat64(150)},
	})
	require.NoError(t, err)

	saved, err := svc.SaveDay(context.Background(), office, d, []Reading{
		{TankNumber: 1, OilType: oiltype.Diesel, StartMeter: types.NewLitersFromFloat64(100), EndMeter: types.NewLitersFromFloat64(180)},
		{TankNumber: 9, OilType: oiltype.GasoholE20, StartMeter: types.NewLitersFromFloat64(50), EndMeter: types.NewLitersFromFloat64(90)},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)

	got, err := svc.GetDay(context.Background(), office, d)
	require.NoError(t, err)
	assert.Len(t, got, 2, "second save replaces the first, never appends")
	assert.Equal(t, 2, repo.deleteCalls)
}

func TestSaveDay_DropsUntouchedPumpsAndClampsLiters(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopTxManager{})
	office := id.New()

	saved, err := svc.SaveDay(context.Background(), office, day(2024, 3, 10), []Reading{
		{TankNumber: 1, OilType: oiltype.Diesel, StartMeter: types.NewLitersFromFloat64(100), EndMeter: 0},
		{TankNumber: 2, OilType: oiltype.Diesel, StartMeter: types.NewLitersFromFloat64(500), EndMeter: types.NewLitersFromFloat64(450)},
		{TankNumber: 3, OilType: oiltype.Diesel, StartMeter: types.NewLitersFromFloat64(100), EndMeter: types.NewLitersFromFloat64(160)},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2, "row with endMeter <= 0 is dropped")

	assert.Equal(t, types.Liters(0), saved[0].Liters, "counter rollback clamps to zero")
	assert.Equal(t, types.NewLitersFromFloat64(60), saved[1].Liters)
}

func TestSaveDay_RejectsInvalidRows(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopTxManager{})

	_, err := svc.SaveDay(context.Background(), id.New(), day(2024, 3, 10), []Reading{
		{TankNumber: 1, OilType: "JETFUEL", EndMeter: types.NewLitersFromFloat64(10)},
	})
	assert.Error(t, err)

	_, err = svc.SaveDay(context.Background(), id.Nil(), day(2024, 3, 10), nil)
	assert.Error(t, err)
}

func TestDayDefaults_CarriesPriorEndMeter(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopTxManager{})
	office := id.New()

	_, err := svc.SaveDay(context.Background(), office, day(2024, 3, 9), []Reading{
		{TankNumber: 1, OilType: oiltype.Diesel, StartMeter: types.NewLitersFromFloat64(100), EndMeter: types.NewLitersFromFloat64(180)},
	})
	require.NoError(t, err)

	defaults, fromSaved, err := svc.DayDefaults(context.Background(), office, day(2024, 3, 10))
	require.NoError(t, err)
	assert.False(t, fromSaved)
	require.NotEmpty(t, defaults)

	byTank := map[int]Reading{}
	for _, r := range defaults {
		byTank[r.TankNumber] = r
	}
	assert.Equal(t, types.NewLitersFromFloat64(180), byTank[1].StartMeter)
	assert.Equal(t, types.Liters(0), byTank[2].StartMeter, "no history means zero start")

	saved, err := svc.GetDay(context.Background(), office, day(2024, 3, 10))
	require.NoError(t, err)
	assert.Empty(t, saved, "defaults are never persisted")
}

func TestDayDefaults_ReturnsSavedRows(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopTxManager{})
	office := id.New()
	d := day(2024, 3, 10)

	_, err := svc.SaveDay(context.Background(), office, d, []Reading{
		{TankNumber: 5, OilType: oiltype.Diesel, StartMeter: types.NewLitersFromFloat64(10), EndMeter: types.NewLitersFromFloat64(20)},
	})
	require.NoError(t, err)

	defaults, fromSaved, err := svc.DayDefaults(context.Background(), office, d)
	require.NoError(t, err)
	assert.True(t, fromSaved)
	assert.Len(t, defaults, 1)
}

package storage

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
)

// fakeRows scanObservations uchun *sql.Rows o'rnini bosadi
type fakeRows struct {
	rows    [][]any
	pos     int
	scanErr error
	err     error
}

func (f *fakeRows) Next() bool {
	if f.pos >= len(f.rows) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	row := f.rows[f.pos-1]
	if len(row) != len(dest) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *int:
			*p = row[i].(int)
		case *int64:
			*p = row[i].(int64)
		case *time.Time:
			*p = row[i].(time.Time)
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

func (f *fakeRows) Err() error { return f.err }

func observationRow(id string, price int64) []any {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []any{id, "NT32-504837", "X-Trail", "white", 2019, price, day, "Tashkent", "Ali"}
}

func TestScanObservations_KeepsRowOrder(t *testing.T) {
	rows := &fakeRows{rows: [][]any{
		observationRow("c", 300),
		observationRow("a", 100),
		observationRow("b", 200),
	}}

	got, err := scanObservations(rows)
	require.NoError(t, err)
	require.Len(t, got, 3)

	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
	assert.Equal(t, int64(100), got[1].Price)
	assert.Equal(t, 2019, got[1].ModelYear)
	assert.Equal(t, "2024-03-01", got[1].DateString())
}

func TestScanObservations_EmptyIsNotNil(t *testing.T) {
	got, err := scanObservations(&fakeRows{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestScanObservations_ScanError(t *testing.T) {
	boom := errors.New("bad column")
	rows := &fakeRows{rows: [][]any{observationRow("a", 100)}, scanErr: boom}

	got, err := scanObservations(rows)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, boom)
}

func TestScanObservations_IterationError(t *testing.T) {
	boom := errors.New("connection reset")
	rows := &fakeRows{rows: [][]any{observationRow("a", 100)}, err: boom}

	_, err := scanObservations(rows)
	assert.ErrorIs(t, err, boom)
}

func TestObservationQueriesOrderBySeq(t *testing.T) {
	for name, q := range map[string]string{"history": historyQuery, "all": allQuery} {
		assert.True(t, strings.HasSuffix(q, "ORDER BY seq"), name)
	}
	assert.Contains(t, historyQuery, "WHERE chassis_code=$1")
	assert.Equal(t, 9, len(strings.Split(observationColumns, ",")))
}

// POSTGRES_TEST_DSN berilmasa o'tkazib yuboriladi
func TestPostgresPriceRepository_HistoryInInsertionOrder(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	repo, err := newPostgresPriceRepository(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.db.Close() })

	ctx := context.Background()
	code := "TST" + strings.ToUpper(uuid.NewString()[:8]) + "-1"
	t.Cleanup(func() {
		_, _ = repo.db.ExecContext(context.Background(), `DELETE FROM price_observations WHERE chassis_code=$1`, code)
	})

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	// narx va id qo'shilish tartibiga mos emas
	prices := []int64{300, 100, 200}
	var want []string
	for _, price := range prices {
		id := uuid.NewString()
		want = append(want, id)
		require.NoError(t, repo.Append(ctx, entity.PriceObservation{
			ID: id, ChassisCode: code, ModelName: "X-Trail", Color: "white",
			ModelYear: 2019, Price: price, ObservedDate: day, Location: "Tashkent", SubmitterName: "Ali",
		}))
	}

	hist, err := repo.History(ctx, strings.ToLower(code))
	require.NoError(t, err)
	require.Len(t, hist, len(prices))
	for i, obs := range hist {
		assert.Equal(t, want[i], obs.ID)
		assert.Equal(t, prices[i], obs.Price)
	}
}

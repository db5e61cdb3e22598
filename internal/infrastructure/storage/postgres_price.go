package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yourusername/chassis-price-bot/internal/domain/entity"
	"github.com/yourusername/chassis-price-bot/internal/domain/repository"
	"github.com/yourusername/chassis-price-bot/pkg/logger"
)

// postgresPriceRepository ledgerni Postgresda saqlaydi; seq qo'shilish tartibini saqlaydi
type postgresPriceRepository struct {
	db *sql.DB
}

const priceSchema = `
CREATE TABLE IF NOT EXISTS price_observations (
	seq BIGSERIAL PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	chassis_code TEXT NOT NULL,
	model_name TEXT NOT NULL,
	color TEXT NOT NULL,
	model_year INTEGER NOT NULL,
	price BIGINT NOT NULL CHECK (price > 0),
	observed_date DATE NOT NULL,
	location TEXT NOT NULL,
	submitter_name TEXT NOT NULL,
	created_at TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS price_observations_chassis_idx ON price_observations (chassis_code, seq);`

func newPostgresPriceRepository(dsn string) (*postgresPriceRepository, error) {
	db, err := openPostgresWithRetry(dsn, postgresConnectAttemptsDefault, postgresConnectDelayDefault)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	if _, err := db.Exec(priceSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create price_observations table: %w", err)
	}
	return &postgresPriceRepository{db: db}, nil
}

// NewPriceRepository DSN berilsa Postgres, aks holda memory
func NewPriceRepository(dsn string) repository.PriceRepository {
	if dsn == "" {
		return NewMemoryPriceRepository()
	}
	repo, err := newPostgresPriceRepository(dsn)
	if err != nil {
		logger.ErrorLogger.Printf("price store: Postgres ulanmadi, memory ledgerga qaytdi: %v", err)
		return NewMemoryPriceRepository()
	}
	return repo
}

func (p *postgresPriceRepository) Append(ctx context.Context, obs entity.PriceObservation) error {
	_, err := p.db.ExecContext(ctx, `
	INSERT INTO price_observations (id, chassis_code, model_name, color, model_year, price, observed_date, location, submitter_name)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		obs.ID, obs.ChassisCode, obs.ModelName, obs.Color, obs.ModelYear, obs.Price, obs.ObservedDate, obs.Location, obs.SubmitterName)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

func (p *postgresPriceRepository) History(ctx context.Context, chassisCode string) ([]entity.PriceObservation, error) {
	rows, err := p.db.QueryContext(ctx, historyQuery, entity.NormalizeChassis(chassisCode))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanObservations(rows)
}

func (p *postgresPriceRepository) All(ctx context.Context) ([]entity.PriceObservation, error) {
	rows, err := p.db.QueryContext(ctx, allQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanObservations(rows)
}

const observationColumns = `id, chassis_code, model_name, color, model_year, price, observed_date, location, submitter_name`

// seq qo'shilish tartibi; boshqa ustun bo'yicha tartiblash mumkin emas
const (
	historyQuery = `SELECT ` + observationColumns + ` FROM price_observations WHERE chassis_code=$1 ORDER BY seq`
	allQuery     = `SELECT ` + observationColumns + ` FROM price_observations ORDER BY seq`
)

// rowScanner *sql.Rows ning scanObservations ishlatadigan qismi
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanObservations(rows rowScanner) ([]entity.PriceObservation, error) {
	res := []entity.PriceObservation{}
	for rows.Next() {
		var obs entity.PriceObservation
		if err := rows.Scan(&obs.ID, &obs.ChassisCode, &obs.ModelName, &obs.Color, &obs.ModelYear, &obs.Price, &obs.ObservedDate, &obs.Location, &obs.SubmitterName); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		res = append(res, obs)
	}
	return res, rows.Err()
}

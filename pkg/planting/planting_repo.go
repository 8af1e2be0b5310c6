package planting

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, p Planting) (Planting, error)
	Get(ctx context.Context, id string) (Planting, error)
	Find(ctx context.Context, filter Filter) ([]Detailed, error)
	Update(ctx context.Context, p Planting) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	// FindActiveOverlapping returns ACTIVE plantings whose life overlaps
	// the inclusive [start, end] window, optionally restricted to a set of
	// ranches and/or one crop. An empty ranchIds slice means no ranch
	// restriction; a nil-safe deliberate no-match is expressed by passing a
	// non-empty slice of ids that match nothing.
	FindActiveOverlapping(ctx context.Context, start, end time.Time, ranchIds []string, cropId string) ([]Detailed, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

const plantingColumns = `p.id, p.crop_id, COALESCE(p.variety_id, ''), p.ranch_id, p.plot_id,
	p.hectares, p.sowing_date, p.harvest_date, p.sowing_iso_week, p.harvest_iso_week,
	p.status, COALESCE(p.tabla, '')`

func scanPlanting(row pgx.Row, p *Planting) error {
	return row.Scan(
		&p.Id,
		&p.CropId,
		&p.VarietyId,
		&p.RanchId,
		&p.PlotId,
		&p.Hectares,
		&p.SowingDate,
		&p.HarvestDate,
		&p.SowingIsoWeek,
		&p.HarvestIsoWeek,
		&p.Status,
		&p.Tabla,
	)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *RepoImpl) Store(ctx context.Context, p Planting) (Planting, error) {
	p.Id = uuid.NewString()
	query := `INSERT INTO planting (
				id, crop_id, variety_id, ranch_id, plot_id, hectares,
				sowing_date, harvest_date, sowing_iso_week, harvest_iso_week, status, tabla
			  ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		p.Id, p.CropId, nullable(p.VarietyId), p.RanchId, p.PlotId, p.Hectares,
		p.SowingDate, p.HarvestDate, p.SowingIsoWeek, p.HarvestIsoWeek, p.Status, nullable(p.Tabla),
	)
	if err != nil {
		err = fmt.Errorf("could not store planting: %w", err)
		log.Error(err)
		return Planting{}, err
	}
	return p, nil
}

func (r *RepoImpl) Get(ctx context.Context, id string) (Planting, error) {
	query := "SELECT " + plantingColumns + " FROM planting p WHERE p.id = $1"
	var p Planting
	err := scanPlanting(r.db.QueryRow(ctx, query, id), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return Planting{}, ErrNotFound
	}
	if err != nil {
		return Planting{}, fmt.Errorf("could not get planting: %w", err)
	}
	return p, nil
}

func (r *RepoImpl) Find(ctx context.Context, filter Filter) ([]Detailed, error) {
	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.CropId != "" {
		conditions = append(conditions, "p.crop_id = "+arg(filter.CropId))
	}
	if filter.RanchId != "" {
		conditions = append(conditions, "p.ranch_id = "+arg(filter.RanchId))
	}
	if filter.PlotId != "" {
		conditions = append(conditions, "p.plot_id = "+arg(filter.PlotId))
	}
	if !filter.SowFrom.IsZero() {
		conditions = append(conditions, "p.sowing_date >= "+arg(filter.SowFrom))
	}
	if !filter.SowTo.IsZero() {
		conditions = append(conditions, "p.sowing_date <= "+arg(filter.SowTo))
	}
	if !filter.HarvestFrom.IsZero() {
		conditions = append(conditions, "p.harvest_date >= "+arg(filter.HarvestFrom))
	}
	if !filter.HarvestTo.IsZero() {
		conditions = append(conditions, "p.harvest_date <= "+arg(filter.HarvestTo))
	}
	if filter.Tabla != "" {
		conditions = append(conditions, "p.tabla ILIKE "+arg("%"+filter.Tabla+"%"))
	}

	query := "SELECT " + plantingColumns + detailedJoinColumns + detailedFrom
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.sowing_date DESC"

	return r.queryDetailed(ctx, query, args...)
}

func (r *RepoImpl) FindActiveOverlapping(ctx context.Context, start, end time.Time, ranchIds []string, cropId string) ([]Detailed, error) {
	query := "SELECT " + plantingColumns + detailedJoinColumns + detailedFrom +
		" WHERE p.status = 'ACTIVE' AND p.sowing_date <= $1 AND p.harvest_date >= $2"
	args := []any{end, start}
	if len(ranchIds) > 0 {
		args = append(args, ranchIds)
		query += fmt.Sprintf(" AND p.ranch_id = ANY($%d)", len(args))
	}
	if cropId != "" {
		args = append(args, cropId)
		query += fmt.Sprintf(" AND p.crop_id = $%d", len(args))
	}
	query += " ORDER BY p.sowing_date"

	return r.queryDetailed(ctx, query, args...)
}

const detailedJoinColumns = `, c.name, COALESCE(v.name, ''), rn.name, pl.name`

const detailedFrom = ` FROM planting p
	JOIN crop c ON c.id = p.crop_id
	LEFT JOIN variety v ON v.id = p.variety_id
	JOIN ranch rn ON rn.id = p.ranch_id
	JOIN plot pl ON pl.id = p.plot_id`

func (r *RepoImpl) queryDetailed(ctx context.Context, query string, args ...any) ([]Detailed, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err = fmt.Errorf("could not query plantings: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var result []Detailed
	for rows.Next() {
		var d Detailed
		if err := rows.Scan(
			&d.Id, &d.CropId, &d.VarietyId, &d.RanchId, &d.PlotId,
			&d.Hectares, &d.SowingDate, &d.HarvestDate, &d.SowingIsoWeek, &d.HarvestIsoWeek,
			&d.Status, &d.Tabla,
			&d.CropName, &d.VarietyName, &d.RanchName, &d.PlotName,
		); err != nil {
			return nil, fmt.Errorf("could not scan planting: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func (r *RepoImpl) Update(ctx context.Context, p Planting) (bool, error) {
	query := `UPDATE planting SET
				crop_id = $1,
				variety_id = $2,
				ranch_id = $3,
				plot_id = $4,
				hectares = $5,
				sowing_date = $6,
				harvest_date = $7,
				sowing_iso_week = $8,
				harvest_iso_week = $9,
				status = $10,
				tabla = $11
			  WHERE id = $12`
	tag, err := r.db.Exec(ctx, query,
		p.CropId, nullable(p.VarietyId), p.RanchId, p.PlotId, p.Hectares,
		p.SowingDate, p.HarvestDate, p.SowingIsoWeek, p.HarvestIsoWeek, p.Status, nullable(p.Tabla),
		p.Id,
	)
	if err != nil {
		err = fmt.Errorf("could not update planting: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM planting WHERE id = $1", id)
	if err != nil {
		err = fmt.Errorf("could not delete planting: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

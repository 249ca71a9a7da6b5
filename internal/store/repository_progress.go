package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/models"
	"github.com/jackc/pgerrcode"
)

// progressRepository is the PostgreSQL-backed implementation of
// [ProgressRepository].
type progressRepository struct {
	*DB
	logger *logger.Logger
}

// NewProgressRepository constructs a [ProgressRepository] backed by db.
func NewProgressRepository(db *DB, logger *logger.Logger) ProgressRepository {
	logger.Debug().Msg("creating progress repository")
	return &progressRepository{
		DB:     db,
		logger: logger,
	}
}

// UpsertProgress runs a single INSERT ... ON CONFLICT statement so that
// concurrent upserts for the same (user_id, platform) converge on one row.
func (p *progressRepository) UpsertProgress(ctx context.Context, progress models.Progress) (models.Progress, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertProgressQuery(progress)
	if err != nil {
		log.Err(err).Str("func", "progressRepository.UpsertProgress").Msg("failed to create query")
		return models.Progress{}, err
	}

	saved, err := scanProgress(p.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).
			Str("func", "progressRepository.UpsertProgress").
			Str("user_id", progress.UserID).
			Str("platform", progress.Platform).
			Msg("failed to upsert progress")
		return models.Progress{}, p.mapWriteError(err)
	}

	return saved, nil
}

// UpdateProgress overwrites the counts of the (user_id, platform) row.
func (p *progressRepository) UpdateProgress(ctx context.Context, progress models.Progress) (models.Progress, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProgressQuery(progress)
	if err != nil {
		log.Err(err).Str("func", "progressRepository.UpdateProgress").Msg("failed to create query")
		return models.Progress{}, err
	}

	saved, err := scanProgress(p.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Progress{}, ErrProgressNotFound
		}
		log.Err(err).
			Str("func", "progressRepository.UpdateProgress").
			Str("user_id", progress.UserID).
			Str("platform", progress.Platform).
			Msg("failed to update progress")
		return models.Progress{}, p.mapWriteError(err)
	}

	return saved, nil
}

// ListProgress returns every record of userID ordered by last_updated
// descending.
func (p *progressRepository) ListProgress(ctx context.Context, userID string) ([]models.Progress, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListProgressQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "progressRepository.ListProgress").Msg("failed to create query")
		return nil, err
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "progressRepository.ListProgress").
			Str("user_id", userID).
			Msg("failed to execute query for listing progress")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Progress, 0, 8)
	for rows.Next() {
		item, scanErr := scanProgress(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "progressRepository.ListProgress").Msg("failed to scan progress row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, item)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "progressRepository.ListProgress").Msg("error iterating progress rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return results, nil
}

// DeleteProgress deletes by id scoped to userID. Zero affected rows means the
// record is absent or foreign and yields [ErrProgressNotFound].
func (p *progressRepository) DeleteProgress(ctx context.Context, userID, progressID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteProgressQuery(userID, progressID)
	if err != nil {
		log.Err(err).Str("func", "progressRepository.DeleteProgress").Msg("failed to create query")
		return err
	}

	res, err := p.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if postgresError(err) == pgerrcode.InvalidTextRepresentation {
			return ErrProgressNotFound
		}
		log.Err(err).
			Str("func", "progressRepository.DeleteProgress").
			Str("user_id", userID).
			Str("progress_id", progressID).
			Msg("failed to delete progress")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrProgressNotFound
	}

	return nil
}

func (p *progressRepository) mapWriteError(err error) error {
	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %w", ErrProgressConflict, err)
	case pgerrcode.CheckViolation:
		return fmt.Errorf("%w: %w", ErrProgressConstraint, err)
	}

	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

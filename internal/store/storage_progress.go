// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/MKhiriev/go-progress-tracker/internal/config"
	"github.com/MKhiriev/go-progress-tracker/internal/logger"
	"github.com/MKhiriev/go-progress-tracker/models"
)

const (
	progressListKeyPrefix = "progress:list:"
	progressGenKeyPrefix  = "progress:gen:"
)

// progressStorage is the default implementation of [ProgressStorage].
//
// It delegates SQL to a [ProgressRepository] and coordinates two extras:
//   - an optional [Cache] holding each user's list under a key that carries
//     the user's write generation, bumped on every write;
//   - a single retry of an upsert that lost the insert race, run as a plain
//     update.
type progressStorage struct {
	repository ProgressRepository
	cache      Cache
	cacheTTL   time.Duration
	classifier ErrorClassificator
	logger     *logger.Logger
}

// NewProgressStorage wires a storage around repository. cache may be nil.
func NewProgressStorage(repository ProgressRepository, cache Cache, cfg config.Cache, classifier ErrorClassificator, logger *logger.Logger) ProgressStorage {
	logger.Debug().Msg("creating progress storage")
	if classifier == nil {
		classifier = NewPostgresErrorClassifier()
	}

	return &progressStorage{
		repository: repository,
		cache:      cache,
		cacheTTL:   cfg.TTL,
		classifier: classifier,
		logger:     logger,
	}
}

// Upsert stores the record and moves the user's cache to a new generation.
func (p *progressStorage) Upsert(ctx context.Context, progress models.Progress) (models.Progress, error) {
	log := logger.FromContext(ctx)

	saved, err := p.repository.UpsertProgress(ctx, progress)
	if errors.Is(err, ErrProgressConflict) {
		log.Warn().Str("func", "progressStorage.Upsert").Msg("upsert conflict, retrying as update")
		saved, err = p.repository.UpdateProgress(ctx, progress)
	}
	if err != nil {
		p.logFailure(ctx, "progressStorage.Upsert", err)
		return models.Progress{}, err
	}

	p.bumpGeneration(ctx, progress.UserID)
	return saved, nil
}

// List serves the user's records from the cache when present.
func (p *progressStorage) List(ctx context.Context, userID string) ([]models.Progress, error) {
	key, cacheable := p.listKey(ctx, userID)
	if cacheable {
		if cached, ok := p.cached(ctx, key); ok {
			return cached, nil
		}
	}

	list, err := p.repository.ListProgress(ctx, userID)
	if err != nil {
		p.logFailure(ctx, "progressStorage.List", err)
		return nil, err
	}

	if cacheable {
		p.store(ctx, key, list)
	}
	return list, nil
}

// Delete removes the record and moves the user's cache to a new generation.
func (p *progressStorage) Delete(ctx context.Context, userID, progressID string) error {
	if err := p.repository.DeleteProgress(ctx, userID, progressID); err != nil {
		if !errors.Is(err, ErrProgressNotFound) {
			p.logFailure(ctx, "progressStorage.Delete", err)
		}
		return err
	}

	p.bumpGeneration(ctx, userID)
	return nil
}

func (p *progressStorage) logFailure(ctx context.Context, funcName string, err error) {
	if errors.Is(err, ErrProgressConstraint) {
		return
	}

	logger.FromContext(ctx).Error().
		Err(err).
		Str("func", funcName).
		Bool("transient", p.classifier.Classify(err) == Retryable).
		Msg("progress storage call failed")
}

func progressGenKey(userID string) string {
	return progressGenKeyPrefix + userID
}

func progressListKey(userID string, generation int64) string {
	return progressListKeyPrefix + userID + ":" + strconv.FormatInt(generation, 10)
}

// listKey reads the user's generation before the database is queried, so a
// snapshot that races a write lands under a generation nobody reads again.
func (p *progressStorage) listKey(ctx context.Context, userID string) (string, bool) {
	if p.cache == nil {
		return "", false
	}

	data, err := p.cache.Get(ctx, progressGenKey(userID))
	if err != nil {
		return "", false
	}
	if data == nil {
		return progressListKey(userID, 0), true
	}

	generation, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "progressStorage.listKey").Msg("bypassing cache with an unreadable generation")
		return "", false
	}

	return progressListKey(userID, generation), true
}

func (p *progressStorage) cached(ctx context.Context, key string) ([]models.Progress, bool) {
	data, err := p.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}

	var list []models.Progress
	if err = json.Unmarshal(data, &list); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "progressStorage.cached").Msg("dropping undecodable cache entry")
		if err = p.cache.Delete(ctx, key); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("func", "progressStorage.cached").Msg("failed to drop cache entry")
		}
		return nil, false
	}

	return list, true
}

func (p *progressStorage) store(ctx context.Context, key string, list []models.Progress) {
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	_ = p.cache.Set(ctx, key, data, p.cacheTTL)
}

func (p *progressStorage) bumpGeneration(ctx context.Context, userID string) {
	if p.cache == nil {
		return
	}

	if _, err := p.cache.Incr(ctx, progressGenKey(userID)); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "progressStorage.bumpGeneration").Msg("failed to invalidate progress cache")
	}
}

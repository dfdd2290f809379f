package moderation

import (
	"context"
	"errors"
	"strconv"

	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/cache"
	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/db"
	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/pereval"

	"github.com/jackc/pgx/v5"
)

// Service is the moderation side of the pass lifecycle. It is the only
// code that transitions a record's status; the submission surface just
// reads it.
type Service struct {
	db    db.Querier
	cache *cache.Cache
}

func NewService(q db.Querier, c *cache.Cache) *Service {
	return &Service{db: q, cache: c}
}

// TransitionError rejects an illegal status move, carrying both ends.
type TransitionError struct {
	From pereval.Status
	To   pereval.Status
}

func (e *TransitionError) Error() string {
	return "cannot move record from status " + string(e.From) + " to " + string(e.To)
}

func cacheKey(id int64) string {
	return "pass:" + strconv.FormatInt(id, 10)
}

// SetStatus moves a record along the moderation state machine.
func (s *Service) SetStatus(ctx context.Context, id int64, next pereval.Status) (pereval.Status, error) {
	var current pereval.Status
	err := s.db.QueryRow(ctx, `
		SELECT status FROM pereval_added WHERE id=$1
	`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", pereval.ErrNotFound
		}
		return "", &pereval.StorageError{Err: err}
	}

	if !pereval.CanTransition(current, next) {
		return current, &TransitionError{From: current, To: next}
	}

	if _, err := s.db.Exec(ctx, `
		UPDATE pereval_added SET status=$2 WHERE id=$1
	`, id, string(next)); err != nil {
		return current, &pereval.StorageError{Err: err}
	}

	s.cache.Delete(ctx, cacheKey(id))
	return next, nil
}

// Delete removes a record together with its owned coords, level and
// images. The submitter row stays; other records may reference it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	var coordsID, levelID int64
	err := s.db.QueryRow(ctx, `
		SELECT coords_id, level_id FROM pereval_added WHERE id=$1
	`, id).Scan(&coordsID, &levelID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pereval.ErrNotFound
		}
		return &pereval.StorageError{Err: err}
	}

	err = db.WithTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM pereval_images WHERE pass_id=$1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM pereval_added WHERE id=$1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM pereval_coords WHERE id=$1`, coordsID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM pereval_level WHERE id=$1`, levelID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return &pereval.StorageError{Err: err}
	}

	s.cache.Delete(ctx, cacheKey(id))
	return nil
}

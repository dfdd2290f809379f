package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/Kanny-Dzmitry/pereval-online-stazhirovka/internal/pereval"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestSetStatusForward(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT status FROM pereval_added`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(pereval.StatusNew))
	mock.ExpectExec(`UPDATE pereval_added SET status`).
		WithArgs(int64(10), "pending").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	svc := NewService(mock, nil)
	updated, err := svc.SetStatus(context.Background(), 10, pereval.StatusPending)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated != pereval.StatusPending {
		t.Fatalf("expected pending, got %s", updated)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetStatusIllegalTransition(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT status FROM pereval_added`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(pereval.StatusAccepted))

	svc := NewService(mock, nil)
	_, err := svc.SetStatus(context.Background(), 10, pereval.StatusPending)

	var transition *TransitionError
	if !errors.As(err, &transition) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if transition.From != pereval.StatusAccepted {
		t.Fatalf("expected current status in error, got %s", transition.From)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no write may happen: %v", err)
	}
}

func TestSetStatusUnknownRecord(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT status FROM pereval_added`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	svc := NewService(mock, nil)
	_, err := svc.SetStatus(context.Background(), 404, pereval.StatusPending)
	if !errors.Is(err, pereval.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCascadesOwnedEntities(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT coords_id, level_id FROM pereval_added`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"coords_id", "level_id"}).AddRow(int64(2), int64(3)))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM pereval_images`).
		WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`DELETE FROM pereval_added`).
		WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM pereval_coords`).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM pereval_level`).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	svc := NewService(mock, nil)
	if err := svc.Delete(context.Background(), 10); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteRollsBackOnFailure(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT coords_id, level_id FROM pereval_added`).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"coords_id", "level_id"}).AddRow(int64(2), int64(3)))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM pereval_images`).
		WithArgs(int64(10)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	svc := NewService(mock, nil)
	err := svc.Delete(context.Background(), 10)

	var storage *pereval.StorageError
	if !errors.As(err, &storage) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

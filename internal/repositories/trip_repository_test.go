package repositories

import (
	"database/sql"
	"testing"

	"fwd/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var tripRowColumns = []string{
	"id", "user_id", "name", "start_date", "end_date", "share_token", "is_public", "created_at",
}

func newTripRepo(t *testing.T) (TripRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	return TripRepository{DB: db}, mock, func() { db.Close() }
}

func TestListByUserStoredOrder(t *testing.T) {
	repo, mock, done := newTripRepo(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM trips WHERE user_id=(.+) ORDER BY id ASC").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(tripRowColumns).
			AddRow(1, 9, "Austin", "2025-11-19", "2025-12-02", "tok1", 0, "").
			AddRow(2, 9, "Portland", "2026-02-10", "2026-02-12", "tok2", 1, ""))

	trips, err := repo.ListByUser(9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 2 || trips[0].ID != 1 || trips[1].ID != 2 {
		t.Fatalf("stored order lost: %+v", trips)
	}
	if !trips[1].IsPublic || trips[0].IsPublic {
		t.Fatalf("is_public scanned wrong: %+v", trips)
	}
}

func TestGetByShareTokenNotFound(t *testing.T) {
	repo, mock, done := newTripRepo(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM trips WHERE share_token=").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByShareToken("nope")
	if !domain.IsNotFound(err) {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestUpdateShareTokenScopedToOwner(t *testing.T) {
	repo, mock, done := newTripRepo(t)
	defer done()

	mock.ExpectExec("UPDATE trips SET share_token=").
		WithArgs("newtok", int64(3), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateShareToken(3, 9, "newtok")
	if !domain.IsNotFound(err) {
		t.Fatalf("someone else's trip must read as not found, got %v", err)
	}
}

package services

import (
	"testing"

	"fwd/internal/domain"
	"fwd/internal/domain/models"
	"fwd/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var stepRowColumns = []string{
	"id", "user_id", "trip_id", "type", "start_datetime", "end_datetime",
	"origin_name", "origin_address", "origin_terminal", "origin_gate", "origin_lat", "origin_lng",
	"destination_name", "destination_address", "destination_terminal", "destination_gate", "destination_lat", "destination_lng",
	"carrier_name", "confirmation_number", "created_at",
}

var tripRowColumns = []string{
	"id", "user_id", "name", "start_date", "end_date", "share_token", "is_public", "created_at",
}

func newAssigner(t *testing.T) (AssignerService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := AssignerService{
		StepRepo: repositories.StepRepository{DB: db},
		TripRepo: repositories.TripRepository{DB: db},
	}
	return svc, mock, func() { db.Close() }
}

func TestAssignNewStepsJoinsFirstStoredTrip(t *testing.T) {
	svc, mock, done := newAssigner(t)
	defer done()

	// Both trips' gap windows cover 2025-11-26. The first in stored order
	// wins; there is no closer-trip tie-break.
	mock.ExpectQuery("SELECT (.+) FROM trips WHERE user_id=").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(tripRowColumns).
			AddRow(1, 9, "Austin", "2025-11-19", "2025-12-02", "tok1", 0, "").
			AddRow(2, 9, "Thanksgiving", "2025-11-25", "2025-12-05", "tok2", 0, ""))
	mock.ExpectExec(`UPDATE travel_steps SET trip_id=\? WHERE id IN \(\?\)`).
		WithArgs(int64(1), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM travel_steps WHERE trip_id=").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(stepRowColumns).
			AddRow(7, 9, 1, "hotel", "2025-11-20T15:00:00-06:00", "2025-11-24T11:00:00-06:00",
				"Hilton Austin", "500 E 4th St, Austin, TX 78701", "", "", nil, nil,
				"", "", "", "", nil, nil, "", "", ""))
	mock.ExpectExec("UPDATE trips SET name=").
		WithArgs("Austin", "2025-11-20", "2025-11-24", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	newStep := models.TravelStep{ID: 42, UserID: 9, Type: models.TypeActivity, StartDateTime: "2025-11-26T10:00:00-06:00", OriginName: "Franklin Barbecue"}
	res, err := svc.AssignNewSteps(9, []models.TravelStep{newStep})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TripID != 1 || res.Created {
		t.Fatalf("got %+v, want join of trip 1", res)
	}
	if res.TripName != "Austin" {
		t.Fatalf("got name %q want Austin", res.TripName)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignNewStepsCreatesTripOutsideEveryWindow(t *testing.T) {
	svc, mock, done := newAssigner(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM trips WHERE user_id=").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(tripRowColumns).
			AddRow(1, 9, "Winter", "2025-01-01", "2025-01-05", "tok1", 0, ""))
	mock.ExpectExec("INSERT INTO trips").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(`UPDATE travel_steps SET trip_id=\? WHERE id IN \(\?\)`).
		WithArgs(int64(5), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	newStep := step(42, models.TypeFlight, "2025-06-01T08:00:00-05:00", "2025-06-01T10:30:00-05:00", "New York (JFK)", "Austin (AUS)")
	res, err := svc.AssignNewSteps(9, []models.TravelStep{newStep})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Created || res.TripID != 5 {
		t.Fatalf("got %+v, want new trip 5", res)
	}
	if res.TripName != "Austin" {
		t.Fatalf("got name %q want Austin", res.TripName)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAssignNewStepsEmptyBatch(t *testing.T) {
	svc, _, done := newAssigner(t)
	defer done()

	if _, err := svc.AssignNewSteps(9, nil); !domain.IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestRefreshTripDeletesEmptyTrip(t *testing.T) {
	svc, mock, done := newAssigner(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM travel_steps WHERE trip_id=").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(stepRowColumns))
	mock.ExpectExec("DELETE FROM trips WHERE id=").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	name, err := svc.RefreshTrip(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "" {
		t.Fatalf("deleted trip should yield empty name, got %q", name)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithinGapWindow(t *testing.T) {
	trip := models.Trip{StartDate: "2025-11-19", EndDate: "2025-12-02"}
	cases := []struct {
		date string
		want bool
	}{
		{"2025-11-26", true},
		{"2025-11-12", true},  // exactly MaxGapDays before start
		{"2025-12-09", true},  // exactly MaxGapDays after end
		{"2025-11-11", false}, // one past the window
		{"2025-12-10", false},
	}
	for _, c := range cases {
		if got := withinGapWindow(trip, c.date); got != c.want {
			t.Fatalf("withinGapWindow(%s) = %v want %v", c.date, got, c.want)
		}
	}
	if withinGapWindow(models.Trip{}, "2025-11-26") {
		t.Fatalf("trip without dates must not match")
	}
}

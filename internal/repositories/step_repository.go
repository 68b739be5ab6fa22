package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intdb "fwd/internal/db"
	"fwd/internal/domain"
	"fwd/internal/domain/models"
)

// StepRepository wraps DB access for travel_steps. The connection is injected
// at construction; there is no module-level fallback.
type StepRepository struct {
	DB *sql.DB
}

const stepColumns = `
	id,
	user_id,
	trip_id,
	type,
	start_datetime,
	COALESCE(end_datetime,''),
	origin_name,
	COALESCE(origin_address,''),
	COALESCE(origin_terminal,''),
	COALESCE(origin_gate,''),
	origin_lat,
	origin_lng,
	COALESCE(destination_name,''),
	COALESCE(destination_address,''),
	COALESCE(destination_terminal,''),
	COALESCE(destination_gate,''),
	destination_lat,
	destination_lng,
	COALESCE(carrier_name,''),
	COALESCE(confirmation_number,''),
	COALESCE(created_at,'')`

func scanStep(row interface{ Scan(dest ...any) error }) (models.TravelStep, error) {
	var s models.TravelStep
	var tripID sql.NullInt64
	var oLat, oLng, dLat, dLng sql.NullFloat64
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&tripID,
		&s.Type,
		&s.StartDateTime,
		&s.EndDateTime,
		&s.OriginName,
		&s.OriginAddress,
		&s.OriginTerminal,
		&s.OriginGate,
		&oLat,
		&oLng,
		&s.DestinationName,
		&s.DestinationAddress,
		&s.DestinationTerminal,
		&s.DestinationGate,
		&dLat,
		&dLng,
		&s.CarrierName,
		&s.ConfirmationNumber,
		&s.CreatedAt,
	)
	if err != nil {
		return s, err
	}
	s.TripID = intdb.IntPtr(tripID)
	s.OriginLat = intdb.FloatPtr(oLat)
	s.OriginLng = intdb.FloatPtr(oLng)
	s.DestinationLat = intdb.FloatPtr(dLat)
	s.DestinationLng = intdb.FloatPtr(dLng)
	return s, nil
}

func (r StepRepository) listWhere(where string, args ...any) ([]models.TravelStep, error) {
	query := `SELECT ` + stepColumns + ` FROM travel_steps WHERE ` + where + ` ORDER BY start_datetime ASC, id ASC`
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TravelStep{}
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByUser returns all of a user's steps in start_datetime ascending order,
// the order the grouping scan requires.
func (r StepRepository) ListByUser(userID int64) ([]models.TravelStep, error) {
	return r.listWhere(`user_id=?`, userID)
}

// ListByTrip returns a trip's member steps in timeline order.
func (r StepRepository) ListByTrip(tripID int64) ([]models.TravelStep, error) {
	return r.listWhere(`trip_id=?`, tripID)
}

func (r StepRepository) GetByID(id, userID int64) (models.TravelStep, error) {
	row := r.DB.QueryRow(`SELECT `+stepColumns+` FROM travel_steps WHERE id=? AND user_id=? LIMIT 1`, id, userID)
	s, err := scanStep(row)
	if err == sql.ErrNoRows {
		return s, domain.NotFoundError{Resource: "travel step", Err: err}
	}
	return s, err
}

// ExistsDuplicate checks the double-forward protection key:
// (user_id, type, start_datetime, origin_name) as an exact tuple.
func (r StepRepository) ExistsDuplicate(userID int64, stepType, startDateTime, originName string) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM travel_steps
		WHERE user_id=? AND type=? AND start_datetime=? AND origin_name=?`,
		userID, stepType, startDateTime, originName).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Insert persists a step and returns its id. Optional text goes in as NULL
// via NullIfEmpty so "" never reaches the table.
func (r StepRepository) Insert(s models.TravelStep) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO travel_steps (
			user_id, trip_id, type, start_datetime, end_datetime,
			origin_name, origin_address, origin_terminal, origin_gate, origin_lat, origin_lng,
			destination_name, destination_address, destination_terminal, destination_gate, destination_lat, destination_lng,
			carrier_name, confirmation_number, created_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW())`,
		s.UserID,
		tripIDArg(s.TripID),
		s.Type,
		s.StartDateTime,
		intdb.NullIfEmpty(s.EndDateTime),
		s.OriginName,
		intdb.NullIfEmpty(s.OriginAddress),
		intdb.NullIfEmpty(s.OriginTerminal),
		intdb.NullIfEmpty(s.OriginGate),
		intdb.NullFloat(s.OriginLat),
		intdb.NullFloat(s.OriginLng),
		intdb.NullIfEmpty(s.DestinationName),
		intdb.NullIfEmpty(s.DestinationAddress),
		intdb.NullIfEmpty(s.DestinationTerminal),
		intdb.NullIfEmpty(s.DestinationGate),
		intdb.NullFloat(s.DestinationLat),
		intdb.NullFloat(s.DestinationLng),
		intdb.NullIfEmpty(s.CarrierName),
		intdb.NullIfEmpty(s.ConfirmationNumber),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update overwrites a step's editable fields. trip_id moves go through
// MoveToTrip instead so trip refresh stays in one place.
func (r StepRepository) Update(s models.TravelStep) error {
	res, err := r.DB.Exec(`
		UPDATE travel_steps SET
			type=?, start_datetime=?, end_datetime=?,
			origin_name=?, origin_address=?, origin_terminal=?, origin_gate=?, origin_lat=?, origin_lng=?,
			destination_name=?, destination_address=?, destination_terminal=?, destination_gate=?, destination_lat=?, destination_lng=?,
			carrier_name=?, confirmation_number=?
		WHERE id=? AND user_id=?`,
		s.Type,
		s.StartDateTime,
		intdb.NullIfEmpty(s.EndDateTime),
		s.OriginName,
		intdb.NullIfEmpty(s.OriginAddress),
		intdb.NullIfEmpty(s.OriginTerminal),
		intdb.NullIfEmpty(s.OriginGate),
		intdb.NullFloat(s.OriginLat),
		intdb.NullFloat(s.OriginLng),
		intdb.NullIfEmpty(s.DestinationName),
		intdb.NullIfEmpty(s.DestinationAddress),
		intdb.NullIfEmpty(s.DestinationTerminal),
		intdb.NullIfEmpty(s.DestinationGate),
		intdb.NullFloat(s.DestinationLat),
		intdb.NullFloat(s.DestinationLng),
		intdb.NullIfEmpty(s.CarrierName),
		intdb.NullIfEmpty(s.ConfirmationNumber),
		s.ID,
		s.UserID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "travel step"}
	}
	return nil
}

func (r StepRepository) Delete(id, userID int64) error {
	res, err := r.DB.Exec(`DELETE FROM travel_steps WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "travel step"}
	}
	return nil
}

// AssignTrip points a whole batch of steps at one trip in a single statement,
// so a batch is either fully assigned or not at all.
func (r StepRepository) AssignTrip(stepIDs []int64, tripID int64) error {
	if len(stepIDs) == 0 {
		return nil
	}
	ph := make([]string, len(stepIDs))
	args := make([]any, 0, len(stepIDs)+1)
	args = append(args, tripID)
	for i, id := range stepIDs {
		ph[i] = "?"
		args = append(args, id)
	}
	_, err := r.DB.Exec(
		fmt.Sprintf(`UPDATE travel_steps SET trip_id=? WHERE id IN (%s)`, strings.Join(ph, ",")),
		args...,
	)
	return err
}

// MoveToTrip reassigns one step; tripID 0 detaches it.
func (r StepRepository) MoveToTrip(stepID, userID, tripID int64) error {
	res, err := r.DB.Exec(`UPDATE travel_steps SET trip_id=NULLIF(?,0) WHERE id=? AND user_id=?`,
		tripID, stepID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "travel step"}
	}
	return nil
}

// ClearTripsForUser detaches every step ahead of a full regroup.
func (r StepRepository) ClearTripsForUser(userID int64) error {
	_, err := r.DB.Exec(`UPDATE travel_steps SET trip_id=NULL WHERE user_id=?`, userID)
	return err
}

// DetachTrip unassigns a deleted trip's steps without touching the rows.
func (r StepRepository) DetachTrip(tripID int64) error {
	_, err := r.DB.Exec(`UPDATE travel_steps SET trip_id=NULL WHERE trip_id=?`, tripID)
	return err
}

func tripIDArg(tripID *int64) any {
	if tripID == nil {
		return nil
	}
	return intdb.NullIfZero(*tripID)
}

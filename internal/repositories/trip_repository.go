package repositories

import (
	"database/sql"

	"fwd/internal/domain"
	"fwd/internal/domain/models"
)

// TripRepository wraps DB access for trips.
type TripRepository struct {
	DB *sql.DB
}

const tripColumns = `
	id,
	user_id,
	name,
	COALESCE(start_date,''),
	COALESCE(end_date,''),
	COALESCE(share_token,''),
	COALESCE(is_public,0),
	COALESCE(created_at,'')`

func scanTrip(row interface{ Scan(dest ...any) error }) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&t.StartDate,
		&t.EndDate,
		&t.ShareToken,
		&t.IsPublic,
		&t.CreatedAt,
	)
	return t, err
}

// ListByUser returns trips in insertion order. The incremental assigner
// walks this list and takes the first gap-window match, so the order here is
// the documented tie-break.
func (r TripRepository) ListByUser(userID int64) ([]models.Trip, error) {
	rows, err := r.DB.Query(`SELECT `+tripColumns+` FROM trips WHERE user_id=? ORDER BY id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) GetByID(id, userID int64) (models.Trip, error) {
	row := r.DB.QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id=? AND user_id=? LIMIT 1`, id, userID)
	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "trip", Err: err}
	}
	return t, err
}

// GetByShareToken loads a trip for the unauthenticated shared view.
func (r TripRepository) GetByShareToken(token string) (models.Trip, error) {
	row := r.DB.QueryRow(`SELECT `+tripColumns+` FROM trips WHERE share_token=? LIMIT 1`, token)
	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "trip", Err: err}
	}
	return t, err
}

func (r TripRepository) Insert(t models.Trip) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO trips (user_id, name, start_date, end_date, share_token, is_public, created_at)
		VALUES (?,?,?,?,?,?,NOW())`,
		t.UserID, t.Name, t.StartDate, t.EndDate, t.ShareToken, t.IsPublic,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateNameAndRange rewrites the derived fields after a membership change.
func (r TripRepository) UpdateNameAndRange(id int64, name, startDate, endDate string) error {
	_, err := r.DB.Exec(`UPDATE trips SET name=?, start_date=?, end_date=? WHERE id=?`,
		name, startDate, endDate, id)
	return err
}

func (r TripRepository) UpdateShareToken(id, userID int64, token string) error {
	res, err := r.DB.Exec(`UPDATE trips SET share_token=? WHERE id=? AND user_id=?`, token, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func (r TripRepository) SetPublic(id, userID int64, isPublic bool) error {
	res, err := r.DB.Exec(`UPDATE trips SET is_public=? WHERE id=? AND user_id=?`, isPublic, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func (r TripRepository) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM trips WHERE id=?`, id)
	return err
}

// DeleteByUser clears all trips ahead of a full regroup.
func (r TripRepository) DeleteByUser(userID int64) error {
	_, err := r.DB.Exec(`DELETE FROM trips WHERE user_id=?`, userID)
	return err
}

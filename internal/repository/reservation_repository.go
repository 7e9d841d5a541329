package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/argodnc/office-rental/internal/model"
)

// dateLayout is used when binding DATE columns. Reading relies on
// parseTime=true in the DSN, which scans DATE into UTC-midnight time.Time.
const dateLayout = "2006-01-02"

// ReservationRepo provides CRUD operations for reservations. A reservation
// books one office for an inclusive calendar date range. All writes that
// affect an office's availability go through the reservation service,
// which serializes them under the per-office lock; the repository itself
// performs no locking.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, user_id, office_id, start_date, end_date, status, price, wifi_password, created_at, updated_at`

func scanReservation(row interface {
	Scan(dest ...interface{}) error
}, res *model.Reservation) error {
	return row.Scan(
		&res.ID, &res.UserID, &res.OfficeID, &res.StartDate, &res.EndDate,
		&res.Status, &res.Price, &res.WifiPassword, &res.CreatedAt, &res.UpdatedAt,
	)
}

// Create inserts a new reservation and populates the generated ID and
// timestamps on the provided record. WifiPassword must already be sealed
// by the caller; the repository never sees the plaintext secret.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (user_id, office_id, start_date, end_date, status, price, wifi_password)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.UserID, res.OfficeID,
		res.StartDate.Format(dateLayout), res.EndDate.Format(dateLayout),
		res.Status, res.Price, res.WifiPassword,
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	return scanReservation(r.db.QueryRowContext(ctx, sel, res.ID), res)
}

// GetByID returns a reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	var res model.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// UpdateStatus sets the status of a reservation. It returns
// ErrReservationNotFound when no row was updated.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE reservations SET status = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// HasActiveOverlap reports whether any ACTIVE reservation on the office
// overlaps the candidate range [start, end]. The interval is closed on
// both sides: sharing a single boundary day counts as an overlap. The
// predicate decomposes into "existing starts inside", "existing ends
// inside" and "existing fully contains the candidate".
func (r *ReservationRepo) HasActiveOverlap(ctx context.Context, officeID uint64, start, end time.Time) (bool, error) {
	const q = `SELECT EXISTS (
	             SELECT 1 FROM reservations
	             WHERE office_id = ?
	               AND status = ?
	               AND (
	                 (start_date BETWEEN ? AND ?)
	                 OR (end_date BETWEEN ? AND ?)
	                 OR (start_date < ? AND end_date > ?)
	               )
	           )`
	s := start.Format(dateLayout)
	e := end.Format(dateLayout)
	var exists bool
	err := r.db.QueryRowContext(ctx, q,
		officeID, model.StatusActive,
		s, e,
		s, e,
		s, e,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListFilter narrows reservation listings. Nil fields are ignored. From
// and To must be set together and use the same closed-interval overlap
// semantics as availability checks.
type ListFilter struct {
	OfficeID *uint64
	UserID   *uint64 // host listings only: filter by visitor
	Status   *string
	From     *time.Time
	To       *time.Time
	Page     int
	PerPage  int
}

// ReservationDetail is a reservation row joined with a summary of its
// office, shaped for JSON responses. The wifi password is intentionally
// absent; handlers decide when to reveal it.
type ReservationDetail struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	OfficeID  uint64    `json:"office_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Status    string    `json:"status"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	Office    struct {
		ID          uint64 `json:"id"`
		UserID      uint64 `json:"user_id"`
		Title       string `json:"title"`
		Address     string `json:"address"`
		PricePerDay int64  `json:"price_per_day"`
	} `json:"office"`
}

// ListByUser returns the visitor's reservations, newest first, with the
// office relation loaded. Filters and pagination come from ListFilter.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64, f ListFilter) ([]ReservationDetail, error) {
	where := []string{"r.user_id = ?"}
	args := []interface{}{userID}
	where, args = f.apply(where, args)
	return r.listDetails(ctx, where, args, f)
}

// ListForHost returns reservations made on any office owned by hostID,
// newest first. The optional UserID filter narrows to one visitor.
func (r *ReservationRepo) ListForHost(ctx context.Context, hostID uint64, f ListFilter) ([]ReservationDetail, error) {
	where := []string{"o.user_id = ?"}
	args := []interface{}{hostID}
	if f.UserID != nil {
		where = append(where, "r.user_id = ?")
		args = append(args, *f.UserID)
	}
	where, args = f.apply(where, args)
	return r.listDetails(ctx, where, args, f)
}

// apply appends the shared filter clauses (office, status, date window).
func (f ListFilter) apply(where []string, args []interface{}) ([]string, []interface{}) {
	if f.OfficeID != nil {
		where = append(where, "r.office_id = ?")
		args = append(args, *f.OfficeID)
	}
	if f.Status != nil {
		where = append(where, "r.status = ?")
		args = append(args, *f.Status)
	}
	if f.From != nil && f.To != nil {
		from := f.From.Format(dateLayout)
		to := f.To.Format(dateLayout)
		where = append(where,
			`((r.start_date BETWEEN ? AND ?) OR (r.end_date BETWEEN ? AND ?) OR (r.start_date < ? AND r.end_date > ?))`)
		args = append(args, from, to, from, to, from, to)
	}
	return where, args
}

func (r *ReservationRepo) listDetails(ctx context.Context, where []string, args []interface{}, f ListFilter) ([]ReservationDetail, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	perPage := f.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	q := `SELECT r.id, r.user_id, r.office_id, r.start_date, r.end_date, r.status, r.price, r.created_at,
	             o.id, o.user_id, o.title, o.address, o.price_per_day
	      FROM reservations r
	      JOIN offices o ON o.id = r.office_id
	      WHERE ` + strings.Join(where, " AND ") + `
	      ORDER BY r.created_at DESC, r.id DESC
	      LIMIT ? OFFSET ?`
	args = append(args, perPage, (page-1)*perPage)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		var startDate, endDate time.Time
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.OfficeID, &startDate, &endDate, &d.Status, &d.Price, &d.CreatedAt,
			&d.Office.ID, &d.Office.UserID, &d.Office.Title, &d.Office.Address, &d.Office.PricePerDay,
		); err != nil {
			return nil, err
		}
		d.StartDate = startDate.Format(dateLayout)
		d.EndDate = endDate.Format(dateLayout)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// DueReservation carries everything the due-notification job needs to
// notify both parties of a reservation starting today, without further
// database round trips.
type DueReservation struct {
	ReservationID uint64
	OfficeID      uint64
	OfficeTitle   string
	StartDate     time.Time
	VisitorID     uint64
	VisitorEmail  string
	HostID        uint64
	HostEmail     string
}

// ListStartingOn returns all ACTIVE reservations whose start_date equals
// the given calendar date, joined with visitor and host contact details.
func (r *ReservationRepo) ListStartingOn(ctx context.Context, day time.Time) ([]DueReservation, error) {
	const q = `SELECT r.id, r.office_id, o.title, r.start_date,
	                  v.id, v.email,
	                  h.id, h.email
	           FROM reservations r
	           JOIN offices o ON o.id = r.office_id
	           JOIN users v ON v.id = r.user_id
	           JOIN users h ON h.id = o.user_id
	           WHERE r.status = ? AND r.start_date = ?
	           ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q, model.StatusActive, day.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	due := make([]DueReservation, 0)
	for rows.Next() {
		var d DueReservation
		if err := rows.Scan(
			&d.ReservationID, &d.OfficeID, &d.OfficeTitle, &d.StartDate,
			&d.VisitorID, &d.VisitorEmail,
			&d.HostID, &d.HostEmail,
		); err != nil {
			return nil, err
		}
		due = append(due, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return due, nil
}

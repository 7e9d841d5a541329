package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/argodnc/office-rental/internal/model"
)

// OfficeRepo provides read access to office listings. Listing management
// (create/update/approval) lives outside this service; the booking engine
// only needs to look offices up and browse the approved ones.
type OfficeRepo struct {
	db *sql.DB
}

// NewOfficeRepo returns a new OfficeRepo bound to the given database.
func NewOfficeRepo(db *sql.DB) *OfficeRepo { return &OfficeRepo{db: db} }

const officeColumns = `id, user_id, title, address, price_per_day, monthly_discount, approval_status, hidden, created_at, updated_at`

// GetByID returns a single office or ErrOfficeNotFound.
func (r *OfficeRepo) GetByID(ctx context.Context, id uint64) (*model.Office, error) {
	const q = `SELECT ` + officeColumns + ` FROM offices WHERE id = ?`
	var o model.Office
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&o.ID, &o.UserID, &o.Title, &o.Address, &o.PricePerDay, &o.MonthlyDiscount,
		&o.ApprovalStatus, &o.Hidden, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOfficeNotFound
		}
		return nil, err
	}
	return &o, nil
}

// ListApproved returns approved, non-hidden offices ordered by id, with
// page/perPage pagination. Guests use this to browse the marketplace.
func (r *OfficeRepo) ListApproved(ctx context.Context, page, perPage int) ([]model.Office, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	const q = `SELECT ` + officeColumns + `
	           FROM offices
	           WHERE approval_status = ? AND hidden = FALSE
	           ORDER BY id
	           LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, model.ApprovalApproved, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	offices := make([]model.Office, 0)
	for rows.Next() {
		var o model.Office
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Title, &o.Address, &o.PricePerDay, &o.MonthlyDiscount,
			&o.ApprovalStatus, &o.Hidden, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		offices = append(offices, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return offices, nil
}

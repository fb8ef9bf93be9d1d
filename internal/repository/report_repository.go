package repository

import (
	"context"
	"database/sql"

	"github.com/railwatch/train-issue-service/internal/model"
)

// ReportRepo provides CRUD operations for issue reports. Reports reference
// their reporting user by id without a cascading foreign key; admin
// listings join the users table at read time to enrich each row with the
// reporter's name and email.
type ReportRepo struct{ DB *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{DB: db} }

// ReportWithReporter is a report row joined with reporter contact info.
// Reporter fields are nullable: a report whose user was deleted keeps a
// dangling user_id and the join yields NULLs.
type ReportWithReporter struct {
	model.Report
	ReporterName  *string
	ReporterEmail *string
}

const reportColumns = "id,train_name,train_number,coach_number,issue,time,location,train_details,status,user_id,created_at,updated_at"

// Create inserts a report with status 'Pending' and returns the stored row.
func (r *ReportRepo) Create(ctx context.Context, rep *model.Report) (model.Report, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reports (train_name,train_number,coach_number,issue,time,location,train_details,status,user_id) VALUES (?,?,?,?,?,?,?,?,?)",
		rep.TrainName, rep.TrainNumber, rep.CoachNumber, rep.Issue, rep.Time, rep.Location,
		rep.TrainDetails, model.StatusPending, rep.UserID)
	if err != nil {
		return model.Report{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Report{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a single report.
func (r *ReportRepo) GetByID(ctx context.Context, id uint64) (model.Report, error) {
	var rep model.Report
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE id=? LIMIT 1", id).
		Scan(&rep.ID, &rep.TrainName, &rep.TrainNumber, &rep.CoachNumber, &rep.Issue,
			&rep.Time, &rep.Location, &rep.TrainDetails, &rep.Status, &rep.UserID,
			&rep.CreatedAt, &rep.UpdatedAt)
	return rep, err
}

// ListAll returns every report joined with its reporter's name and email,
// newest first.
func (r *ReportRepo) ListAll(ctx context.Context) ([]ReportWithReporter, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id,r.train_name,r.train_number,r.coach_number,r.issue,r.time,r.location,
		        r.train_details,r.status,r.user_id,r.created_at,r.updated_at,
		        u.name,u.email
		   FROM reports r
		   LEFT JOIN users u ON u.id = r.user_id
		  ORDER BY r.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReportWithReporter, 0)
	for rows.Next() {
		var rep ReportWithReporter
		if err := rows.Scan(&rep.ID, &rep.TrainName, &rep.TrainNumber, &rep.CoachNumber,
			&rep.Issue, &rep.Time, &rep.Location, &rep.TrainDetails, &rep.Status,
			&rep.UserID, &rep.CreatedAt, &rep.UpdatedAt,
			&rep.ReporterName, &rep.ReporterEmail); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// ListByUser returns all reports owned by the given user, newest first.
func (r *ReportRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Report, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE user_id=? ORDER BY id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Report, 0)
	for rows.Next() {
		var rep model.Report
		if err := rows.Scan(&rep.ID, &rep.TrainName, &rep.TrainNumber, &rep.CoachNumber,
			&rep.Issue, &rep.Time, &rep.Location, &rep.TrainDetails, &rep.Status,
			&rep.UserID, &rep.CreatedAt, &rep.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// UpdateStatus overwrites a report's status unconditionally with the
// supplied value and returns the updated row. No closed set of statuses
// is enforced. Returns sql.ErrNoRows when the id does not exist.
func (r *ReportRepo) UpdateStatus(ctx context.Context, id uint64, status string) (model.Report, error) {
	// RowsAffected is zero both for a missing row and for a no-op update
	// to the same status, so existence is checked with a read instead.
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Report{}, err
	}
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE reports SET status=? WHERE id=?", status, id); err != nil {
		return model.Report{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a report permanently and returns the removed row.
// Returns sql.ErrNoRows when the id does not exist.
func (r *ReportRepo) Delete(ctx context.Context, id uint64) (model.Report, error) {
	rep, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Report{}, err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM reports WHERE id=?", id); err != nil {
		return model.Report{}, err
	}
	return rep, nil
}

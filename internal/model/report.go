package model

import "time"

// StatusPending is the status assigned to every newly submitted report.
// Admins may overwrite it with any string; the original product never
// fixed a closed set of statuses, so none is enforced here either.
const StatusPending = "Pending"

// Report represents a user-submitted issue tied to a specific train and
// coach, mirroring the `reports` table. TrainDetails is the only optional
// field. UserID references users.id without a cascading foreign key:
// deleting a user leaves their reports behind with a dangling reference.
type Report struct {
	ID           uint64    // reports.id
	TrainName    string    // reports.train_name
	TrainNumber  string    // reports.train_number
	CoachNumber  string    // reports.coach_number
	Issue        string    // reports.issue
	Time         string    // reports.time (free-form, as submitted)
	Location     string    // reports.location
	TrainDetails *string   // reports.train_details (nullable)
	Status       string    // reports.status
	UserID       uint64    // reports.user_id
	CreatedAt    time.Time // reports.created_at
	UpdatedAt    time.Time // reports.updated_at
}

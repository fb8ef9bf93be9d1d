package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/railwatch/train-issue-service/internal/model"
)

// fakeDB implements just enough of the database/sql driver interfaces to
// exercise the repositories without a MySQL server. It understands the
// exact statements the repositories issue against the reports table and
// can be primed with execErr to make every write fail, which is how the
// duplicate-key path is driven.
type fakeDB struct {
	mu      sync.Mutex
	nextID  uint64
	reports map[uint64]model.Report
	execErr error // returned by every ExecContext when set
}

func newFakeDB() (*fakeDB, *sql.DB) {
	f := &fakeDB{reports: map[uint64]model.Report{}}
	return f, sql.OpenDB(fakeConnector{db: f})
}

type fakeConnector struct{ db *fakeDB }

func (c fakeConnector) Connect(context.Context) (driver.Conn, error) {
	return &fakeConn{db: c.db}, nil
}
func (c fakeConnector) Driver() driver.Driver { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) { return nil, errors.New("use sql.OpenDB") }

type fakeConn struct{ db *fakeDB }

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare unsupported")
}
func (c *fakeConn) Close() error              { return nil }
func (c *fakeConn) Begin() (driver.Tx, error) { return nil, errors.New("tx unsupported") }

var fakeNow = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

func (c *fakeConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	switch {
	case strings.Contains(query, "FROM reports WHERE id=?"):
		id := uint64(args[0].Value.(int64))
		if rep, ok := c.db.reports[id]; ok {
			return &fakeRows{data: [][]driver.Value{reportRow(rep)}}, nil
		}
		return &fakeRows{}, nil
	case strings.Contains(query, "FROM reports WHERE user_id=?"):
		userID := uint64(args[0].Value.(int64))
		var reps []model.Report
		for _, rep := range c.db.reports {
			if rep.UserID == userID {
				reps = append(reps, rep)
			}
		}
		sort.Slice(reps, func(i, j int) bool { return reps[i].ID > reps[j].ID })
		rows := &fakeRows{}
		for _, rep := range reps {
			rows.data = append(rows.data, reportRow(rep))
		}
		return rows, nil
	}
	return nil, errors.New("fakeDB: unsupported query: " + query)
}

func (c *fakeConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	if c.db.execErr != nil {
		return nil, c.db.execErr
	}
	switch {
	case strings.HasPrefix(query, "INSERT INTO reports"):
		c.db.nextID++
		rep := model.Report{
			ID:          c.db.nextID,
			TrainName:   args[0].Value.(string),
			TrainNumber: args[1].Value.(string),
			CoachNumber: args[2].Value.(string),
			Issue:       args[3].Value.(string),
			Time:        args[4].Value.(string),
			Location:    args[5].Value.(string),
			Status:      args[7].Value.(string),
			UserID:      uint64(args[8].Value.(int64)),
			CreatedAt:   fakeNow,
			UpdatedAt:   fakeNow,
		}
		if d, ok := args[6].Value.(string); ok {
			rep.TrainDetails = &d
		}
		c.db.reports[rep.ID] = rep
		return fakeResult{lastID: int64(rep.ID), rows: 1}, nil
	case strings.HasPrefix(query, "UPDATE reports SET status=?"):
		id := uint64(args[1].Value.(int64))
		rep, ok := c.db.reports[id]
		if !ok {
			return fakeResult{}, nil
		}
		rep.Status = args[0].Value.(string)
		rep.UpdatedAt = fakeNow.Add(time.Minute)
		c.db.reports[id] = rep
		return fakeResult{rows: 1}, nil
	case strings.HasPrefix(query, "DELETE FROM reports"):
		id := uint64(args[0].Value.(int64))
		if _, ok := c.db.reports[id]; !ok {
			return fakeResult{}, nil
		}
		delete(c.db.reports, id)
		return fakeResult{rows: 1}, nil
	case strings.HasPrefix(query, "INSERT INTO users"):
		c.db.nextID++
		return fakeResult{lastID: int64(c.db.nextID), rows: 1}, nil
	case strings.HasPrefix(query, "DELETE FROM users"):
		return fakeResult{}, nil
	}
	return nil, errors.New("fakeDB: unsupported exec: " + query)
}

func reportRow(r model.Report) []driver.Value {
	var details driver.Value
	if r.TrainDetails != nil {
		details = *r.TrainDetails
	}
	return []driver.Value{
		int64(r.ID), r.TrainName, r.TrainNumber, r.CoachNumber, r.Issue,
		r.Time, r.Location, details, r.Status, int64(r.UserID),
		r.CreatedAt, r.UpdatedAt,
	}
}

type fakeRows struct {
	data [][]driver.Value
	i    int
}

func (r *fakeRows) Columns() []string {
	return []string{"id", "train_name", "train_number", "coach_number", "issue",
		"time", "location", "train_details", "status", "user_id", "created_at", "updated_at"}
}
func (r *fakeRows) Close() error { return nil }
func (r *fakeRows) Next(dest []driver.Value) error {
	if r.i >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.i])
	r.i++
	return nil
}

type fakeResult struct {
	lastID int64
	rows   int64
}

func (r fakeResult) LastInsertId() (int64, error) { return r.lastID, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

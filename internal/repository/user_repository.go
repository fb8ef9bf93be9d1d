package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/railwatch/train-issue-service/internal/model"
)

// UserRepo provides access to the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// UserSummary is the admin-facing projection of a user: contact details
// only, never the password hash.
type UserSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Create inserts a user with role 'user' and returns its ID. The email is
// expected to be lowercase-normalized by the caller and the password
// already hashed. Duplicate collisions on the unique keys are mapped to
// ErrEmailExists / ErrPhoneExists; the MySQL 1062 message names the
// violated key, which is how the two are told apart.
func (r *UserRepo) Create(ctx context.Context, name, email, phone, passwordHash string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, phone, password_hash, role) VALUES (?,?,?,?,?)",
		name, email, phone, passwordHash, model.RoleUser)
	if err != nil {
		return 0, mapDuplicateKey(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// mapDuplicateKey translates a MySQL 1062 duplicate-key error into the
// matching sentinel. The 1062 message names the violated key ("... for
// key 'users.phone'"), which is how an email collision is told apart from
// a phone one. Any other error passes through unchanged.
func mapDuplicateKey(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return err
	}
	if strings.Contains(msg, "phone") {
		return ErrPhoneExists
	}
	return ErrEmailExists
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,phone,password_hash,role,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// ExistsByEmail reports whether any user has the given email. Used as the
// signup pre-check; the unique key is the real guard under concurrency.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE email=? LIMIT 1", email).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// ExistsByPhone reports whether any user has the given phone number.
func (r *UserRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE phone=? LIMIT 1", phone).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// ListAll returns contact summaries for every user, newest first.
func (r *UserRepo) ListAll(ctx context.Context) ([]UserSummary, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,email,phone FROM users ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserSummary, 0)
	for rows.Next() {
		var u UserSummary
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Delete removes a user permanently. Returns sql.ErrNoRows when no row
// matched. Reports referencing the user are left behind untouched.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

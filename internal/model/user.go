package model

import "time"

// Role values stored in users.role. The column is a MySQL enum so a typo
// can never silently create a third role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application user record as stored in the `users`
// table. The password is kept only as a bcrypt hash; plaintext never
// reaches the repository layer. Email and phone each carry a unique key
// in the schema, which is the real backstop against concurrent duplicate
// signups (the handler pre-checks are advisory).
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Phone        – unique phone number.
//  Email        – unique, lowercase-normalized email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – "user" or "admin".
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Phone        string    // users.phone
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a signup password for the users.password_hash
// column. The cost comes from BCRYPT_COST; anything below bcrypt's minimum
// falls back to the library default.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether the signin password matches the stored
// hash. All failure modes, including a malformed hash, read as a mismatch.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

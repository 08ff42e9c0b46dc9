package service

import "golang.org/x/crypto/bcrypt"

// passwordCost is the bcrypt work factor applied to every new hash.
const passwordCost = bcrypt.DefaultCost

// HashPassword produces a salted bcrypt digest of plain. Each call salts
// independently, so hashing the same password twice yields different digests.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash using a
// constant-time compare. A malformed hash fails the check, it never panics.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

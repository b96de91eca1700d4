package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt digest. The salt is generated per
// call and embedded in the output, so no separate salt storage exists.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash. A malformed
// stored hash yields false, never an error past this boundary.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

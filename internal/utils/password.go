package utils

import "golang.org/x/crypto/bcrypt"

// HashSecret returns the bcrypt hash of the admin secret. A cost outside
// bcrypt's accepted range (for example an unset BCRYPT_COST) falls back to
// bcrypt.DefaultCost instead of failing startup.
func HashSecret(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifySecret reports whether plain matches the stored hash. The comparison
// runs in constant time; an empty or malformed hash never matches.
func VerifySecret(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

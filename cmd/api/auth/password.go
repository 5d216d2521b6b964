package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword 는 bcrypt 해시를 만든다. cost 가 범위를 벗어나면 bcrypt.DefaultCost 를 쓴다.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

package utils

import "golang.org/x/crypto/bcrypt"

// Bcrypt 口令摘要（Cost 为 0 时用默认值）
type Bcrypt struct{ Cost int }

func (b Bcrypt) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b Bcrypt) Verify(hashed, pw string) bool { return CheckPassword(pw, hashed) }

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

package impl

import "golang.org/x/crypto/bcrypt"

// PasswordServiceBcrypt hashes with bcrypt at cost 10. The cost is embedded
// in the hash, so verification needs no stored parameters.
type PasswordServiceBcrypt struct {
	cost int
}

func NewPasswordServiceBcrypt() *PasswordServiceBcrypt {
	return &PasswordServiceBcrypt{cost: 10}
}

const minPasswordLen = 8

func (p *PasswordServiceBcrypt) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) < minPasswordLen {
		return "", ErrPasswordLen
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (p *PasswordServiceBcrypt) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

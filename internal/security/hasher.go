package security

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexedwards/argon2id"
	"golang.org/x/crypto/bcrypt"
)

var ErrUnknownHashFormat = errors.New("unknown password hash format")

type Hasher interface {
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. A mismatch is not an error.
	Verify(password, hash string) (bool, error)
}

type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
	return true, nil
}

type Argon2idHasher struct {
	Params *argon2id.Params
}

func NewArgon2idHasher() Argon2idHasher {
	return Argon2idHasher{Params: argon2id.DefaultParams}
}

func (h Argon2idHasher) Hash(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, h.Params)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

func (Argon2idHasher) Verify(password, hash string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
	return match, nil
}

// MultiHasher hashes with Primary and verifies with whichever algorithm
// produced the stored hash, so switching algorithms keeps old accounts valid.
type MultiHasher struct {
	Primary  Hasher
	Bcrypt   BcryptHasher
	Argon2id Argon2idHasher
}

func NewMultiHasher(primary Hasher, bcryptCost int) MultiHasher {
	return MultiHasher{
		Primary:  primary,
		Bcrypt:   NewBcryptHasher(bcryptCost),
		Argon2id: NewArgon2idHasher(),
	}
}

func (h MultiHasher) Hash(password string) (string, error) {
	return h.Primary.Hash(password)
}

func (h MultiHasher) Verify(password, hash string) (bool, error) {
	switch {
	case strings.HasPrefix(hash, "$argon2id$"):
		return h.Argon2id.Verify(password, hash)
	case strings.HasPrefix(hash, "$2a$"),
		strings.HasPrefix(hash, "$2b$"),
		strings.HasPrefix(hash, "$2y$"):
		return h.Bcrypt.Verify(password, hash)
	default:
		return false, ErrUnknownHashFormat
	}
}

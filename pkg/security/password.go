package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sportshub-india/sportshub-backend/pkg/config"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	argonPrefix  = "$argon2id$"
	argonVersion = "v=19"

	// maxVerifyMemoryKB bounds the memory a stored hash may ask for during verification.
	maxVerifyMemoryKB = 512 * 1024
)

// bcrypt hashes are what the previous Node.js backend stored.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// ErrInvalidHash signals a malformed Argon2id hash string.
var ErrInvalidHash = errors.New("invalid argon2id hash")

// Verification is the outcome of comparing a plaintext secret with a stored hash.
type Verification int

const (
	Mismatch Verification = iota
	Match
	// Malformed means the stored value is not a hash this package understands.
	Malformed
)

// OK reports whether the secret matched. Malformed hashes never match.
func (v Verification) OK() bool {
	return v == Match
}

func (v Verification) String() string {
	switch v {
	case Match:
		return "match"
	case Malformed:
		return "malformed"
	default:
		return "mismatch"
	}
}

// ArgonParams captures the Argon2id parameters we embed into each hash string.
type ArgonParams struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

// HashPassword returns a formatted Argon2id hash for the provided password.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	params := paramsFromConfig(cfg)
	salt := make([]byte, params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Parallelism, params.KeyLen)

	encSalt := base64.RawStdEncoding.EncodeToString(salt)
	encHash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("%s%s$m=%d,t=%d,p=%d$%s$%s", argonPrefix, argonVersion, params.Memory, params.Time, params.Parallelism, encSalt, encHash), nil
}

// VerifyPassword compares password against an argon2id or bcrypt hash.
// Anything else, including legacy plaintext, yields Malformed.
func VerifyPassword(password, encoded string) Verification {
	if isBcrypt(encoded) {
		return verifyBcrypt(password, encoded)
	}

	params, salt, hash, err := decodeHash(encoded)
	if err != nil {
		return Malformed
	}

	computed := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Parallelism, params.KeyLen)

	if subtle.ConstantTimeCompare(hash, computed) == 1 {
		return Match
	}
	return Mismatch
}

// LooksHashed reports whether value carries one of the recognised hash prefixes.
func LooksHashed(value string) bool {
	return strings.HasPrefix(value, argonPrefix) || isBcrypt(value)
}

// NeedsRehash reports whether a stored hash should be upgraded to argon2id.
func NeedsRehash(encoded string) bool {
	return isBcrypt(encoded)
}

func isBcrypt(value string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

func verifyBcrypt(password, encoded string) Verification {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return Match
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return Mismatch
	default:
		return Malformed
	}
}

func paramsFromConfig(cfg config.PasswordConfig) ArgonParams {
	threads := clampInt(cfg.ArgonParallelism, 1, 255)
	return ArgonParams{
		Memory:      clampUint32(cfg.ArgonMemoryKB, 8, maxVerifyMemoryKB),
		Time:        clampUint32(cfg.ArgonTime, 1, 10),
		Parallelism: uint8(threads),
		SaltLen:     clampUint32(cfg.ArgonSaltLen, 8, 64),
		KeyLen:      clampUint32(cfg.ArgonKeyLen, 16, 64),
	}
}

func decodeHash(encoded string) (ArgonParams, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != argonVersion {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}

	var params ArgonParams
	for _, token := range strings.Split(parts[3], ",") {
		keyValue := strings.SplitN(token, "=", 2)
		if len(keyValue) != 2 {
			return ArgonParams{}, nil, nil, ErrInvalidHash
		}
		key, value := keyValue[0], keyValue[1]
		switch key {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return ArgonParams{}, nil, nil, ErrInvalidHash
			}
			params.Memory = uint32(v)
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return ArgonParams{}, nil, nil, ErrInvalidHash
			}
			params.Time = uint32(v)
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil {
				return ArgonParams{}, nil, nil, ErrInvalidHash
			}
			params.Parallelism = uint8(v)
		}
	}
	// argon2.IDKey panics on zero rounds or threads.
	if params.Time == 0 || params.Parallelism == 0 || params.Memory == 0 || params.Memory > maxVerifyMemoryKB {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return ArgonParams{}, nil, nil, ErrInvalidHash
	}

	params.SaltLen = uint32(len(salt))
	params.KeyLen = uint32(len(hash))

	return params, salt, hash, nil
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampUint32(value, min, max int) uint32 {
	return uint32(clampInt(value, min, max))
}

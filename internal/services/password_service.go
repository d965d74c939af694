package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost balances hashing time against brute-force resistance.
const DefaultBcryptCost = 12

// argon2id parameters used when bcrypt is unavailable.
const (
	argonMemory  = 64 * 1024
	argonTime    = 1
	argonThreads = 4
	argonSaltLen = 16
	argonKeyLen  = 32
)

type HashScheme string

const (
	SchemeBcrypt   HashScheme = "bcrypt"
	SchemeArgon2id HashScheme = "argon2id"
)

// PasswordHasher hashes and verifies passwords. The active scheme is resolved
// once at construction; Verify dispatches on the stored hash's own format, so
// hashes produced under either scheme keep verifying after a scheme switch.
type PasswordHasher struct {
	scheme     HashScheme
	bcryptCost int
}

// NewPasswordHasher probes bcrypt and falls back to argon2id if the probe
// fails. The probe failure is the only error swallowed at startup.
func NewPasswordHasher() *PasswordHasher {
	h := &PasswordHasher{scheme: SchemeBcrypt, bcryptCost: DefaultBcryptCost}
	if _, err := bcrypt.GenerateFromPassword([]byte("probe"), h.bcryptCost); err != nil {
		log.Printf("WARNING: bcrypt unavailable (%v), falling back to argon2id", err)
		h.scheme = SchemeArgon2id
	}
	return h
}

// Scheme returns the scheme new hashes are produced with.
func (h *PasswordHasher) Scheme() HashScheme {
	return h.scheme
}

// Hash generates a salted hash of password under the active scheme.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if h.scheme == SchemeArgon2id {
		return h.hashArgon2id(password)
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether password matches hash. Malformed hashes verify as
// false rather than erroring.
func (h *PasswordHasher) Verify(password, hash string) bool {
	switch {
	case strings.HasPrefix(hash, "$argon2id$"):
		return h.verifyArgon2id(password, hash)
	case strings.HasPrefix(hash, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	default:
		return false
	}
}

func (h *PasswordHasher) hashArgon2id(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

func (h *PasswordHasher) verifyArgon2id(password, hash string) bool {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	// argon2.IDKey panics on zero rounds or zero parallelism; a hash carrying
	// such parameters is malformed, not a verification candidate.
	if time < 1 || threads < 1 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

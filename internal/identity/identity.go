// Package identity manages long-term handshake identities: Ed25519 keypairs
// generated once and persisted to disk.
package identity

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scuttlenet/secrethandshake/internal/crypto"
)

const (
	// keyFileName is the name of the file storing the secret key.
	keyFileName = "identity_key"
)

var (
	// ErrInvalidPublicKey is returned when a public key string does not
	// decode to 32 bytes of hex.
	ErrInvalidPublicKey = errors.New("identity: invalid public key")

	// ErrNotFound is returned when no identity exists in a data directory.
	ErrNotFound = errors.New("identity: no identity found")
)

// Identity is a long-term Ed25519 keypair. The secret key embeds the public
// key in its trailing 32 bytes, the standard Ed25519 layout.
type Identity struct {
	Public [crypto.SignPublicKeySize]byte
	Secret [crypto.SignSecretKeySize]byte
}

// Generate creates a fresh identity from the system's entropy source.
func Generate() (*Identity, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("identity: generate: %w", err)
	}
	id := &Identity{}
	copy(id.Public[:], pub)
	copy(id.Secret[:], priv)
	return id, nil
}

// FromSeed derives an identity from a 32-byte seed. Useful for deterministic
// test identities.
func FromSeed(seed [32]byte) *Identity {
	priv := ed25519.NewKeyFromSeed(seed[:])
	id := &Identity{}
	copy(id.Secret[:], priv)
	copy(id.Public[:], priv[32:])
	return id
}

// ParsePublic decodes a peer's public key from its hex representation.
func ParsePublic(s string) ([crypto.SignPublicKeySize]byte, error) {
	var pk [crypto.SignPublicKeySize]byte
	s = strings.TrimSpace(s)
	raw, err := hex.DecodeString(s)
	if err != nil {
		return pk, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	if len(raw) != crypto.SignPublicKeySize {
		return pk, fmt.Errorf("%w: got %d bytes, expected %d", ErrInvalidPublicKey, len(raw), crypto.SignPublicKeySize)
	}
	copy(pk[:], raw)
	return pk, nil
}

// PublicHex returns the hex representation of the public key, the form peers
// exchange out of band.
func (id *Identity) PublicHex() string {
	return hex.EncodeToString(id.Public[:])
}

// Zero overwrites the secret key.
func (id *Identity) Zero() {
	crypto.Wipe(id.Secret[:])
}

// Store persists the identity to the data directory. The secret key is
// written atomically with owner-only permissions.
func (id *Identity) Store(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("identity: create data directory: %w", err)
	}

	path := filepath.Join(dataDir, keyFileName)
	tempPath := path + ".tmp"
	content := hex.EncodeToString(id.Secret[:]) + "\n"
	if err := os.WriteFile(tempPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("identity: write key: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("identity: persist key: %w", err)
	}
	return nil
}

// Load reads an identity from the data directory, taking the public key from
// the trailing 32 bytes of the stored secret key.
func Load(dataDir string) (*Identity, error) {
	path := filepath.Join(dataDir, keyFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrNotFound, dataDir)
		}
		return nil, fmt.Errorf("identity: read key: %w", err)
	}

	raw, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("identity: decode key: %w", err)
	}
	if len(raw) != crypto.SignSecretKeySize {
		return nil, fmt.Errorf("identity: key is %d bytes, expected %d", len(raw), crypto.SignSecretKeySize)
	}

	id := &Identity{}
	copy(id.Secret[:], raw)
	copy(id.Public[:], raw[32:])
	crypto.Wipe(raw)
	return id, nil
}

// LoadOrCreate loads the identity from the data directory, generating and
// persisting a new one if none exists. The second return value reports
// whether a new identity was created.
func LoadOrCreate(dataDir string) (*Identity, bool, error) {
	id, err := Load(dataDir)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	id, err = Generate()
	if err != nil {
		return nil, false, err
	}
	if err := id.Store(dataDir); err != nil {
		return nil, false, err
	}
	return id, true, nil
}

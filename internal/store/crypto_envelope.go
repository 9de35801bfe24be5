package store

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"fireplace/internal/crypto"
	"fireplace/internal/domain"
)

const (
	// The current supported version of the encrypted blob format stored on disk.
	envelopeFormatVersion = 1
	saltBytes             = 16
)

// blob is the on-disk JSON structure holding the ciphertext and KDF parameters.
type blob struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// scryptParams are the cost parameters used when sealing a new blob.
type scryptParams struct {
	N, R, P int
}

// Tunables for scrypt key derivation.
func scryptParamsDefault() scryptParams { return scryptParams{N: 1 << 15, R: 8, P: 1} }

// seal derives a key from passphrase and seals raw into a JSON blob.
func seal(passphrase []byte, raw []byte, p scryptParams) ([]byte, error) {
	var salt [saltBytes]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key(passphrase, salt[:], p.N, p.R, p.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer crypto.Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; the salt-bound key is fresh per seal
	ct := aead.Seal(nil, nonce[:], raw, salt[:])

	return json.Marshal(blob{
		V:      envelopeFormatVersion,
		Salt:   salt[:],
		N:      p.N,
		R:      p.R,
		P:      p.P,
		Cipher: ct,
	})
}

// open decrypts a blob produced by seal. A blob that does not parse is
// ErrInvalidData; a blob that fails authentication is ErrAccessDenied, since
// a wrong passphrase and a tampered file cannot be told apart.
func open(passphrase []byte, b []byte) ([]byte, error) {
	var bl blob
	if err := json.Unmarshal(b, &bl); err != nil {
		return nil, fmt.Errorf("%w: secrets file: %v", domain.ErrInvalidData, err)
	}
	if bl.V < 1 || bl.V > envelopeFormatVersion {
		return nil, fmt.Errorf("%w: unsupported secrets file version %d", domain.ErrInvalidData, bl.V)
	}
	if len(bl.Salt) != saltBytes {
		return nil, fmt.Errorf("%w: secrets file salt is %d bytes", domain.ErrInvalidData, len(bl.Salt))
	}

	key, err := scrypt.Key(passphrase, bl.Salt, bl.N, bl.R, bl.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("%w: secrets file kdf: %v", domain.ErrInvalidData, err)
	}
	defer crypto.Wipe(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], bl.Cipher, bl.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: wrong passphrase or corrupted secrets file", domain.ErrAccessDenied)
	}
	return pt, nil
}

package keys

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

const (
	sealedPrefix = "sealed:"
	saltSize     = 16
	nonceSize    = 24

	// DefaultScryptLogN is the scrypt cost exponent used when
	// KeyStore.ScryptLogN is zero.
	DefaultScryptLogN = 15
	scryptR           = 8
	scryptP           = 1
)

var errWrongPassphrase = errors.New("sealed seed: wrong passphrase or corrupted file")

func sealKey(passphrase, salt []byte, logN uint8) (*[32]byte, error) {
	k, err := scrypt.Key(passphrase, salt, 1<<logN, scryptR, scryptP, 32)
	if err != nil {
		return nil, fmt.Errorf("derive sealing key: %w", err)
	}
	var key [32]byte
	copy(key[:], k)
	return &key, nil
}

// sealSeed encrypts seed under passphrase. The result is
// "sealed:" + hex(logN || salt || nonce || secretbox).
func sealSeed(seed, passphrase []byte, logN uint8, random io.Reader) (string, error) {
	if random == nil {
		random = rand.Reader
	}
	var salt [saltSize]byte
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(random, salt[:]); err != nil {
		return "", err
	}
	if _, err := io.ReadFull(random, nonce[:]); err != nil {
		return "", err
	}
	key, err := sealKey(passphrase, salt[:], logN)
	if err != nil {
		return "", err
	}
	out := make([]byte, 0, 1+saltSize+nonceSize+len(seed)+secretbox.Overhead)
	out = append(out, logN)
	out = append(out, salt[:]...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, seed, &nonce, key)
	return sealedPrefix + hex.EncodeToString(out), nil
}

func isSealed(content string) bool {
	return strings.HasPrefix(content, sealedPrefix)
}

func openSeed(content string, passphrase []byte) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(content, sealedPrefix))
	if err != nil {
		return nil, fmt.Errorf("sealed seed: %w", err)
	}
	if len(raw) < 1+saltSize+nonceSize+secretbox.Overhead {
		return nil, errors.New("sealed seed: truncated")
	}
	logN, raw := raw[0], raw[1:]
	if logN == 0 || logN > 30 {
		return nil, fmt.Errorf("sealed seed: invalid scrypt cost %d", logN)
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[saltSize:saltSize+nonceSize])
	key, err := sealKey(passphrase, raw[:saltSize], logN)
	if err != nil {
		return nil, err
	}
	seed, ok := secretbox.Open(nil, raw[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return nil, errWrongPassphrase
	}
	if len(seed) != SeedSize {
		return nil, sdkerr.Newf(sdkerr.KindKeyFormat, sdkerr.RuleKeyLength, "sealed seed: expected %d bytes, got %d", SeedSize, len(seed))
	}
	return seed, nil
}

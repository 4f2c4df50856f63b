package keys

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

// KeyStore keeps Ed25519 seeds on the local filesystem, one file per key.
//
// EXPERIMENTAL: this filesystem-backed storage surface is not part of the
// stable hashing and signing API and may change in MINOR releases.
//
// Layout under Directory:
//
//	<identifier>/root.key
//	<identifier>/roles/<role>.key
//
// Seeds are written as hex. When Passphrase is set, new files are sealed with
// scrypt and secretbox instead, and sealed files require the passphrase to
// load. Role keys are derived deterministically from the root seed with
// DeriveRoleSeed.
type KeyStore struct {
	Directory  string
	Passphrase []byte
	// ScryptLogN is the scrypt cost exponent for newly sealed files.
	ScryptLogN uint8
	// Rand supplies salts and nonces. Nil means crypto/rand.
	Rand io.Reader
}

type KeyEntry struct {
	Identifier string
	Roles      []string
}

const keyFileExt = ".key"

func GetDefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".accumulate", "keys"), nil
}

// CreateKeyStore returns a store rooted at directory, or at
// GetDefaultDirectory when directory is empty. Nothing is created on disk
// until a key is written.
func CreateKeyStore(directory string) (*KeyStore, error) {
	if directory != "" {
		return &KeyStore{Directory: directory}, nil
	}
	dir, err := GetDefaultDirectory()
	if err != nil {
		return nil, err
	}
	return &KeyStore{Directory: dir}, nil
}

func checkName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}
	if i := strings.IndexFunc(name, func(r rune) bool { return !isNameRune(r) }); i >= 0 {
		return fmt.Errorf("invalid character %q in %s", []rune(name[i:])[0], kind)
	}
	return nil
}

func isNameRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_'
}

func CheckKeyName(identifier string) error { return checkName("identifier", identifier) }

func CheckRole(role string) error { return checkName("role", role) }

// keyRef names one stored key: the root key of an identifier when role is
// empty, otherwise one of its role keys.
type keyRef struct {
	identifier string
	role       string
}

func (r keyRef) check() error {
	if err := CheckKeyName(r.identifier); err != nil {
		return err
	}
	if r.role == "" {
		return nil
	}
	return CheckRole(r.role)
}

func (r keyRef) path(dir string) string {
	if r.role == "" {
		return filepath.Join(dir, r.identifier, "root"+keyFileExt)
	}
	return filepath.Join(dir, r.identifier, "roles", r.role+keyFileExt)
}

// ParseSeedHex decodes a 32-byte seed from hex. A leading "0x" is accepted.
func ParseSeedHex(seedHex string) ([]byte, error) {
	data, err := decodeHex(seedHex)
	if err != nil {
		return nil, err
	}
	if len(data) != SeedSize {
		return nil, sdkerr.Newf(sdkerr.KindKeyFormat, sdkerr.RuleKeyLength, "expected seed length of %d bytes, got %d", SeedSize, len(data))
	}
	return data, nil
}

func (ks *KeyStore) encodeSeed(seed []byte) (string, error) {
	if len(ks.Passphrase) == 0 {
		return hex.EncodeToString(seed), nil
	}
	logN := ks.ScryptLogN
	if logN == 0 {
		logN = DefaultScryptLogN
	}
	return sealSeed(seed, ks.Passphrase, logN, ks.Rand)
}

func (ks *KeyStore) decodeSeed(filePath, content string) ([]byte, error) {
	if !isSealed(content) {
		return ParseSeedHex(content)
	}
	if len(ks.Passphrase) == 0 {
		return nil, fmt.Errorf("%s is sealed: passphrase required", filePath)
	}
	return openSeed(content, ks.Passphrase)
}

// store writes seed for ref. An existing key file is replaced only when
// overwrite is set.
func (ks *KeyStore) store(ref keyRef, seed []byte, overwrite bool) (string, error) {
	if len(seed) != SeedSize {
		return "", sdkerr.Newf(sdkerr.KindKeyFormat, sdkerr.RuleKeyLength, "expected seed length of %d bytes, got %d", SeedSize, len(seed))
	}
	content, err := ks.encodeSeed(seed)
	if err != nil {
		return "", err
	}
	filePath := ref.path(ks.Directory)
	if err := os.MkdirAll(filepath.Dir(filePath), 0o700); err != nil {
		return "", err
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(filePath, flags, 0o600)
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(content + "\n"); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return "", err
	}
	return filePath, f.Close()
}

func (ks *KeyStore) readSeedFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ks.decodeSeed(filePath, strings.TrimSpace(string(data)))
}

func (ks *KeyStore) load(ref keyRef) ([]byte, error) {
	if err := ref.check(); err != nil {
		return nil, err
	}
	return ks.readSeedFile(ref.path(ks.Directory))
}

// InitializeRootKey stores seed as the root key of identifier and returns its
// lite identity URL.
func (ks *KeyStore) InitializeRootKey(identifier string, seed []byte, overwrite bool) (liteURL string, filePath string, err error) {
	ref := keyRef{identifier: identifier}
	if err := ref.check(); err != nil {
		return "", "", err
	}
	kp, err := FromSeedOrKey(seed)
	if err != nil {
		return "", "", err
	}
	if filePath, err = ks.store(ref, seed, overwrite); err != nil {
		return "", "", err
	}
	return kp.LiteIdentityURL(), filePath, nil
}

// DeriveKeyFromRole derives and stores the role key of from and returns its
// lite identity URL.
func (ks *KeyStore) DeriveKeyFromRole(from, role string, overwrite bool) (liteURL string, filePath string, err error) {
	ref := keyRef{identifier: from, role: role}
	if err := ref.check(); err != nil {
		return "", "", err
	}
	rootSeed, err := ks.load(keyRef{identifier: from})
	if err != nil {
		return "", "", err
	}
	roleSeed, err := DeriveRoleSeed(rootSeed, role)
	if err != nil {
		return "", "", err
	}
	if filePath, err = ks.store(ref, roleSeed, overwrite); err != nil {
		return "", "", err
	}
	return fromSeed(roleSeed).LiteIdentityURL(), filePath, nil
}

// LoadKeyPair loads the root key of identifier, or its role key when role is
// non-empty.
func (ks *KeyStore) LoadKeyPair(identifier, role string) (*KeyPair, error) {
	seed, err := ks.load(keyRef{identifier: identifier, role: role})
	if err != nil {
		return nil, err
	}
	return fromSeed(seed), nil
}

// ExportPublicKey returns the hex public key of a stored key.
func (ks *KeyStore) ExportPublicKey(identifier, role string) (string, error) {
	kp, err := ks.LoadKeyPair(identifier, role)
	if err != nil {
		return "", err
	}
	return kp.PublicKeyHex(), nil
}

// LoadSeed resolves a signing seed from, in order of precedence, an explicit
// hex seed, a key file, or a stored identifier and optional role.
func (ks *KeyStore) LoadSeed(seedHex, signerName, signerRole, keyFile string) ([]byte, error) {
	switch {
	case seedHex != "":
		return ParseSeedHex(seedHex)
	case keyFile != "":
		return ks.readSeedFile(keyFile)
	case signerName != "":
		return ks.load(keyRef{identifier: signerName, role: signerRole})
	default:
		return nil, errors.New("no signer provided")
	}
}

// ListKeys returns every identifier with a directory in the store, sorted,
// with the names of its role keys.
func (ks *KeyStore) ListKeys() ([]KeyEntry, error) {
	entries, err := os.ReadDir(ks.Directory)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result []KeyEntry
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		roles, err := ks.listRoles(entry.Name())
		if err != nil {
			return nil, err
		}
		result = append(result, KeyEntry{Identifier: entry.Name(), Roles: roles})
	}
	slices.SortFunc(result, func(a, b KeyEntry) int { return strings.Compare(a.Identifier, b.Identifier) })
	return result, nil
}

func (ks *KeyStore) listRoles(identifier string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(ks.Directory, identifier, "roles", "*"+keyFileExt))
	if err != nil {
		return nil, err
	}
	var roles []string
	for _, f := range files {
		if info, err := os.Stat(f); err == nil && !info.IsDir() {
			roles = append(roles, strings.TrimSuffix(filepath.Base(f), keyFileExt))
		}
	}
	slices.Sort(roles)
	return roles, nil
}

package keys

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

func TestKeyStore_RootAndRoleKeys(t *testing.T) {
	ks, err := CreateKeyStore(t.TempDir())
	require.NoError(t, err)

	liteURL, path, err := ks.InitializeRootKey("alice", repeat(0x42), false)
	require.NoError(t, err)
	assert.Equal(t, "acc://3097e2dee2cb4a34b53840cdb705aed71067c36f5f071184", liteURL)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("42", SeedSize)+"\n", string(data))

	_, _, err = ks.InitializeRootKey("alice", repeat(0x43), false)
	assert.Error(t, err, "existing root key must not be overwritten")

	roleURL, _, err := ks.DeriveKeyFromRole("alice", "operator", false)
	require.NoError(t, err)
	roleSeed, err := DeriveRoleSeed(repeat(0x42), "operator")
	require.NoError(t, err)
	assert.Equal(t, LiteIdentityURL(fromSeed(roleSeed).PublicKey()), roleURL)

	kp, err := ks.LoadKeyPair("alice", "operator")
	require.NoError(t, err)
	assert.Equal(t, roleSeed, kp.Seed())

	pubHex, err := ks.ExportPublicKey("alice", "")
	require.NoError(t, err)
	assert.Equal(t, "2152f8d19b791d24453242e15f2eab6cb7cffa7b6a5ed30097960e069881db12", pubHex)

	entries, err := ks.ListKeys()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Identifier)
	assert.Equal(t, []string{"operator"}, entries[0].Roles)
}

func TestKeyStore_LoadSeedPrecedence(t *testing.T) {
	dir := t.TempDir()
	ks, err := CreateKeyStore(dir)
	require.NoError(t, err)
	_, path, err := ks.InitializeRootKey("bob", repeat(0x01), false)
	require.NoError(t, err)

	seed, err := ks.LoadSeed(strings.Repeat("02", SeedSize), "bob", "", path)
	require.NoError(t, err)
	assert.Equal(t, repeat(0x02), seed)

	seed, err = ks.LoadSeed("", "bob", "", path)
	require.NoError(t, err)
	assert.Equal(t, repeat(0x01), seed)

	seed, err = ks.LoadSeed("", "bob", "", "")
	require.NoError(t, err)
	assert.Equal(t, repeat(0x01), seed)

	_, err = ks.LoadSeed("", "", "", "")
	assert.Error(t, err)
	_, err = ks.LoadSeed("", "bob/../x", "", "")
	assert.Error(t, err)
}

func TestKeyStore_SealedSeeds(t *testing.T) {
	dir := t.TempDir()
	ks := &KeyStore{Directory: dir, Passphrase: []byte("correct horse"), ScryptLogN: 4, Rand: &deterministicReader{}}

	_, path, err := ks.InitializeRootKey("carol", repeat(0x42), false)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "sealed:"))
	assert.NotContains(t, string(data), strings.Repeat("42", SeedSize))

	kp, err := ks.LoadKeyPair("carol", "")
	require.NoError(t, err)
	assert.Equal(t, repeat(0x42), kp.Seed())

	wrong := &KeyStore{Directory: dir, Passphrase: []byte("wrong")}
	_, err = wrong.LoadKeyPair("carol", "")
	assert.Error(t, err)

	plain := &KeyStore{Directory: dir}
	_, err = plain.LoadKeyPair("carol", "")
	assert.ErrorContains(t, err, "passphrase required")

	// Role keys derived from a sealed root are sealed too.
	_, rolePath, err := ks.DeriveKeyFromRole("carol", "approver", false)
	require.NoError(t, err)
	roleData, err := os.ReadFile(rolePath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(roleData), "sealed:"))
}

func TestKeyStore_SealedSeedOfWrongLength(t *testing.T) {
	ks := &KeyStore{Directory: t.TempDir(), Passphrase: []byte("pw"), ScryptLogN: 4, Rand: &deterministicReader{}}

	content, err := sealSeed(make([]byte, 16), ks.Passphrase, ks.ScryptLogN, ks.Rand)
	require.NoError(t, err)
	path := keyRef{identifier: "alice"}.path(ks.Directory)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content+"\n"), 0o600))

	_, err = ks.LoadKeyPair("alice", "")
	assert.Equal(t, sdkerr.RuleKeyLength, sdkerr.RuleID(err))
	_, err = ks.ExportPublicKey("alice", "")
	assert.Equal(t, sdkerr.RuleKeyLength, sdkerr.RuleID(err))
	_, _, err = ks.DeriveKeyFromRole("alice", "operator", false)
	assert.Equal(t, sdkerr.RuleKeyLength, sdkerr.RuleID(err))
}

func TestKeyStore_ListKeysEmpty(t *testing.T) {
	ks := &KeyStore{Directory: filepath.Join(t.TempDir(), "missing")}
	entries, err := ks.ListKeys()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseSeedHex(t *testing.T) {
	seed, err := ParseSeedHex("  0x" + strings.Repeat("ab", SeedSize) + "\n")
	require.NoError(t, err)
	assert.Equal(t, repeat(0xab), seed)

	_, err = ParseSeedHex("abcd")
	assert.Error(t, err)
}

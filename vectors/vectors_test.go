package vectors

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendlt/accumulate-go-sdk/canonjson"
	"github.com/opendlt/accumulate-go-sdk/compliance"
	"github.com/opendlt/accumulate-go-sdk/keys"
	"github.com/opendlt/accumulate-go-sdk/model"
	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

var (
	txVectorsPath      = filepath.Join("..", "testdata", "golden", "tx_vectors.json")
	signingVectorsPath = filepath.Join("..", "testdata", "golden", "signing_vectors.json")
)

func requireAllPassed(t *testing.T, rep *model.VectorReport) {
	t.Helper()
	for _, res := range rep.Results {
		for _, c := range res.Checks {
			assert.True(t, c.Passed, "%s: %s expected %s got %s", res.Name, c.Property, c.Expected, c.Actual)
		}
		assert.Nil(t, res.Error, res.Name)
		assert.True(t, res.Passed, res.Name)
	}
	require.Zero(t, rep.Failed)
}

func TestGoldenTxVectors_Permissive(t *testing.T) {
	rep, err := NewChecker(Options{}).CheckTxFile(txVectorsPath)
	require.NoError(t, err)
	assert.Equal(t, "tx_vectors.json", rep.File)
	assert.Equal(t, model.CompliancePermissive, rep.Compliance)
	assert.Equal(t, 4, rep.Passed)
	requireAllPassed(t, rep)
}

func TestGoldenTxVectors_Strict(t *testing.T) {
	rep, err := NewChecker(Options{Mode: compliance.Strict}).CheckTxFile(txVectorsPath)
	require.NoError(t, err)
	assert.Equal(t, model.ComplianceStrict, rep.Compliance)
	requireAllPassed(t, rep)
}

func TestGoldenSigningVectors(t *testing.T) {
	for _, mode := range []compliance.Mode{compliance.Permissive, compliance.Strict} {
		rep, err := NewChecker(Options{Mode: mode}).CheckSigningFile(signingVectorsPath)
		require.NoError(t, err)
		assert.Equal(t, 2, rep.Passed)
		requireAllPassed(t, rep)
	}
}

func TestGoldenTxVectors_EndToEndHash(t *testing.T) {
	f, err := LoadTxFile(txVectorsPath)
	require.NoError(t, err)
	require.NotEmpty(t, f.Vectors)
	v := f.Vectors[0]
	assert.Equal(t, "send_tokens", v.Name)
	assert.Equal(t, "4be49c59c717f1984646998cecac0e5225378d9bbe2e18928272a85b7dfcb608", v.TxHash)
	assert.True(t, canonjson.IsCanonical(v.CanonicalJSON))
}

func TestCheckTx_OptionalFields(t *testing.T) {
	f, err := LoadTxFile(txVectorsPath)
	require.NoError(t, err)
	v := f.Vectors[0]
	v.LayeredTxHash = ""
	v.LiteIdentityURL = ""

	res := NewChecker(Options{}).CheckTx(v)
	assert.True(t, res.Passed)
	skipped := 0
	for _, c := range res.Checks {
		if c.Skipped {
			skipped++
		}
	}
	assert.Equal(t, 2, skipped)

	res = NewChecker(Options{Mode: compliance.Strict}).CheckTx(v)
	assert.False(t, res.Passed)
}

func TestCheckTx_ReportsMismatches(t *testing.T) {
	f, err := LoadTxFile(txVectorsPath)
	require.NoError(t, err)

	v := f.Vectors[1]
	v.TxHash = strings.Repeat("0", 64)
	res := NewChecker(Options{}).CheckTx(v)
	assert.False(t, res.Passed)
	var failed []string
	for _, c := range res.Checks {
		if !c.Passed {
			failed = append(failed, c.Property)
			if c.Property == "txHash" {
				assert.Equal(t, v.TxHash, c.Expected)
			}
		}
	}
	assert.Equal(t, []string{"txHash"}, failed)

	v = f.Vectors[1]
	v.CanonicalJSON = `{"header":{},"body":{}}`
	res = NewChecker(Options{Mode: compliance.Strict}).CheckTx(v)
	assert.False(t, res.Passed)

	v = f.Vectors[1]
	v.PrivateKey = "abcd"
	res = NewChecker(Options{}).CheckTx(v)
	assert.False(t, res.Passed)
	require.NotNil(t, res.Error)
	assert.Equal(t, model.ErrInvalidKey, res.Error.Code)
	assert.Equal(t, sdkerr.RuleKeyLength, res.Error.RuleID)
}

func TestCheckTx_PayloadValidationSurfacesAsError(t *testing.T) {
	f, err := LoadTxFile(txVectorsPath)
	require.NoError(t, err)
	v := f.Vectors[2]
	require.Equal(t, "write_data", v.Name)

	body, _ := v.Transaction.Get("body")
	v.Transaction = v.Transaction.With("body", body.Without("entry"))
	res := NewChecker(Options{}).CheckTx(v)
	assert.False(t, res.Passed)
}

func TestParseTxFile_Rejects(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		rule string
	}{
		{"not json", `{`, sdkerr.RuleVectorMalformed},
		{"bad version", `{"version":2,"vectors":[]}`, sdkerr.RuleVectorMalformed},
		{"unknown field", `{"version":1,"vectors":[],"extra":true}`, sdkerr.RuleVectorMalformed},
		{"missing txHash", `{"version":1,"vectors":[{"name":"a","transaction":{},"canonicalJSON":"{}","privateKey":"00","publicKey":"00","signature":"00"}]}`, sdkerr.RuleVectorField},
		{"missing transaction", `{"version":1,"vectors":[{"name":"a","canonicalJSON":"{}","txHash":"00","privateKey":"00","publicKey":"00","signature":"00"}]}`, sdkerr.RuleVectorField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTxFile([]byte(tc.doc))
			require.Error(t, err)
			assert.Equal(t, tc.rule, sdkerr.RuleID(err))
		})
	}
}

func TestBuildTxVector_ReproducesGoldenFile(t *testing.T) {
	f, err := LoadTxFile(txVectorsPath)
	require.NoError(t, err)
	for _, want := range f.Vectors {
		kp, err := keys.FromHex(want.PrivateKey)
		require.NoError(t, err)
		got, err := BuildTxVector(want.Name, want.Transaction, kp)
		require.NoError(t, err)
		assert.Equal(t, want.CanonicalJSON, got.CanonicalJSON, want.Name)
		assert.Equal(t, want.TxHash, got.TxHash, want.Name)
		assert.Equal(t, want.LayeredTxHash, got.LayeredTxHash, want.Name)
		assert.Equal(t, want.Signature, got.Signature, want.Name)
		assert.Equal(t, want.LiteTokenAccountURL, got.LiteTokenAccountURL, want.Name)
	}
}

func TestBuildSigningVector_ReproducesGoldenFile(t *testing.T) {
	f, err := LoadSigningFile(signingVectorsPath)
	require.NoError(t, err)
	for _, want := range f.Vectors {
		kp, err := keys.FromHex(want.PrivateKey)
		require.NoError(t, err)
		got, err := BuildSigningVector(want.Name, want.Transaction, kp, 1, 1234567890999)
		require.NoError(t, err)
		assert.True(t, canonjson.Equal(want.SignatureMetadata, got.SignatureMetadata), want.Name)
		assert.Equal(t, want.SigningHash, got.SigningHash, want.Name)
		assert.Equal(t, want.Signature, got.Signature, want.Name)
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	f, err := LoadTxFile(txVectorsPath)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "tx_vectors.json")
	require.NoError(t, WriteFile(path, f))

	back, err := LoadTxFile(path)
	require.NoError(t, err)
	require.Len(t, back.Vectors, len(f.Vectors))
	for i := range f.Vectors {
		assert.True(t, canonjson.Equal(f.Vectors[i].Transaction, back.Vectors[i].Transaction))
		assert.Equal(t, f.Vectors[i].TxHash, back.Vectors[i].TxHash)
	}
}

func TestEncode_DoesNotEscapeHTML(t *testing.T) {
	b, err := Encode(map[string]string{"memo": "<a&b>"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"memo\": \"<a&b>\"\n}\n", string(b))
}

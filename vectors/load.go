package vectors

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

// LoadTxFile reads and validates a transaction vector file.
func LoadTxFile(path string) (*TxFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTxFile(b)
}

// ParseTxFile decodes a transaction vector file and checks that every
// required field is present.
func ParseTxFile(data []byte) (*TxFile, error) {
	var f TxFile
	if err := decodeStrict(data, &f); err != nil {
		return nil, err
	}
	if err := checkVersion(f.Version); err != nil {
		return nil, err
	}
	for i, v := range f.Vectors {
		if err := requireFields(i, v.Name, []field{
			{"name", v.Name},
			{"canonicalJSON", v.CanonicalJSON},
			{"txHash", v.TxHash},
			{"privateKey", v.PrivateKey},
			{"publicKey", v.PublicKey},
			{"signature", v.Signature},
		}); err != nil {
			return nil, err
		}
		if !v.Transaction.IsValid() {
			return nil, missingField(i, v.Name, "transaction")
		}
	}
	return &f, nil
}

// LoadSigningFile reads and validates a signing vector file.
func LoadSigningFile(path string) (*SigningFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSigningFile(b)
}

// ParseSigningFile decodes a signing vector file and checks that every field
// is present.
func ParseSigningFile(data []byte) (*SigningFile, error) {
	var f SigningFile
	if err := decodeStrict(data, &f); err != nil {
		return nil, err
	}
	if err := checkVersion(f.Version); err != nil {
		return nil, err
	}
	for i, v := range f.Vectors {
		if err := requireFields(i, v.Name, []field{
			{"name", v.Name},
			{"privateKey", v.PrivateKey},
			{"publicKey", v.PublicKey},
			{"metadataHash", v.MetadataHash},
			{"txHash", v.TxHash},
			{"signingHash", v.SigningHash},
			{"signature", v.Signature},
		}); err != nil {
			return nil, err
		}
		if !v.Transaction.IsValid() {
			return nil, missingField(i, v.Name, "transaction")
		}
		if !v.SignatureMetadata.IsValid() {
			return nil, missingField(i, v.Name, "signatureMetadata")
		}
	}
	return &f, nil
}

func decodeStrict(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return sdkerr.Wrap(sdkerr.KindParse, sdkerr.RuleVectorMalformed, "decode vector file", err)
	}
	if dec.More() {
		return sdkerr.New(sdkerr.KindParse, sdkerr.RuleVectorMalformed, "unexpected data after vector file")
	}
	return nil
}

func checkVersion(v int) error {
	if v != FileVersion {
		return sdkerr.Newf(sdkerr.KindParse, sdkerr.RuleVectorMalformed, "unsupported vector file version %d", v)
	}
	return nil
}

type field struct {
	key, value string
}

func requireFields(i int, name string, fields []field) error {
	for _, f := range fields {
		if f.value == "" {
			return missingField(i, name, f.key)
		}
	}
	return nil
}

func missingField(i int, name, field string) error {
	return sdkerr.Newf(sdkerr.KindParse, sdkerr.RuleVectorField, "vector %d (%q): missing %s", i, name, field)
}

package vectors

import (
	"path/filepath"
	"strings"

	"github.com/opendlt/accumulate-go-sdk/canonjson"
	"github.com/opendlt/accumulate-go-sdk/compliance"
	"github.com/opendlt/accumulate-go-sdk/hashing"
	"github.com/opendlt/accumulate-go-sdk/keys"
	"github.com/opendlt/accumulate-go-sdk/model"
	"github.com/opendlt/accumulate-go-sdk/signing"
)

// Options configures a Checker.
//
// Default behavior is Permissive when Options{} is used.
type Options struct {
	Mode compliance.Mode
}

func (o Options) withDefaults() Options {
	if o.Mode != compliance.Strict {
		o.Mode = compliance.Permissive
	}
	return o
}

// Checker recomputes every pinned value of a vector and compares it with the
// stored one.
type Checker struct {
	opts Options
}

func NewChecker(opts Options) *Checker {
	return &Checker{opts: opts.withDefaults()}
}

func (c *Checker) mode() model.ComplianceMode {
	if c.opts.Mode == compliance.Strict {
		return model.ComplianceStrict
	}
	return model.CompliancePermissive
}

type result struct {
	strict bool
	r      model.VectorResult
}

func (b *result) add(prop string, passed bool, want, got string) {
	check := model.VectorCheck{Property: prop, Passed: passed}
	if !passed {
		check.Expected, check.Actual = want, got
	}
	b.r.Checks = append(b.r.Checks, check)
}

func (b *result) compare(prop, want, got string) {
	b.add(prop, strings.EqualFold(want, got), want, got)
}

func (b *result) holds(prop string, ok bool) {
	b.add(prop, ok, "true", "false")
}

// optional compares an optional field. Absent fields are skipped, or fail
// in strict mode.
func (b *result) optional(prop, want string, got func() string) {
	if want != "" {
		b.compare(prop, want, got())
		return
	}
	if b.strict {
		b.add(prop, false, "present", "missing")
		return
	}
	b.r.Checks = append(b.r.Checks, model.VectorCheck{Property: prop, Passed: true, Skipped: true})
}

func (b *result) fail(err error) model.VectorResult {
	b.r.Error = model.FromError(err)
	b.r.Passed = false
	return b.r
}

func (b *result) done() model.VectorResult {
	b.r.Passed = true
	for _, c := range b.r.Checks {
		if !c.Passed {
			b.r.Passed = false
		}
	}
	return b.r
}

// CheckTx checks one transaction vector.
func (c *Checker) CheckTx(v TxVector) model.VectorResult {
	b := &result{strict: c.opts.Mode == compliance.Strict, r: model.VectorResult{Name: v.Name}}

	canonical, err := canonjson.Canonicalize(v.Transaction)
	if err != nil {
		return b.fail(err)
	}
	b.add("canonicalJSON", canonical == v.CanonicalJSON, v.CanonicalJSON, canonical)
	if b.strict {
		b.holds("canonicalJSON.isCanonical", canonjson.IsCanonical(v.CanonicalJSON))
	}

	txHash, err := hashing.HashTransaction(v.Transaction)
	if err != nil {
		return b.fail(err)
	}
	b.compare("txHash", v.TxHash, hashing.Hex(txHash))

	b.optional("layeredTxHash", v.LayeredTxHash, func() string {
		h, err := hashing.HashTransactionLayered(v.Transaction)
		if err != nil {
			return err.Error()
		}
		return hashing.Hex(h)
	})

	kp, err := keys.FromHex(v.PrivateKey)
	if err != nil {
		return b.fail(err)
	}
	b.compare("publicKey", v.PublicKey, kp.PublicKeyHex())
	b.compare("signature", v.Signature, kp.SignHex(txHash[:]))
	b.holds("signature.verifies", keys.VerifySignatureHex(v.PublicKey, txHash[:], v.Signature))

	b.optional("liteIdentityUrl", v.LiteIdentityURL, kp.LiteIdentityURL)
	b.optional("liteTokenAccountUrl", v.LiteTokenAccountURL, kp.LiteTokenAccountURL)
	return b.done()
}

// CheckSigning checks one signing vector, including a full Sign and Verify
// round trip through a signed transaction envelope.
func (c *Checker) CheckSigning(v SigningVector) model.VectorResult {
	b := &result{strict: c.opts.Mode == compliance.Strict, r: model.VectorResult{Name: v.Name}}

	kp, err := keys.FromHex(v.PrivateKey)
	if err != nil {
		return b.fail(err)
	}
	b.compare("publicKey", v.PublicKey, kp.PublicKeyHex())

	metaHash, err := hashing.HashSignatureMetadata(v.SignatureMetadata)
	if err != nil {
		return b.fail(err)
	}
	b.compare("metadataHash", v.MetadataHash, hashing.Hex(metaHash))

	txHash, err := hashing.HashTransaction(v.Transaction)
	if err != nil {
		return b.fail(err)
	}
	b.compare("txHash", v.TxHash, hashing.Hex(txHash))

	signingHash, err := hashing.HashForEd25519Signing(v.SignatureMetadata, v.Transaction)
	if err != nil {
		return b.fail(err)
	}
	b.compare("signingHash", v.SigningHash, hashing.Hex(signingHash))
	b.compare("signature", v.Signature, kp.SignHex(signingHash[:]))

	meta, err := signing.MetadataFromValue(v.SignatureMetadata)
	if err != nil {
		return b.fail(err)
	}
	env, err := signing.Sign(kp, meta, v.Transaction)
	if err != nil {
		return b.fail(err)
	}
	b.compare("envelope.signature", v.Signature, env.Signatures[0].Signature)
	ok, err := signing.Verify(env)
	if err != nil {
		return b.fail(err)
	}
	b.holds("envelope.verifies", ok)
	return b.done()
}

// CheckTxFile loads and checks a transaction vector file.
func (c *Checker) CheckTxFile(path string) (*model.VectorReport, error) {
	f, err := LoadTxFile(path)
	if err != nil {
		return nil, err
	}
	rep := c.newReport(path)
	for _, v := range f.Vectors {
		rep.add(c.CheckTx(v))
	}
	return &rep.VectorReport, nil
}

// CheckSigningFile loads and checks a signing vector file.
func (c *Checker) CheckSigningFile(path string) (*model.VectorReport, error) {
	f, err := LoadSigningFile(path)
	if err != nil {
		return nil, err
	}
	rep := c.newReport(path)
	for _, v := range f.Vectors {
		rep.add(c.CheckSigning(v))
	}
	return &rep.VectorReport, nil
}

type report struct {
	model.VectorReport
}

func (c *Checker) newReport(path string) *report {
	return &report{model.VectorReport{File: filepath.Base(path), Compliance: c.mode()}}
}

func (r *report) add(res model.VectorResult) {
	if res.Passed {
		r.Passed++
	} else {
		r.Failed++
	}
	r.Results = append(r.Results, res)
}

package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/opendlt/accumulate-go-sdk/canonjson"
	"github.com/opendlt/accumulate-go-sdk/compliance"
	"github.com/opendlt/accumulate-go-sdk/keys"
	"github.com/opendlt/accumulate-go-sdk/model"
	"github.com/opendlt/accumulate-go-sdk/vectors"
)

const timestampFormat = "2006-01-02T15:04:05.000"

type scenario struct {
	name string
	seed []byte
	tx   map[string]any
	sign bool
}

func seedOf(b byte) []byte { return bytes.Repeat([]byte{b}, keys.SeedSize) }

func scenarios() []scenario {
	counting := []byte{
		0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef,
		0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef,
	}
	return []scenario{
		{
			name: "send_tokens",
			seed: counting,
			sign: true,
			tx: map[string]any{
				"header": map[string]any{"principal": "acc://alice.acme/tokens", "timestamp": 1234567890123},
				"body": map[string]any{
					"type": "send-tokens",
					"to":   []any{map[string]any{"url": "acc://bob.acme/tokens", "amount": "1000"}},
				},
			},
		},
		{
			name: "create_identity",
			seed: seedOf(0x42),
			sign: true,
			tx: map[string]any{
				"header": map[string]any{"principal": "acc://alice.acme", "timestamp": 1234567890456},
				"body": map[string]any{
					"type":    "create-identity",
					"url":     "acc://alice.acme",
					"keyBook": map[string]any{"publicKeyHash": "3b6a27bcceb6a42d62a3a8d02a6f0d73653215771de243a63ac048a18b59da29"},
				},
			},
		},
		{
			name: "write_data",
			seed: seedOf(0xa1),
			tx: map[string]any{
				"header": map[string]any{"principal": "acc://alice.acme/data", "timestamp": 1700000000000, "memo": "hello"},
				"body": map[string]any{
					"type":    "WriteData",
					"scratch": false,
					"entry":   map[string]any{"type": "doubleHash", "data": []string{"68656c6c6f", "776f726c64"}},
				},
			},
		},
		{
			name: "add_credits_nested",
			seed: seedOf(0x00),
			tx: map[string]any{
				"header": map[string]any{
					"timestamp": 1,
					"principal": "acc://bd4e02f43853c45ca08a9ca2cbe399445861f49274c75e16/ACME",
					"initiator": "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
					"metadata":  nil,
				},
				"body": map[string]any{"type": "add-credits", "recipient": "acc://alice.acme/book/1", "amount": "500000", "oracle": 500},
			},
		},
	}
}

func main() {
	var (
		outDir    = flag.String("out", filepath.Join("testdata", "golden"), "output directory")
		check     = flag.Bool("check", false, "check the existing files instead of writing them")
		strict    = flag.Bool("strict", false, "check in strict compliance mode")
		timestamp = flag.Uint64("timestamp", 1234567890999, "signature timestamp for signing vectors")
		verbose   = flag.Bool("v", false, "log every vector")
	)
	flag.Parse()

	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	txPath := filepath.Join(*outDir, "tx_vectors.json")
	signingPath := filepath.Join(*outDir, "signing_vectors.json")

	if *check {
		mode := compliance.Permissive
		if *strict {
			mode = compliance.Strict
		}
		runChecks(vectors.NewChecker(vectors.Options{Mode: mode}), txPath, signingPath)
		return
	}

	txFile := vectors.TxFile{Version: vectors.FileVersion}
	signingFile := vectors.SigningFile{Version: vectors.FileVersion}
	for _, sc := range scenarios() {
		kp, err := keys.FromSeedOrKey(sc.seed)
		if err != nil {
			logrus.WithError(err).WithField("vector", sc.name).Fatal("load key")
		}
		tx, err := canonjson.FromGo(sc.tx)
		if err != nil {
			logrus.WithError(err).WithField("vector", sc.name).Fatal("build transaction")
		}
		v, err := vectors.BuildTxVector(sc.name, tx, kp)
		if err != nil {
			logrus.WithError(err).WithField("vector", sc.name).Fatal("build tx vector")
		}
		txFile.Vectors = append(txFile.Vectors, v)
		logrus.WithFields(logrus.Fields{"vector": sc.name, "txHash": v.TxHash}).Debug("tx vector")

		if !sc.sign {
			continue
		}
		sv, err := vectors.BuildSigningVector(sc.name, tx, kp, 1, *timestamp)
		if err != nil {
			logrus.WithError(err).WithField("vector", sc.name).Fatal("build signing vector")
		}
		signingFile.Vectors = append(signingFile.Vectors, sv)
		logrus.WithFields(logrus.Fields{"vector": sc.name, "signingHash": sv.SigningHash}).Debug("signing vector")
	}

	if err := vectors.WriteFile(txPath, txFile); err != nil {
		logrus.WithError(err).Fatal("write tx vectors")
	}
	if err := vectors.WriteFile(signingPath, signingFile); err != nil {
		logrus.WithError(err).Fatal("write signing vectors")
	}
	logrus.WithFields(logrus.Fields{
		"txVectors":      len(txFile.Vectors),
		"signingVectors": len(signingFile.Vectors),
		"out":            *outDir,
	}).Info("wrote golden vectors")
}

func runChecks(c *vectors.Checker, txPath, signingPath string) {
	failed := 0
	for _, run := range []struct {
		path  string
		check func(string) (*model.VectorReport, error)
	}{
		{txPath, c.CheckTxFile},
		{signingPath, c.CheckSigningFile},
	} {
		rep, err := run.check(run.path)
		if err != nil {
			logrus.WithError(err).WithField("file", run.path).Fatal("check vectors")
		}
		for _, res := range rep.Results {
			entry := logrus.WithFields(logrus.Fields{"file": rep.File, "vector": res.Name})
			if res.Passed {
				entry.Debug("pass")
				continue
			}
			if res.Error != nil {
				entry = entry.WithField("rule", res.Error.RuleID).WithField("error", res.Error.Message)
			}
			for _, chk := range res.Checks {
				if !chk.Passed {
					entry.WithFields(logrus.Fields{"property": chk.Property, "expected": chk.Expected, "actual": chk.Actual}).Error("mismatch")
				}
			}
			entry.Error("fail")
		}
		failed += rep.Failed
		logrus.WithFields(logrus.Fields{
			"file":       rep.File,
			"compliance": rep.Compliance,
			"passed":     rep.Passed,
			"failed":     rep.Failed,
		}).Info("checked vectors")
	}
	if failed > 0 {
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/opendlt/accumulate-go-sdk/canonjson"
	"github.com/opendlt/accumulate-go-sdk/hashing"
)

func main() {
	layered := flag.Bool("layered", false, "print the layered hash instead of the flat hash")
	showCID := flag.Bool("cid", false, "also print the transaction CID")
	showCanonical := flag.Bool("canonical", false, "print the canonical JSON before the hash")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "usage: tx_hash [-layered] [-cid] [-canonical] [transaction.json]")
		os.Exit(2)
	}

	var (
		b   []byte
		err error
	)
	if flag.NArg() == 1 {
		b, err = os.ReadFile(flag.Arg(0))
	} else {
		b, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fatalf("read: %v", err)
	}
	tx, err := canonjson.Parse(b)
	if err != nil {
		fatalf("parse: %v", err)
	}

	if *showCanonical {
		c, err := canonjson.Canonicalize(tx)
		if err != nil {
			fatalf("canonicalize: %v", err)
		}
		fmt.Println(c)
	}

	strategy := hashing.Flat
	if *layered {
		strategy = hashing.Layered
	}
	h, err := hashing.NewTransactionHasher(hashing.Options{Strategy: strategy}).Hash(tx)
	if err != nil {
		fatalf("hash: %v", err)
	}
	fmt.Println(hashing.Hex(h))

	if *showCID {
		cid, err := hashing.TransactionCID(tx)
		if err != nil {
			fatalf("cid: %v", err)
		}
		fmt.Println(cid)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

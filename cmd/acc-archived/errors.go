package main

import "errors"

var (
	errMissingDir     = errors.New("-dir is required for the localfs and leveldb backends")
	errUnknownBackend = errors.New("unknown backend")
)

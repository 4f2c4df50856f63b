package main

import (
	"flag"
	"net"
	"os"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/opendlt/accumulate-go-sdk/storage"
	"github.com/opendlt/accumulate-go-sdk/storage/grpccas"
	"github.com/opendlt/accumulate-go-sdk/storage/leveldbcas"
	"github.com/opendlt/accumulate-go-sdk/storage/localfs"
)

const timestampFormat = "2006-01-02T15:04:05.000"

func main() {
	fs := flag.NewFlagSet("acc-archived", flag.ExitOnError)
	listen := fs.String("listen", "127.0.0.1:7777", "listen address")
	backend := fs.String("backend", "localfs", "block store backend: localfs, leveldb or memory")
	dir := fs.String("dir", "", "data directory (required for localfs and leveldb)")
	cacheSize := fs.Int("cache", 0, "number of blocks to cache in memory; 0 disables the cache")
	anyBlocks := fs.Bool("any-blocks", false, "accept blocks that are not canonical transactions")
	maxMsg := fs.Int("max-msg-bytes", 0, "maximum gRPC message size; 0 keeps the default")
	_ = fs.Parse(os.Args[1:])

	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: timestampFormat,
	})

	cas, closeFn, err := openBackend(*backend, *dir)
	if err != nil {
		logrus.WithError(err).WithField("backend", *backend).Error("open backend")
		os.Exit(2)
	}
	if closeFn != nil {
		defer closeFn()
	}
	if *cacheSize > 0 {
		if cas, err = storage.NewCachingCAS(cas, *cacheSize); err != nil {
			logrus.WithError(err).Error("configure cache")
			os.Exit(2)
		}
	}

	lis, err := net.Listen("tcp", *listen)
	if err != nil {
		logrus.WithError(err).Fatal("listen")
	}
	defer lis.Close()

	var opts []grpc.ServerOption
	if *maxMsg > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(*maxMsg), grpc.MaxSendMsgSize(*maxMsg))
	}
	s := grpc.NewServer(opts...)
	grpccas.RegisterBlockStoreServer(s, &grpccas.Server{CAS: cas, RequireTransactions: !*anyBlocks})

	logrus.WithFields(logrus.Fields{
		"addr":    lis.Addr().String(),
		"backend": *backend,
		"cache":   *cacheSize,
	}).Info("archive listening")
	if err := s.Serve(lis); err != nil {
		logrus.WithError(err).Fatal("serve")
	}
}

func openBackend(name, dir string) (storage.CAS, func(), error) {
	switch name {
	case "memory":
		return storage.NewMemoryCAS(), nil, nil
	case "localfs":
		if dir == "" {
			return nil, nil, errMissingDir
		}
		cas, err := localfs.New(dir)
		return cas, nil, err
	case "leveldb":
		if dir == "" {
			return nil, nil, errMissingDir
		}
		cas, err := leveldbcas.Open(dir)
		if err != nil {
			return nil, nil, err
		}
		return cas, func() { _ = cas.Close() }, nil
	default:
		return nil, nil, errUnknownBackend
	}
}

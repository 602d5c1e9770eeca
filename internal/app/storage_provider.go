package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yungbote/mindwell-backend/internal/platform/gcp"
	"github.com/yungbote/mindwell-backend/internal/platform/logger"
	"github.com/yungbote/mindwell-backend/internal/platform/reportstore"
)

type bucketStore interface {
	reportstore.Store
	io.Closer
}

var newReportBucket = func(ctx context.Context, log *logger.Logger, cfg gcp.ObjectStorageConfig) (bucketStore, error) {
	return gcp.NewReportBucket(ctx, log, cfg)
}

type StorageProviderBootstrapErrorCode string

const (
	StorageProviderBootstrapErrorInvalidMode         StorageProviderBootstrapErrorCode = "invalid_mode"
	StorageProviderBootstrapErrorMissingBucket       StorageProviderBootstrapErrorCode = "missing_bucket"
	StorageProviderBootstrapErrorMissingEmulatorHost StorageProviderBootstrapErrorCode = "missing_emulator_host"
	StorageProviderBootstrapErrorInvalidEmulatorHost StorageProviderBootstrapErrorCode = "invalid_emulator_host"
	StorageProviderBootstrapErrorLocalDir            StorageProviderBootstrapErrorCode = "local_dir_unusable"
	StorageProviderBootstrapErrorConnectFailed       StorageProviderBootstrapErrorCode = "connect_failed"
)

type StorageProviderBootstrapError struct {
	Code         StorageProviderBootstrapErrorCode
	Mode         string
	EmulatorHost string
	Cause        error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "report storage bootstrap failed"
	}
	return fmt.Sprintf(
		"report storage bootstrap failed (code=%s mode=%q emulator_host=%q): %v",
		e.Code,
		e.Mode,
		e.EmulatorHost,
		e.Cause,
	)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// resolveReportStore returns the document store for the configured mode and a
// closer for whatever client backs it.
func resolveReportStore(ctx context.Context, log *logger.Logger, cfg Config) (reportstore.Store, io.Closer, error) {
	if cfg.ReportStorageMode == "" || cfg.ReportStorageMode == ReportStorageLocal {
		local, err := reportstore.NewLocal(cfg.ReportLocalDir, log)
		if err != nil {
			bootErr := &StorageProviderBootstrapError{
				Code:  StorageProviderBootstrapErrorLocalDir,
				Mode:  ReportStorageLocal,
				Cause: err,
			}
			log.Error("Report storage bootstrap failed", "mode", ReportStorageLocal, "dir", cfg.ReportLocalDir, "error_code", bootErr.Code, "error", err)
			return nil, nil, bootErr
		}
		log.Info("Selecting report storage provider", "mode", ReportStorageLocal, "dir", cfg.ReportLocalDir)
		return local, closerFunc(func() error { return nil }), nil
	}

	storageCfg, err := gcp.ResolveObjectStorageConfig(cfg.ReportStorageMode, cfg.StorageEmulatorHost, cfg.ReportBucket)
	if err != nil {
		if storageCfg.Mode == "" {
			storageCfg.Mode = gcp.ObjectStorageMode(cfg.ReportStorageMode)
		}
		classified := classifyStorageProviderBootstrapError(storageCfg, err)
		log.Error("Report storage provider selection failed",
			"mode", cfg.ReportStorageMode,
			"emulator_host", storageCfg.EmulatorHost,
			"error_code", storageProviderBootstrapErrorCode(classified),
			"error", classified,
		)
		return nil, nil, classified
	}

	log.Info("Selecting report storage provider",
		"mode", storageCfg.Mode,
		"emulator_host", storageCfg.EmulatorHost,
		"bucket", storageCfg.Bucket,
	)
	bucket, err := newReportBucket(ctx, log, storageCfg)
	if err != nil {
		classified := classifyStorageProviderBootstrapError(storageCfg, err)
		log.Error("Report storage provider bootstrap failed",
			"mode", storageCfg.Mode,
			"emulator_host", storageCfg.EmulatorHost,
			"error_code", storageProviderBootstrapErrorCode(classified),
			"error", classified,
		)
		return nil, nil, classified
	}
	return bucket, bucket, nil
}

func classifyStorageProviderBootstrapError(storageCfg gcp.ObjectStorageConfig, err error) error {
	code := StorageProviderBootstrapErrorConnectFailed
	var cfgErr *gcp.ObjectStorageConfigError
	if errors.As(err, &cfgErr) {
		switch cfgErr.Code {
		case gcp.ObjectStorageConfigErrorInvalidMode:
			code = StorageProviderBootstrapErrorInvalidMode
		case gcp.ObjectStorageConfigErrorMissingBucket:
			code = StorageProviderBootstrapErrorMissingBucket
		case gcp.ObjectStorageConfigErrorMissingEmulatorHost:
			code = StorageProviderBootstrapErrorMissingEmulatorHost
		case gcp.ObjectStorageConfigErrorInvalidEmulatorHost:
			code = StorageProviderBootstrapErrorInvalidEmulatorHost
		}
	}
	return &StorageProviderBootstrapError{
		Code:         code,
		Mode:         string(storageCfg.Mode),
		EmulatorHost: storageCfg.EmulatorHost,
		Cause:        err,
	}
}

func storageProviderBootstrapErrorCode(err error) StorageProviderBootstrapErrorCode {
	var bootstrapErr *StorageProviderBootstrapError
	if errors.As(err, &bootstrapErr) && bootstrapErr.Code != "" {
		return bootstrapErr.Code
	}
	return StorageProviderBootstrapErrorConnectFailed
}

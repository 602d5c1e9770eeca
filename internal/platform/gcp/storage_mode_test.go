package gcp

import (
	"errors"
	"testing"
)

func TestResolveObjectStorageConfig(t *testing.T) {
	cases := []struct {
		name     string
		mode     string
		host     string
		bucket   string
		wantMode ObjectStorageMode
		wantCode ObjectStorageConfigErrorCode
	}{
		{name: "default gcs", bucket: "reports", wantMode: ObjectStorageModeGCS},
		{name: "explicit gcs ignores host", mode: "gcs", host: "http://fake-gcs:4443", bucket: "reports", wantMode: ObjectStorageModeGCS},
		{name: "explicit emulator", mode: "GCS_EMULATOR", host: "http://fake-gcs:4443", bucket: "reports", wantMode: ObjectStorageModeGCSEmulator},
		{name: "host implies emulator", host: "http://fake-gcs:4443", bucket: "reports", wantMode: ObjectStorageModeGCSEmulator},
		{name: "invalid mode", mode: "s3", bucket: "reports", wantCode: ObjectStorageConfigErrorInvalidMode},
		{name: "missing bucket", mode: "gcs", wantCode: ObjectStorageConfigErrorMissingBucket},
		{name: "missing emulator host", mode: "gcs_emulator", bucket: "reports", wantCode: ObjectStorageConfigErrorMissingEmulatorHost},
		{name: "relative emulator host", mode: "gcs_emulator", host: "fake-gcs:4443", bucket: "reports", wantCode: ObjectStorageConfigErrorInvalidEmulatorHost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := ResolveObjectStorageConfig(tc.mode, tc.host, tc.bucket)
			if tc.wantCode != "" {
				var cfgErr *ObjectStorageConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("error: want ObjectStorageConfigError got=%v", err)
				}
				if cfgErr.Code != tc.wantCode {
					t.Fatalf("code: want=%q got=%q", tc.wantCode, cfgErr.Code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveObjectStorageConfig: %v", err)
			}
			if cfg.Mode != tc.wantMode {
				t.Fatalf("mode: want=%q got=%q", tc.wantMode, cfg.Mode)
			}
		})
	}
}

func TestContentTypeForKey(t *testing.T) {
	if got := contentTypeForKey("report_x.PDF"); got != "application/pdf" {
		t.Fatalf("pdf: want=%q got=%q", "application/pdf", got)
	}
	if got := contentTypeForKey("notes.txt"); got != "" {
		t.Fatalf("unknown: want empty got=%q", got)
	}
}

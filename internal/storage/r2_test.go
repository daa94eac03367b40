package storage

import (
	"errors"
	"testing"
)

func testR2Config() R2Config {
	return R2Config{
		AccountID: "acct123",
		Bucket:    "workout-videos",
		AccessKey: "key",
		SecretKey: "secret",
	}
}

func TestR2URLDefaultPublicBase(t *testing.T) {
	store, err := NewR2(testR2Config())
	if err != nil {
		t.Fatalf("NewR2 error: %v", err)
	}
	if got := store.URL("run1/segments/seg.mp4"); got != "https://workout-videos.r2.dev/run1/segments/seg.mp4" {
		t.Errorf("URL = %q", got)
	}
}

func TestR2URLCustomDomain(t *testing.T) {
	cfg := testR2Config()
	cfg.PublicURL = "https://videos.example.com/"
	store, err := NewR2(cfg)
	if err != nil {
		t.Fatalf("NewR2 error: %v", err)
	}
	if got := store.URL("a/b.mp4"); got != "https://videos.example.com/a/b.mp4" {
		t.Errorf("URL = %q, want https://videos.example.com/a/b.mp4", got)
	}
}

func TestR2KeyFromURLInvertsURL(t *testing.T) {
	cfg := testR2Config()
	cfg.PublicURL = "https://videos.example.com"
	store, err := NewR2(cfg)
	if err != nil {
		t.Fatalf("NewR2 error: %v", err)
	}

	keys := []string{
		"seg.mp4",
		"run1/seg001.mp4",
		"run1/segments/workout_seg001_Push-ups.mp4",
	}
	for _, key := range keys {
		if got := store.KeyFromURL(store.URL(key)); got != key {
			t.Errorf("KeyFromURL(URL(%q)) = %q, want %q", key, got, key)
		}
	}
}

func TestR2KeyFromURLForeignBaseFallback(t *testing.T) {
	store, err := NewR2(testR2Config())
	if err != nil {
		t.Fatalf("NewR2 error: %v", err)
	}

	// A URL issued under an earlier public base still yields a usable key.
	got := store.KeyFromURL("https://old-domain.example.com/run1/segments/seg.mp4")
	if got != "run1/segments/seg.mp4" {
		t.Errorf("fallback key = %q, want run1/segments/seg.mp4", got)
	}

	// Bare keys pass through.
	if got := store.KeyFromURL("seg.mp4"); got != "seg.mp4" {
		t.Errorf("bare key = %q, want seg.mp4", got)
	}
}

func TestR2ConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*R2Config)
	}{
		{"missing account ID", func(c *R2Config) { c.AccountID = "" }},
		{"missing bucket", func(c *R2Config) { c.Bucket = "" }},
		{"missing access key", func(c *R2Config) { c.AccessKey = "" }},
		{"missing secret key", func(c *R2Config) { c.SecretKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testR2Config()
			tt.mutate(&cfg)
			_, err := NewR2(cfg)
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigError, got %T (%v)", err, err)
			}
		})
	}
}

func TestS3URL(t *testing.T) {
	store, err := NewS3(S3Config{
		Bucket:    "my-bucket",
		Region:    "eu-west-1",
		AccessKey: "key",
		SecretKey: "secret",
	})
	if err != nil {
		t.Fatalf("NewS3 error: %v", err)
	}
	if got := store.URL("dir/f.mp4"); got != "https://my-bucket.s3.eu-west-1.amazonaws.com/dir/f.mp4" {
		t.Errorf("URL = %q", got)
	}
	if _, ok := store.LocalPath("dir/f.mp4"); ok {
		t.Error("S3 LocalPath reported a local file")
	}
}

func TestS3ConfigValidation(t *testing.T) {
	if _, err := NewS3(S3Config{Region: "us-east-1", AccessKey: "k", SecretKey: "s"}); err == nil {
		t.Fatal("expected error for missing bucket")
	}
	if _, err := NewS3(S3Config{Bucket: "b"}); err == nil {
		t.Fatal("expected error for missing credentials")
	}
}

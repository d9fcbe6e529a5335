package database

import (
	"context"
	"testing"

	appconfig "mecanica_xpto_os/internal/config"

	"go.uber.org/zap"
)

func TestNewAWSConfig_StaticCredentials(t *testing.T) {
	cfg, err := NewAWSConfig(context.Background(), appconfig.StorageConfig{
		Region:          "sa-east-1",
		AccessKeyID:     "local",
		SecretAccessKey: "local",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Region != "sa-east-1" {
		t.Fatalf("expected region sa-east-1, got %q", cfg.Region)
	}
	creds, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("unexpected credentials err: %v", err)
	}
	if creds.AccessKeyID != "local" || creds.SecretAccessKey != "local" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestConnectDynamoDB_CustomEndpoint(t *testing.T) {
	client, err := ConnectDynamoDB(context.Background(), appconfig.StorageConfig{
		Region:          "us-east-1",
		Endpoint:        "http://localhost:8000",
		AccessKeyID:     "local",
		SecretAccessKey: "local",
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := client.Options().BaseEndpoint; got == nil || *got != "http://localhost:8000" {
		t.Fatalf("expected base endpoint to be set, got %v", got)
	}
}

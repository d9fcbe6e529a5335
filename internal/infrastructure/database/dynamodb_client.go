package database

import (
	"context"
	"fmt"

	appconfig "mecanica_xpto_os/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// ConnectDynamoDB builds a DynamoDB client from the storage settings. A
// custom endpoint (DynamoDB Local, LocalStack) overrides the regional one.
func ConnectDynamoDB(ctx context.Context, cfg appconfig.StorageConfig, log *zap.Logger) (*dynamodb.Client, error) {
	awsCfg, err := NewAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamodb config: %w", err)
	}

	var opts []func(*dynamodb.Options)
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	log.Info("[storage][dynamodb] client ready", zap.String("region", awsCfg.Region), zap.String("endpoint", cfg.Endpoint))
	return dynamodb.NewFromConfig(awsCfg, opts...), nil
}

// NewAWSConfig uses static credentials when both keys are set and the
// default provider chain otherwise.
func NewAWSConfig(ctx context.Context, cfg appconfig.StorageConfig) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(creds))
	}
	return config.LoadDefaultConfig(ctx, loadOpts...)
}

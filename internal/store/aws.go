package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// AWSConfig holds the settings used to reach SSM
type AWSConfig struct {
	Region      string
	Profile     string
	AssumeRole  string
	EndpointURL string

	// Static credentials, mainly for local SSM emulators
	AccessKeyID     string
	SecretAccessKey string
}

// LoadAWSConfig builds an aws.Config from the shared config chain, with
// optional static credentials and role assumption.
func LoadAWSConfig(ctx context.Context, cfg AWSConfig) (aws.Config, error) {
	var configOpts []func(*awsconfig.LoadOptions) error

	if cfg.Region != "" {
		configOpts = append(configOpts, awsconfig.WithRegion(cfg.Region))
	}

	if cfg.Profile != "" {
		configOpts = append(configOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		configOpts = append(configOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.AssumeRole != "" {
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(awsCfg), cfg.AssumeRole,
			func(o *stscreds.AssumeRoleOptions) {
				o.RoleSessionName = fmt.Sprintf("gwconfig-%d", time.Now().Unix())
			})
		awsCfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return awsCfg, nil
}

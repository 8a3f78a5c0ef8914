package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	dserrors "github.com/systmms/gwconfig/internal/errors"
	"github.com/systmms/gwconfig/internal/logging"
)

// SSMClientAPI defines the SSM Parameter Store operations used by SSMStore.
// This allows for mocking in tests.
type SSMClientAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
}

// SSMStore keeps parameters as SecureString values in SSM Parameter Store
type SSMStore struct {
	client SSMClientAPI
	logger *logging.Logger
}

// SSMStoreOption is a functional option for configuring an SSMStore
type SSMStoreOption func(*SSMStore)

// WithLogger sets the logger used for debug records
func WithLogger(logger *logging.Logger) SSMStoreOption {
	return func(s *SSMStore) {
		s.logger = logger
	}
}

// NewSSMStore creates a store backed by client
func NewSSMStore(client SSMClientAPI, opts ...SSMStoreOption) *SSMStore {
	s := &SSMStore{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewSSMStoreFromConfig loads AWS configuration and creates an SSM client
func NewSSMStoreFromConfig(ctx context.Context, cfg AWSConfig, opts ...SSMStoreOption) (*SSMStore, error) {
	awsCfg, err := LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := ssm.NewFromConfig(awsCfg, func(o *ssm.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}
	})
	return NewSSMStore(client, opts...), nil
}

// Fetch returns the decrypted value of name
func (s *SSMStore) Fetch(ctx context.Context, name string) (string, bool, error) {
	s.logger.Debug("Fetching parameter from SSM: %s", name)

	result, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		if isParameterNotFoundError(err) {
			return "", false, nil
		}
		return "", false, dserrors.StoreError("get", name, err)
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return "", false, fmt.Errorf("parameter %s has no value", name)
	}

	return *result.Parameter.Value, true, nil
}

// Put writes value as an encrypted SecureString, replacing any previous value
func (s *SSMStore) Put(ctx context.Context, name, value string) error {
	s.logger.Debug("Writing parameter to SSM: %s", name)

	_, err := s.client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(name),
		Value:     aws.String(value),
		Type:      types.ParameterTypeSecureString,
		Overwrite: aws.Bool(true),
	})
	if err != nil {
		return dserrors.StoreError("put", name, err)
	}
	return nil
}

// isParameterNotFoundError checks if the error is a parameter not found error
func isParameterNotFoundError(err error) bool {
	var notFound *types.ParameterNotFound
	if errors.As(err, &notFound) {
		return true
	}
	return strings.Contains(err.Error(), "ParameterNotFound")
}

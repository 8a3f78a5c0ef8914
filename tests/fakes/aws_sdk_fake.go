package fakes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// FakeSSMClient is an in-memory implementation of store.SSMClientAPI
type FakeSSMClient struct {
	mu sync.Mutex

	// Parameters maps parameter names to their data
	Parameters map[string]*ParameterData
	// Errors maps parameter names to errors returned by GetParameter
	Errors map[string]error
	// PutErrors maps parameter names to errors returned by PutParameter
	PutErrors map[string]error
	// PutCalls records every PutParameter input in call order
	PutCalls []*ssm.PutParameterInput
	// GetParameterFunc allows custom behavior for GetParameter
	GetParameterFunc func(ctx context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error)
}

// ParameterData holds the data for a mock SSM parameter
type ParameterData struct {
	Type             ssmtypes.ParameterType
	Value            string
	Version          int64
	LastModifiedDate time.Time
}

// NewFakeSSMClient creates a new mock SSM client
func NewFakeSSMClient() *FakeSSMClient {
	return &FakeSSMClient{
		Parameters: make(map[string]*ParameterData),
		Errors:     make(map[string]error),
		PutErrors:  make(map[string]error),
	}
}

// AddSecureStringParameter adds a SecureString parameter to the mock client
func (f *FakeSSMClient) AddSecureStringParameter(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Parameters[name] = &ParameterData{
		Type:             ssmtypes.ParameterTypeSecureString,
		Value:            value,
		Version:          1,
		LastModifiedDate: time.Now(),
	}
}

// AddError configures the mock to return an error for a specific parameter
func (f *FakeSSMClient) AddError(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[name] = err
}

// Value returns the stored value of name
func (f *FakeSSMClient) Value(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.Parameters[name]
	if !ok {
		return "", false
	}
	return data.Value, true
}

// GetParameter mocks the GetParameter operation
func (f *FakeSSMClient) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	if f.GetParameterFunc != nil {
		return f.GetParameterFunc(ctx, params)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	paramName := aws.ToString(params.Name)

	if err, exists := f.Errors[paramName]; exists {
		return nil, err
	}

	data, exists := f.Parameters[paramName]
	if !exists {
		return nil, &ssmtypes.ParameterNotFound{
			Message: aws.String(fmt.Sprintf("Parameter %s not found", paramName)),
		}
	}

	value := data.Value
	if data.Type == ssmtypes.ParameterTypeSecureString && !aws.ToBool(params.WithDecryption) {
		value = "AQICAHh-encrypted-blob"
	}

	return &ssm.GetParameterOutput{
		Parameter: &ssmtypes.Parameter{
			Name:             params.Name,
			Type:             data.Type,
			Value:            aws.String(value),
			Version:          data.Version,
			LastModifiedDate: aws.Time(data.LastModifiedDate),
			ARN:              aws.String(fmt.Sprintf("arn:aws:ssm:us-east-1:123456789012:parameter%s", paramName)),
		},
	}, nil
}

// PutParameter mocks the PutParameter operation
func (f *FakeSSMClient) PutParameter(ctx context.Context, params *ssm.PutParameterInput, optFns ...func(*ssm.Options)) (*ssm.PutParameterOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	paramName := aws.ToString(params.Name)
	f.PutCalls = append(f.PutCalls, params)

	if err, exists := f.PutErrors[paramName]; exists {
		return nil, err
	}

	existing, exists := f.Parameters[paramName]
	if exists && !aws.ToBool(params.Overwrite) {
		return nil, &ssmtypes.ParameterAlreadyExists{
			Message: aws.String(fmt.Sprintf("Parameter %s already exists", paramName)),
		}
	}

	version := int64(1)
	if exists {
		version = existing.Version + 1
	}
	f.Parameters[paramName] = &ParameterData{
		Type:             params.Type,
		Value:            aws.ToString(params.Value),
		Version:          version,
		LastModifiedDate: time.Now(),
	}

	return &ssm.PutParameterOutput{
		Version: version,
		Tier:    ssmtypes.ParameterTierStandard,
	}, nil
}

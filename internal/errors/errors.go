package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// CommandError represents a failed external command such as the update script
type CommandError struct {
	Command    string
	ExitCode   int
	Message    string
	Suggestion string
	Err        error
}

func (e CommandError) Error() string {
	msg := fmt.Sprintf("Command '%s' failed", e.Command)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit code: %d)", e.ExitCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

func (e CommandError) Unwrap() error {
	return e.Err
}

// StoreError wraps a parameter store failure with an SSM-specific suggestion.
// The parameter name is included, the value never is.
func StoreError(operation, name string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("Parameter store %s failed for %s", operation, name),
		Details:    err.Error(),
		Suggestion: storeSuggestion(operation, err),
		Err:        err,
	}
}

// storeSuggestion maps SSM error codes to a next step for the operator
func storeSuggestion(operation string, err error) string {
	code := ""
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code = strings.ToLower(apiErr.ErrorCode())
	}
	errStr := strings.ToLower(err.Error())

	match := func(s string) bool {
		return strings.Contains(code, s) || strings.Contains(errStr, s)
	}

	switch {
	case match("accessdenied"):
		if operation == "put" {
			return "Check IAM permissions: ssm:PutParameter and kms:Encrypt for SecureString parameters"
		}
		return "Check IAM permissions: ssm:GetParameter and kms:Decrypt for SecureString parameters"
	case match("invalidkeyid"), match("kms"):
		return "The KMS key for SecureString parameters may not exist or you lack permission to use it"
	case match("throttl"):
		return "Request was throttled by SSM. Wait a moment and run gwconfig again"
	case match("parameterlimitexceeded"):
		return "The account reached its parameter limit. Remove unused parameters or use the advanced tier"
	case match("validationexception"), match("invalid"):
		return "Parameter names may only contain a-z, A-Z, 0-9, '.', '-', '_' and '/'"
	case match("credentials"), match("no valid providers"):
		return "Configure AWS credentials: 'aws configure' or set AWS_PROFILE"
	case match("region"):
		return "Check that --region matches the region where the gateway parameters live"
	case match("no such host"), match("connection refused"), match("timeout"):
		return "Unable to reach SSM. Check your network connection and endpoint settings"
	default:
		return "Check AWS credentials, region, and IAM permissions for SSM Parameter Store"
	}
}

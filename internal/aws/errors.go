package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// Error codes returned when a resource is already gone. Teardown treats
// these as success so a partially deleted rig can still be cleaned up.
var notFoundCodes = map[string]struct{}{
	"NoSuchEntity":                {}, // IAM roles, policies, users, profiles
	"InvalidGroup.NotFound":       {},
	"InvalidKeyPair.NotFound":     {},
	"InvalidInstanceID.NotFound":  {},
	"ResourceNotFoundException":   {}, // EKS, Secrets Manager
	"RepositoryNotFoundException": {}, // ECR
	"NoSuchBucket":                {},
	"NoSuchKey":                   {},
	"ParameterNotFound":           {},
}

// IsNotFound reports whether err means the resource does not exist.
func IsNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	_, ok := notFoundCodes[apiErr.ErrorCode()]
	return ok
}

// IsAlreadyExists reports whether err means the resource already exists,
// which a retried `up` reconciles instead of failing on.
func IsAlreadyExists(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "EntityAlreadyExists", "InvalidKeyPair.Duplicate", "InvalidGroup.Duplicate":
		return true
	}
	return false
}

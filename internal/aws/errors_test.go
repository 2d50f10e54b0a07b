package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func apiError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: "test"}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"iam role gone", apiError("NoSuchEntity"), true},
		{"security group gone", apiError("InvalidGroup.NotFound"), true},
		{"key pair gone", apiError("InvalidKeyPair.NotFound"), true},
		{"instance gone", apiError("InvalidInstanceID.NotFound"), true},
		{"eks cluster gone", apiError("ResourceNotFoundException"), true},
		{"ecr repo gone", apiError("RepositoryNotFoundException"), true},
		{"bucket gone", apiError("NoSuchBucket"), true},
		{"wrapped", fmt.Errorf("failed to delete: %w", apiError("NoSuchEntity")), true},
		{"access denied", apiError("AccessDenied"), false},
		{"throttled", apiError("Throttling"), false},
		{"plain error", errors.New("dial tcp: timeout"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}

func TestIsAlreadyExists(t *testing.T) {
	assert.True(t, IsAlreadyExists(apiError("EntityAlreadyExists")))
	assert.True(t, IsAlreadyExists(apiError("InvalidKeyPair.Duplicate")))
	assert.True(t, IsAlreadyExists(apiError("InvalidGroup.Duplicate")))
	assert.False(t, IsAlreadyExists(apiError("NoSuchEntity")))
	assert.False(t, IsAlreadyExists(errors.New("boom")))
}

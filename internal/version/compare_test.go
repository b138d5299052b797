package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name          string
		engineVersion string
		clientVersion string
		expectError   bool
		errorContains string
	}{
		{
			name:          "exact match",
			engineVersion: "1.2.0",
			clientVersion: "1.2.0",
			expectError:   false,
		},
		{
			name:          "engine patch higher",
			engineVersion: "1.2.1",
			clientVersion: "1.2.0",
			expectError:   false,
		},
		{
			name:          "client patch higher",
			engineVersion: "1.2.0",
			clientVersion: "1.2.5",
			expectError:   false,
		},
		{
			name:          "engine minor higher",
			engineVersion: "1.3.0",
			clientVersion: "1.2.0",
			expectError:   true,
			errorContains: "minor version mismatch",
		},
		{
			name:          "engine minor lower",
			engineVersion: "1.1.0",
			clientVersion: "1.2.0",
			expectError:   true,
			errorContains: "minor version mismatch",
		},
		{
			name:          "major version differs",
			engineVersion: "2.0.0",
			clientVersion: "1.2.0",
			expectError:   true,
			errorContains: "major version mismatch",
		},
		{
			name:          "engine is main",
			engineVersion: "main",
			clientVersion: "1.2.0",
			expectError:   false,
		},
		{
			name:          "client is main",
			engineVersion: "1.2.0",
			clientVersion: "main",
			expectError:   false,
		},
		{
			name:          "v prefix on both",
			engineVersion: "v1.2.0",
			clientVersion: "v1.2.0",
			expectError:   false,
		},
		{
			name:          "prerelease version",
			engineVersion: "1.2.0-alpha",
			clientVersion: "1.2.0",
			expectError:   false,
		},
		{
			name:          "invalid engine version",
			engineVersion: "not-a-version",
			clientVersion: "1.2.0",
			expectError:   true,
			errorContains: "invalid engine version",
		},
		{
			name:          "invalid client version",
			engineVersion: "1.2.0",
			clientVersion: "not-a-version",
			expectError:   true,
			errorContains: "invalid client version",
		},
		{
			name:          "empty client version",
			engineVersion: "1.2.0",
			clientVersion: "",
			expectError:   true,
			errorContains: "invalid client version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCompatibility(tt.engineVersion, tt.clientVersion)

			if tt.expectError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	v := GetVersion()
	assert.Equal(t, Version, v)
}

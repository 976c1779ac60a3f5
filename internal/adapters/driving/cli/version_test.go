package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Short(t *testing.T) {
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	SetVersion("test-version-1.0.0")
	defer func() { version = originalVersion }()

	stdout, _, err := execute(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, stdout, "splitengine version test-version-1.0.0")
}

func TestVersionCmd_SkipsInitializer(t *testing.T) {
	called := false
	SetInitializer(func(GlobalOptions) (*Services, error) {
		called = true
		return &Services{}, nil
	})
	defer SetInitializer(nil)

	_, _, err := execute(t, "version")

	assert.NoError(t, err)
	assert.False(t, called)
}

package gitinfo

import (
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForDirNonRepo(t *testing.T) {
	if sum := ForDir(t.TempDir()); sum != nil {
		t.Fatalf("expected nil summary outside a repository, got %+v", sum)
	}
}

func TestForDirFreshRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	sum := ForDir(dir)
	require.NotNil(t, sum)
	assert.Equal(t, "master", sum.Branch)
	assert.False(t, sum.Detached)
}

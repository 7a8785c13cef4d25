package drafts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Submission drops its draft best-effort; with no cache configured the drop
// must be a silent no-op, never a submission failure.
func TestDeleteWithoutCacheIsNoOp(t *testing.T) {
	assert.NoError(t, Delete(context.Background(), "68a1f2"))
}

func TestSaveAndLoadRequireCache(t *testing.T) {
	assert.ErrorIs(t, Save(context.Background(), "68a1f2", map[string]string{"a": "b"}), ErrCacheUnavailable)

	var out map[string]string
	assert.ErrorIs(t, Load(context.Background(), "68a1f2", &out), ErrCacheUnavailable)
}

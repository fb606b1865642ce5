package marker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("absent marker counts as zero", func(t *testing.T) {
		s := NewStore(filepath.Join(t.TempDir(), "dist", ".generation.json"))
		assert.Equal(t, int64(0), s.Current().Value)
	})

	t.Run("bump increments and persists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dist", ".generation.json")
		stamp := time.UnixMilli(1700000000000)
		s := NewStore(path)
		s.now = func() time.Time { return stamp }

		gen, err := s.Bump()
		require.NoError(t, err)
		assert.Equal(t, int64(1), gen.Value)
		assert.Equal(t, stamp.UnixMilli(), gen.UnixMilli)

		gen, err = s.Bump()
		require.NoError(t, err)
		assert.Equal(t, int64(2), gen.Value)

		reread := NewStore(path)
		assert.Equal(t, int64(2), reread.Current().Value)
	})

	t.Run("marker file keeps the external shape", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".generation.json")
		s := NewStore(path)

		_, err := s.Bump()
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var raw map[string]int64
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.Len(t, raw, 2)
		assert.Contains(t, raw, "v")
		assert.Contains(t, raw, "t")
	})

	t.Run("unparsable marker resets to zero", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".generation.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

		s := NewStore(path)
		assert.Equal(t, int64(0), s.Current().Value)

		gen, err := s.Bump()
		require.NoError(t, err)
		assert.Equal(t, int64(1), gen.Value)
	})
}

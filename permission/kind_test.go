package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindKeyRoundTrip(t *testing.T) {
	// 每个枚举值都有键，且键能反查回同一枚举值
	for k := Kind(0); k < kindCount; k++ {
		key := k.Key()
		require.NotEmpty(t, key, "枚举 %d 缺少键", int(k))

		got, err := KindOf(key)
		require.NoError(t, err)
		assert.Equal(t, k, got)

		assert.NotEmpty(t, k.Label())
		assert.True(t, k.Valid())
	}
}

func TestKindKeysUnique(t *testing.T) {
	seen := make(map[string]Kind)
	for k := Kind(0); k < kindCount; k++ {
		key := k.Key()
		prev, dup := seen[key]
		require.Falsef(t, dup, "键 %q 被 %v 和 %v 重复使用", key, prev, k)
		seen[key] = k
	}
	assert.Len(t, seen, int(kindCount))
}

func TestKindOfUnknown(t *testing.T) {
	_, err := KindOf("not-a-permission")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCapability)

	_, err = KindOf("")
	assert.ErrorIs(t, err, ErrUnknownCapability)

	// 大小写敏感
	_, err = KindOf("Order:Manage")
	assert.ErrorIs(t, err, ErrUnknownCapability)
}

func TestKindsSortedAndComplete(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, int(kindCount))
	for i := 1; i < len(kinds); i++ {
		assert.Less(t, kinds[i-1].Key(), kinds[i].Key())
	}
}

func TestKindInvalid(t *testing.T) {
	bad := Kind(999)
	assert.False(t, bad.Valid())
	assert.Empty(t, bad.Key())
	assert.Contains(t, bad.String(), "999")
}

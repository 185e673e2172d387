package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	require.Nil(t, CSV(""))
	require.Equal(t, []string{"a"}, CSV("a"))
	require.Equal(t, []string{"a", "b"}, CSV("a, b"))
	require.Equal(t, []string{"a", "b"}, CSV("a,,b,"))
}

func TestKeyPairs(t *testing.T) {
	keys := KeyPairs("ops-1:secret-one,ops-2:secret-two")
	require.Len(t, keys, 2)
	require.Equal(t, []byte("secret-one"), keys["ops-1"])
	require.Equal(t, []byte("secret-two"), keys["ops-2"])

	// Malformed pairs are skipped, not fatal.
	keys = KeyPairs("broken,also:,:nope,ok:fine")
	require.Len(t, keys, 1)
	require.Equal(t, []byte("fine"), keys["ok"])

	require.Empty(t, KeyPairs(""))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("AROMASHOP_TEST_STR", "value")
	require.Equal(t, "value", EnvDefault("AROMASHOP_TEST_STR", "def"))
	require.Equal(t, "def", EnvDefault("AROMASHOP_TEST_MISSING", "def"))

	t.Setenv("AROMASHOP_TEST_INT", "42")
	require.Equal(t, 42, EnvIntDefault("AROMASHOP_TEST_INT", 7))
	require.Equal(t, 7, EnvIntDefault("AROMASHOP_TEST_MISSING", 7))

	t.Setenv("AROMASHOP_TEST_BAD", "not-a-number")
	require.Equal(t, 7, EnvIntDefault("AROMASHOP_TEST_BAD", 7))
	require.EqualValues(t, 9, EnvInt64Default("AROMASHOP_TEST_BAD", 9))
}

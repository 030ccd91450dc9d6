package limit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllow(t *testing.T) {
	l := New(0.001, 2)
	require.True(t, l.Allow("10.0.0.1"))
	require.True(t, l.Allow("10.0.0.1"))
	require.False(t, l.Allow("10.0.0.1"), "burst exhausted")
	require.True(t, l.Allow("10.0.0.2"), "clients have their own bucket")
}

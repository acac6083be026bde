package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{"client", "salon", "professional"} {
		role, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, role.String())
		assert.True(t, role.Valid())
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "admin", "CLIENT", "barber"} {
		role, err := Parse(s)
		assert.Error(t, err, "input %q", s)
		assert.Equal(t, RoleUnknown, role)
		assert.False(t, role.Valid())
	}
}

package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/config"
)

func TestResolveAdminTokenPrefersEnv(t *testing.T) {
	token, err := ResolveAdminToken(&config.Config{ShopifyAdminToken: "shpat_env"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "shpat_env", token)
}

func TestResolveAdminTokenNoSources(t *testing.T) {
	_, err := ResolveAdminToken(&config.Config{}, nil)
	assert.ErrorIs(t, err, config.ErrMissingCredentials)
}

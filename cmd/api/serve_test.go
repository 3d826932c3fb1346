package main

import (
	"testing"

	"nymble-website/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSiteContactEmail(t *testing.T) {
	site, err := loadSite(&config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "hello@nymbleai.com", site.Meta.ContactEmail)

	site, err = loadSite(&config.Config{ContactEmail: "sales@nymbleai.com"})
	require.NoError(t, err)
	assert.Equal(t, "sales@nymbleai.com", site.Meta.ContactEmail)
}

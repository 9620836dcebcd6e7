package hostfuncs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityCheckerDefaultsDenyGated(t *testing.T) {
	c := NewCapabilityChecker()

	for _, ns := range GatedNamespaces {
		assert.False(t, c.Allowed(ns), "namespace %q must start denied", ns)
	}
	assert.True(t, c.Allowed(NamespaceLog))
	assert.True(t, c.Allowed(NamespacePins))
	assert.True(t, c.Allowed(NamespaceMeta))
}

func TestCapabilityCheckerSetPermissions(t *testing.T) {
	c := NewCapabilityChecker()
	c.SetPermissions([]string{"http", "vars"})

	assert.True(t, c.Allowed(NamespaceHTTP))
	assert.True(t, c.Allowed(NamespaceVars))
	assert.False(t, c.Allowed(NamespaceCache))
	assert.False(t, c.Allowed(NamespaceStorage))

	// Replacing permissions revokes earlier grants.
	c.SetPermissions([]string{"cache"})
	assert.False(t, c.Allowed(NamespaceHTTP))
	assert.True(t, c.Allowed(NamespaceCache))
}

func TestCapabilityCheckerUnknownPermissionGrantsNothing(t *testing.T) {
	c := NewCapabilityChecker()
	c.SetPermissions([]string{"htpp", "network"})

	for _, ns := range GatedNamespaces {
		assert.False(t, c.Allowed(ns))
	}
}

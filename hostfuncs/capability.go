package hostfuncs

// Namespaces of the import surface. The first three are always available:
// a node that cannot log, read pins or see its own identity is not useful to
// anyone. The rest must be declared in the node definition's permissions.
const (
	NamespaceLog     = "log"
	NamespacePins    = "pins"
	NamespaceMeta    = "meta"
	NamespaceVars    = "vars"
	NamespaceCache   = "cache"
	NamespaceStorage = "storage"
	NamespaceModels  = "models"
	NamespaceHTTP    = "http"
	NamespaceStream  = "stream"
	NamespaceAuth    = "auth"
)

// GatedNamespaces lists the namespaces that require a declared permission.
var GatedNamespaces = []string{
	NamespaceVars,
	NamespaceCache,
	NamespaceStorage,
	NamespaceModels,
	NamespaceHTTP,
	NamespaceStream,
	NamespaceAuth,
}

// CapabilityChecker gates host calls on the permissions a node declared.
// Denial is in-band: the gated call returns its empty value (or the HTTP
// denial code) instead of trapping, so a node missing a permission degrades
// rather than kills the run.
//
// Permissions become known only after the host has read the node
// definitions, which happens after instantiation; SetPermissions installs
// them late. Until then everything gated is denied.
type CapabilityChecker struct {
	granted map[string]struct{}
}

// NewCapabilityChecker returns a checker with no gated permissions granted.
func NewCapabilityChecker() *CapabilityChecker {
	return &CapabilityChecker{granted: make(map[string]struct{})}
}

// SetPermissions replaces the granted set with the given namespaces.
// Unknown names are kept but never match a gate, so a typo in a definition
// denies rather than grants.
func (c *CapabilityChecker) SetPermissions(perms []string) {
	granted := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		granted[p] = struct{}{}
	}
	c.granted = granted
}

// Allowed reports whether the namespace may be called. Ungated namespaces
// are always allowed.
func (c *CapabilityChecker) Allowed(namespace string) bool {
	switch namespace {
	case NamespaceLog, NamespacePins, NamespaceMeta:
		return true
	}
	_, ok := c.granted[namespace]
	return ok
}

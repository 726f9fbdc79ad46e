package agent

// Registry is an in-memory address book of known peers' public
// identities, keyed by name, with a secondary lookup by fingerprint.
// It has no concept of trust or verification; it is purely a lookup
// table a caller populates from whatever channel it already trusts
// (a CLI flag, a loaded file, an out-of-band exchange).
type Registry struct {
	byName        map[string]PublicIdentity
	byFingerprint map[string]PublicIdentity
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:        make(map[string]PublicIdentity),
		byFingerprint: make(map[string]PublicIdentity),
	}
}

// Register adds or replaces identity under its Name.
func (r *Registry) Register(identity PublicIdentity) {
	if previous, ok := r.byName[identity.Name]; ok {
		delete(r.byFingerprint, previous.Fingerprint())
	}
	r.byName[identity.Name] = identity
	r.byFingerprint[identity.Fingerprint()] = identity
}

// Get looks up a registered identity by name.
func (r *Registry) Get(name string) (PublicIdentity, bool) {
	identity, ok := r.byName[name]
	return identity, ok
}

// GetByFingerprint looks up a registered identity by its fingerprint
// (see PublicIdentity.Fingerprint).
func (r *Registry) GetByFingerprint(fingerprint string) (PublicIdentity, bool) {
	identity, ok := r.byFingerprint[fingerprint]
	return identity, ok
}

// List returns every registered identity, in no particular order.
func (r *Registry) List() []PublicIdentity {
	result := make([]PublicIdentity, 0, len(r.byName))
	for _, identity := range r.byName {
		result = append(result, identity)
	}
	return result
}

// Remove deletes the identity registered under name, reporting whether
// one existed.
func (r *Registry) Remove(name string) bool {
	identity, ok := r.byName[name]
	if !ok {
		return false
	}
	delete(r.byName, name)
	delete(r.byFingerprint, identity.Fingerprint())
	return true
}

package status

// Branch is the branch state reported by the branch.* headers.
type Branch struct {
	// Name is empty when HEAD is detached.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// OID is empty on an unborn branch with no commits.
	OID string `json:"oid,omitempty" yaml:"oid,omitempty"`
	// Upstream is empty when no upstream is configured.
	Upstream string `json:"upstream,omitempty" yaml:"upstream,omitempty"`
	// Ahead and Behind are only meaningful when Upstream is set.
	Ahead  int `json:"ahead" yaml:"ahead"`
	Behind int `json:"behind" yaml:"behind"`
}

// IsDetached reports whether HEAD points at a commit instead of a branch.
func (b Branch) IsDetached() bool { return b.Name == "" }

// IsInitial reports whether the branch has no commits yet.
func (b Branch) IsInitial() bool { return b.OID == "" }

// HasUpstream reports whether an upstream tracking ref is configured.
func (b Branch) HasUpstream() bool { return b.Upstream != "" }

// Stash is the stash state reported by the stash header.
type Stash struct {
	Count int `json:"count" yaml:"count"`
}

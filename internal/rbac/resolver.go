package rbac

// OverrideSource provides the current override of a role. *Store implements it.
type OverrideSource interface {
	Get(r Role) (Override, bool)
}

// Resolver computes effective permissions from the base table and an OverrideSource.
type Resolver struct {
	overrides OverrideSource
}

// NewResolver creates a resolver. A nil source resolves every role to its base record.
func NewResolver(overrides OverrideSource) *Resolver {
	return &Resolver{overrides: overrides}
}

// Resolve returns the effective permissions of r.
// It panics for a role outside the registry.
func (res *Resolver) Resolve(r Role) Record {
	base := BaseOf(r)

	o, ok := res.lookup(r)
	countResolution(r, ok)

	if !ok {
		return base
	}

	return Merge(base, o.Patch)
}

func (res *Resolver) lookup(r Role) (Override, bool) {
	if res == nil || res.overrides == nil {
		return Override{}, false
	}

	return res.overrides.Get(r)
}

// Explanation describes how the effective permissions of a role came about.
type Explanation struct {
	Role       Role         `json:"role"`
	Rank       int          `json:"rank"`
	Base       Record       `json:"base"`
	Effective  Record       `json:"effective"`
	Override   *Override    `json:"override,omitempty"`
	Overridden []Capability `json:"overridden"`
}

// Explain resolves r and reports the base record, the override and which
// capabilities differ from the base because of it.
func (res *Resolver) Explain(r Role) Explanation {
	e := Explanation{
		Role:       r,
		Rank:       r.Rank(),
		Base:       BaseOf(r),
		Overridden: []Capability{},
	}

	e.Effective = res.Resolve(r)

	if o, ok := res.lookup(r); ok {
		e.Override = &o
	}

	for _, c := range Capabilities() {
		if e.Base.Has(c) != e.Effective.Has(c) {
			e.Overridden = append(e.Overridden, c)
		}
	}

	return e
}

// Package domain holds the identity types shared by the request pipeline,
// the authorization gate, and the auth service.
package domain

// Identity is the resolved caller of a request: the token subject and the
// admin flag as it was at issuance time.
type Identity struct {
	ID      string
	IsAdmin bool
}

// RequestContext is the per-request bundle of resolved identity, network
// origin, and device fingerprint. Built fresh for every request and never
// persisted.
type RequestContext struct {
	caller        *Identity
	SourceAddress string
	Device        string
}

// NewRequestContext returns a RequestContext for an authenticated caller when
// caller is non-nil, or an anonymous one when caller is nil.
func NewRequestContext(caller *Identity, sourceAddress, device string) RequestContext {
	var c *Identity
	if caller != nil {
		cp := *caller
		c = &cp
	}
	return RequestContext{caller: c, SourceAddress: sourceAddress, Device: device}
}

// Caller returns the caller identity and true when the request is
// authenticated. Anonymous requests return the zero Identity and false, so
// every consumer has to handle both variants explicitly.
func (rc RequestContext) Caller() (Identity, bool) {
	if rc.caller == nil {
		return Identity{}, false
	}
	return *rc.caller, true
}

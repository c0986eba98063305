package service

// HeaderAuthorization is the header the session scheduler manages.
const HeaderAuthorization = "Authorization"

// HeaderRegistry is the mutable header set stamped on every outbound backend
// request. It is populated on successful authentication and cleared on
// logout or expiry. Constructor-injected rather than process-global so the
// transport owns exactly one instance.
type HeaderRegistry interface {
	// SetHeader overwrites any existing value for name. No header syntax
	// validation is performed; callers are responsible for correctness.
	SetHeader(name, value string)

	// RemoveHeader deletes the header.
	RemoveHeader(name string)

	// Headers returns a snapshot of the current mapping.
	Headers() map[string]string
}

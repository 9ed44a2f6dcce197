package cmcd

import "github.com/google/uuid"

// MediaIdentity describes the media item a Configuration is created for. It
// carries only what factories need; richer item metadata stays with the
// caller.
type MediaIdentity struct {
	// ID is the caller's identifier for the content. When non-empty it
	// becomes the Configuration's content id.
	ID string
}

// Factory builds the Configuration under which a new playback session will
// report. Factories are consulted once per session, at session start.
type Factory interface {
	CreateConfiguration(identity MediaIdentity) (*Configuration, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(identity MediaIdentity) (*Configuration, error)

// CreateConfiguration calls f.
func (f FactoryFunc) CreateConfiguration(identity MediaIdentity) (*Configuration, error) {
	return f(identity)
}

// DefaultFactory is the stateless default construction strategy: a freshly
// generated random session id per call (a new Configuration is a new
// session; two calls never share one), the identity's id as content id with
// DefaultContentID as the fallback, and DefaultRequestConfig as the policy.
// Calls are independent; nothing is cached between them.
var DefaultFactory Factory = FactoryFunc(newDefaultConfiguration)

func newDefaultConfiguration(identity MediaIdentity) (*Configuration, error) {
	contentID := DefaultContentID
	if identity.ID != "" {
		contentID = identity.ID
	}
	return NewConfiguration(uuid.New().String(), contentID, DefaultRequestConfig)
}

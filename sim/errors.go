package sim

import "errors"

// ErrConstruction is wrapped by every error New and NewParticle return.
var ErrConstruction = errors.New("invalid simulation parameters")

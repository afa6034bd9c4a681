package octree

import "errors"

// ErrInvalidParameters is returned by Build when ncrit or order is out of
// range. It is a configuration error, not a runtime one: valid
// parameters never start failing once Build has accepted them once.
var ErrInvalidParameters = errors.New("octree: invalid parameters")

// ErrInvalidGeometry is returned by Build when a particle position lies
// outside the supplied root bounds.
var ErrInvalidGeometry = errors.New("octree: particle outside root bounds")

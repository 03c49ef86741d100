package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string, used as the run identifier of one invocation.
var NewULID = func() string {
	return ulid.Make().String()
}

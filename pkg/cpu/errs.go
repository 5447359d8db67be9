package cpu

import "errors"

// ErrRegistryDesync is returned if PickNext hands back a process the
// dispatcher's registry no longer holds — a contract violation between a
// scheduler and the registry it was constructed against.
var ErrRegistryDesync = errors.New("cpu: scheduler returned a process absent from the registry")

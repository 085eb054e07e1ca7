package core

import "errors"

// ErrConfiguration is wrapped by every error Options.Validate returns.
var ErrConfiguration = errors.New("core: invalid configuration")

// ErrContractViolation marks a caller error that debug builds would assert
// on (e.g. a literal and its negation within one streaming clause, or
// PushLiteral without StartClause). Such a clause is rejected rather than
// producing a silently wrong result; a literal repeated within one
// streaming clause is not rejected but collapsed to a single occurrence.
var ErrContractViolation = errors.New("core: contract violation")

// ErrWrongStatus names the error for calling decide/propagate while the
// solver is not in the UNDEF status, or decide with a non-empty
// propagation queue. No function in this package returns it: Decide,
// DecideLiteral and Propagate check neither the status nor the queue.
var ErrWrongStatus = errors.New("core: operation requires UNDEF status")

package contract

import "errors"

var (
	ErrContractNotFound       = errors.New("contract not found")
	ErrNoActiveContract       = errors.New("employee has no active contract")
	ErrContractTerminated     = errors.New("contract is terminated")
	ErrContractNotSuspended   = errors.New("contract is not suspended")
	ErrContractAlreadyActive  = errors.New("contract is already active")
	ErrSalaryBelowAccounting  = errors.New("real salary must be at least the accounting salary")
	ErrInvalidSuspensionRange = errors.New("suspension end must not precede its start")
)

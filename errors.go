package sdk

import "fmt"

// ContractViolationError reports guest code misusing the execution contract,
// such as mutating a context after Finish or reentering the run export. The
// violation is surfaced in the run's error result instead of trapping the
// module.
type ContractViolationError struct {
	Op     string
	Reason string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("contract violation in %s: %s", e.Op, e.Reason)
}

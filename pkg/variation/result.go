package variation

// Result is the tri-state outcome of an optional protocol operation:
// supported and succeeded, supported but failed, or not implemented by
// this instrument. Values match the wire protocol's result codes.
type Result int32

const (
	ResultOK             Result = 0
	ResultFalse          Result = 1
	ResultNotImplemented Result = -1
)

// Ok reports supported-success.
func (r Result) Ok() bool {
	return r == ResultOK
}

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultFalse:
		return "false"
	case ResultNotImplemented:
		return "not implemented"
	default:
		return "unknown result"
	}
}

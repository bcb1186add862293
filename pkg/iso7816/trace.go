package iso7816

// Transaction is one C-APDU and the R-APDU the card sent back.
type Transaction struct {
	Command  *CommandAPDU
	Response *ResponseAPDU
}

// IsSuccess checks if the transaction ended with a successful status.
// It returns false if the response is missing.
func (t *Transaction) IsSuccess() bool {
	if t.Response == nil {
		return false
	}
	return t.Response.Status.IsSuccess()
}

// Trace is the chronological list of transactions that fulfilled one logical
// command, including GET RESPONSE and Le corrections issued by the Client.
type Trace []Transaction

// Last returns the final transaction of the trace.
// Returns nil if the trace is empty.
func (t Trace) Last() *Transaction {
	if len(t) == 0 {
		return nil
	}
	return &t[len(t)-1]
}

// IsSuccess reports whether the final transaction succeeded. Intermediate
// 61XX steps do not matter.
func (t Trace) IsSuccess() bool {
	last := t.Last()
	if last == nil {
		return false
	}
	return last.IsSuccess()
}

// Data returns the response data of the final transaction, or nil.
func (t Trace) Data() []byte {
	last := t.Last()
	if last == nil || last.Response == nil {
		return nil
	}
	return last.Response.Data
}

// Err returns a *StatusError when the trace did not end in success.
func (t Trace) Err() error {
	if t.IsSuccess() {
		return nil
	}
	var ins InsCode
	var sw StatusWord
	if len(t) > 0 && t[0].Command != nil {
		ins = t[0].Command.Instruction.Raw
	}
	if last := t.Last(); last != nil && last.Response != nil {
		sw = last.Response.Status
	}
	return &StatusError{Ins: ins, Status: sw}
}

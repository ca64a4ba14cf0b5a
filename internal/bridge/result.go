package bridge

import "sync"

// Result receives the outcome of one call. Exactly one method is invoked.
type Result interface {
	Success(value any)
	Error(code string, message string, details any)
	NotImplemented()
}

type Outcome int

const (
	OutcomeNotImplemented Outcome = iota
	OutcomeSuccess
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeError:
		return "error"
	default:
		return "not_implemented"
	}
}

// Reply is a resolved call.
type Reply struct {
	Outcome Outcome
	Value   any
	Code    string
	Message string
	Details any
}

// Recorder is a Result that keeps the reply for later inspection.
type Recorder struct {
	mu    sync.Mutex
	reply Reply
	set   bool
}

var _ Result = (*Recorder)(nil)

func (r *Recorder) Success(value any) {
	r.record(Reply{Outcome: OutcomeSuccess, Value: value})
}

func (r *Recorder) Error(code string, message string, details any) {
	r.record(Reply{Outcome: OutcomeError, Code: code, Message: message, Details: details})
}

func (r *Recorder) NotImplemented() {
	r.record(Reply{Outcome: OutcomeNotImplemented})
}

// Reply returns the recorded reply and whether one was recorded.
func (r *Recorder) Reply() (Reply, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reply, r.set
}

func (r *Recorder) record(reply Reply) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.set {
		return
	}
	r.reply = reply
	r.set = true
}

// once forwards only the first outcome to the wrapped result.
type once struct {
	sync.Once
	result Result
}

func (o *once) Success(value any) {
	o.Do(func() { o.result.Success(value) })
}

func (o *once) Error(code string, message string, details any) {
	o.Do(func() { o.result.Error(code, message, details) })
}

func (o *once) NotImplemented() {
	o.Do(o.result.NotImplemented)
}

package metrics

import (
	"time"

	"github.com/nunnsy/betfair"
)

// CallRecorder plugs into the client's Recorder hook and forwards every
// completed RPC to the Prometheus collectors.
type CallRecorder struct{}

func (CallRecorder) RecordCall(method string, elapsed time.Duration, err error) {
	RecordAPICall(method, elapsed, err)
}

// Compile-time interface check.
var _ betfair.Recorder = CallRecorder{}

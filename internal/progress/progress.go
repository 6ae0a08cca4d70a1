// Package progress carries completion updates from running multipliers to
// whatever displays them.
package progress

// ProgressUpdate is a completion report from one multiplier run.
type ProgressUpdate struct {
	// RunIndex identifies the run among those started together.
	RunIndex int
	// Value is the completed fraction, from 0.0 to 1.0.
	Value float64
}

// ChannelReporter returns a callback that forwards progress values for the
// run at index to ch. Sends never block: when the channel is full the update
// is dropped, except for the final value 1.0 which is always delivered.
func ChannelReporter(ch chan<- ProgressUpdate, index int) func(float64) {
	if ch == nil {
		return func(float64) {}
	}
	return func(v float64) {
		update := ProgressUpdate{RunIndex: index, Value: v}
		if v >= 1.0 {
			ch <- update
			return
		}
		select {
		case ch <- update:
		default:
		}
	}
}

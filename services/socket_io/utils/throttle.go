package socketio_utils

import "golang.org/x/time/rate"

// Throttle drops events beyond the connection's rate, calling onLimited instead
func Throttle(limiter *rate.Limiter, onLimited func(), handler func(args ...interface{})) func(args ...interface{}) {
	return func(args ...interface{}) {
		if !limiter.Allow() {
			onLimited()
			return
		}
		handler(args...)
	}
}

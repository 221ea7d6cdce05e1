package advising

import "go.uber.org/zap"

// CallEvent records metadata about a single advising call.
type CallEvent struct {
	Endpoint  string
	RequestID string
	Status    int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about advising calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a zap logger.
type LogObserver struct {
	log *zap.Logger
}

// NewLogObserver creates an Observer that logs events to log.
func NewLogObserver(log *zap.Logger) *LogObserver {
	return &LogObserver{log: log.Named("advising")}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.String("endpoint", event.Endpoint),
		zap.String("request_id", event.RequestID),
		zap.Int("status", event.Status),
		zap.Int64("latency_ms", event.LatencyMs),
	}
	if event.Success {
		o.log.Info("advising_call", fields...)
		return
	}
	o.log.Warn("advising_call", append(fields, zap.String("error_code", event.ErrorCode))...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Latency(value time.Duration) Field {
	return Duration("latency", value)
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component field helpers for common component names
func Component(name string) Field {
	return String("component", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

// Domain field helpers
func DeviceID(id string) Field {
	return String("device_id", id)
}

func LinkID(id string) Field {
	return String("link_id", id)
}

func ServiceID(id string) Field {
	return String("service_id", id)
}

func Query(kind string) Field {
	return String("query", kind)
}

func RequestID(id string) Field {
	return String("request_id", id)
}

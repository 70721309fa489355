package handler

import "event_hub/realtime"

var (
	dispatcher realtime.Dispatcher
	registry   *realtime.SessionRegistry
)

// Init inject session registry + dispatcher từ main,
// handler không tự dựng global WS/Redis
func Init(reg *realtime.SessionRegistry, d realtime.Dispatcher) {
	registry = reg
	dispatcher = d
}

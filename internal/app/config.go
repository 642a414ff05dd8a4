package app

import "time"

// Config holds runtime wiring options for building the app.
type Config struct {
	ClientID   string        // identity name announced to the relay
	ServerAddr string        // relay TCP address, e.g. 127.0.0.1:8080
	Heartbeat  time.Duration // background heartbeat period; 0 disables it
}

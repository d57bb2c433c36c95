package server

import "time"

const (
	// tickRate is the default simulation cadence in ticks per second.
	tickRate = 30
	// writeWait bounds a single websocket write.
	writeWait = 10 * time.Second
)

package model

import "context"

// Server is a long-running network server with a graceful stop.
type Server interface {
	Start() error
	Stop(ctx context.Context) error
	Address() string
}

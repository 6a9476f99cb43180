// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/recall/internal/adapters/cas"
	_ "go.trai.ch/recall/internal/adapters/config"
	_ "go.trai.ch/recall/internal/adapters/env"
	_ "go.trai.ch/recall/internal/adapters/fs"
	_ "go.trai.ch/recall/internal/adapters/logger"
	_ "go.trai.ch/recall/internal/adapters/shell"
	_ "go.trai.ch/recall/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/recall/internal/app"
	_ "go.trai.ch/recall/internal/engine/scheduler"
)

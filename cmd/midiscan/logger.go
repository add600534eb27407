package main

import "go.uber.org/zap"

var scanLog = zap.NewNop()

func enableDebugLogging(l *zap.Logger) {
	scanLog = l
}

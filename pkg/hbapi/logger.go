package hbapi

import (
	"github.com/hashicorp/go-hclog"
)

// HCLogAdapter adapts a hashicorp/go-hclog logger to the Logger interface,
// so applications already carrying an hclog.Logger can plug it straight into
// Config.Logger.
type HCLogAdapter struct {
	logger hclog.Logger
}

// NewHCLogAdapter wraps an hclog logger. A nil logger falls back to
// hclog.Default().
func NewHCLogAdapter(logger hclog.Logger) *HCLogAdapter {
	if logger == nil {
		logger = hclog.Default()
	}

	return &HCLogAdapter{logger: logger}
}

func flatten(fields map[string]interface{}) []interface{} {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}

	return args
}

// Debug implements Logger.
func (a *HCLogAdapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug(msg, flatten(fields)...)
}

// Info implements Logger.
func (a *HCLogAdapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info(msg, flatten(fields)...)
}

// Warn implements Logger.
func (a *HCLogAdapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn(msg, flatten(fields)...)
}

// Error implements Logger.
func (a *HCLogAdapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error(msg, flatten(fields)...)
}

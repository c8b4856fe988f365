package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldRequestID = "request_id"
	FieldCatalog   = "catalog"
	// FieldProvider and FieldModel describe the advisor backend.
	FieldProvider = "ai_provider"
	FieldModel    = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace and
// omitting entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// WithRequest tags every entry of one recommendation request.
func WithRequest(logger *zap.Logger, id string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldRequestID, Value: id})...)
}

// WithCatalog tags entries produced while loading the catalog at path.
func WithCatalog(logger *zap.Logger, path string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldCatalog, Value: path})...)
}

// WithAdvisor tags entries produced by an advisor backend.
func WithAdvisor(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)...)
}

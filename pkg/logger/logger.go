// Package logger is a thin structured-event facade over zap. Call sites
// log an event name plus a free-form field map instead of building zap
// fields by hand.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	log      *zap.Logger
	initOnce sync.Once
)

func Init() {
	initOnce.Do(func() {
		l, err := zap.NewProduction(zap.AddCallerSkip(1))
		if err != nil {
			l = zap.NewNop()
		}
		log = l
	})
}

func Info(event string, fields map[string]interface{}) {
	if log == nil {
		return
	}
	log.Info(event, toZapFields(fields)...)
}

func Warn(event string, fields map[string]interface{}) {
	if log == nil {
		return
	}
	log.Warn(event, toZapFields(fields)...)
}

func Error(event string, fields map[string]interface{}) {
	if log == nil {
		return
	}
	log.Error(event, toZapFields(fields)...)
}

// InfoWithUser tags the event with the acting user's id.
func InfoWithUser(userID, event string, fields map[string]interface{}) {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["user_id"] = userID
	Info(event, fields)
}

func toZapFields(fields map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		out = append(out, zap.Any(key, value))
	}
	return out
}

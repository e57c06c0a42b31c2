package log

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/reglet-dev/runnable-sdk/domain/entities"
)

// WireLevel maps a slog level onto the log_msg severity code.
func WireLevel(level slog.Level) entities.LogLevel {
	switch {
	case level >= slog.LevelError:
		return entities.LogLevelError
	case level >= slog.LevelWarn:
		return entities.LogLevelWarn
	case level >= slog.LevelInfo:
		return entities.LogLevelInfo
	default:
		return entities.LogLevelDebug
	}
}

// appendAttr renders attr as key=value, flattening groups into dotted keys.
func appendAttr(fields []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return fields
	}

	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix = prefix + attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			fields = appendAttr(fields, groupPrefix, member)
		}
		return fields
	}

	return append(fields, prefix+attr.Key+"="+formatValue(attr.Value))
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return quoteIfNeeded(v.String())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindAny:
		val := v.Any()
		if val == nil {
			return "<nil>"
		}
		if err, isErr := val.(error); isErr {
			return quoteIfNeeded(err.Error())
		}
		if data, err := json.Marshal(val); err == nil {
			return string(data)
		}
		return quoteIfNeeded(fmt.Sprintf("%v", val))
	default:
		return quoteIfNeeded(v.String())
	}
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

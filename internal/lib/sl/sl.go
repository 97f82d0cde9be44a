package sl

import "log/slog"

// Err wraps an error as a slog attribute.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Secret logs only the presence of a sensitive value, never its content.
func Secret(key, value string) slog.Attr {
	masked := "unset"
	if value != "" {
		masked = "set"
	}
	return slog.Attr{
		Key:   key,
		Value: slog.StringValue(masked),
	}
}

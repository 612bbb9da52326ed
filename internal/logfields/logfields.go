package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRole       = "role"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyLine       = "line"
	KeyVersion    = "version"
	KeyMessages   = "messages"
	KeyDurationMS = "duration_ms"
	KeyBucket     = "bucket"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Role(name string) slog.Attr      { return slog.String(KeyRole, name) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Line(n int) slog.Attr            { return slog.Int(KeyLine, n) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func Messages(n int) slog.Attr        { return slog.Int(KeyMessages, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Bucket(b string) slog.Attr       { return slog.String(KeyBucket, b) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

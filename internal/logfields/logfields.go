package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyProtocolID = "protocol_id"
	KeyParty      = "party"
	KeySpeaker    = "speaker"
	KeyStage      = "stage"
	KeyFile       = "file"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyRunID      = "run_id"
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func ProtocolID(id string) slog.Attr  { return slog.String(KeyProtocolID, id) }
func Party(p string) slog.Attr        { return slog.String(KeyParty, p) }
func Speaker(s string) slog.Attr      { return slog.String(KeySpeaker, s) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr   { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyGrouping = "grouping"
	KeyGroup    = "group"
	KeyNode     = "node"
	KeyResource = "resource"
	KeySorter   = "sorter"
	KeyCount    = "count"
	KeyPath     = "path"
	KeyBuildID  = "build_id"
	KeyURL      = "url"
	KeyName     = "name"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Grouping(name string) slog.Attr { return slog.String(KeyGrouping, name) }
func Group(name string) slog.Attr    { return slog.String(KeyGroup, name) }
func Node(name string) slog.Attr     { return slog.String(KeyNode, name) }
func Resource(name string) slog.Attr { return slog.String(KeyResource, name) }
func Sorter(name string) slog.Attr   { return slog.String(KeySorter, name) }
func Count(n int) slog.Attr          { return slog.Int(KeyCount, n) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func BuildID(id string) slog.Attr    { return slog.String(KeyBuildID, id) }
func URL(u string) slog.Attr         { return slog.String(KeyURL, u) }
func Name(n string) slog.Attr        { return slog.String(KeyName, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

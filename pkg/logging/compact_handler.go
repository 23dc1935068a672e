package logging

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// CompactHandler writes one line per record for console use:
//
//	[INFO]  15:04:05 vertex placed | component=editor id=3 x=10 y=20
//
// Attributes added with WithAttrs are rendered once, when the derived handler
// is created, and reused for every record.
type CompactHandler struct {
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex // shared by all handlers derived from the same root
	prefix string      // key prefix from WithGroup, "a.b." style
	fixed  []byte      // pre-rendered handler attributes, each with a leading space
}

// NewCompactHandler creates a compact console handler writing to w
func NewCompactHandler(w io.Writer, opts *slog.HandlerOptions) *CompactHandler {
	h := &CompactHandler{
		level: slog.LevelInfo,
		out:   w,
		mu:    &sync.Mutex{},
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

func (h *CompactHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// levelTag pads every tag to the same width so messages line up
func levelTag(l slog.Level) string {
	switch {
	case l < slog.LevelDebug:
		return "[TRACE] "
	case l < slog.LevelInfo:
		return "[DEBUG] "
	case l < slog.LevelWarn:
		return "[INFO]  "
	case l < slog.LevelError:
		return "[WARN]  "
	default:
		return "[ERROR] "
	}
}

func (h *CompactHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)
	buf = append(buf, levelTag(r.Level)...)
	buf = r.Time.AppendFormat(buf, time.TimeOnly)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	attrs := append(make([]byte, 0, 128), h.fixed...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = appendAttr(attrs, h.prefix, a)
		return true
	})
	if len(attrs) > 0 {
		buf = append(buf, " |"...)
		buf = append(buf, attrs...)
	}
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf)
	return err
}

// appendAttr renders " key=value", flattening groups into dotted keys
func appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			buf = appendAttr(buf, inner, ga)
		}
		return buf
	}

	buf = append(buf, ' ')
	key := prefix + a.Key

	// Request IDs are UUIDs; eight characters are enough to tell them apart
	if a.Key == "requestID" && a.Value.Kind() == slog.KindString {
		id := a.Value.String()
		if len(id) > 8 {
			id = id[:8]
		}
		buf = append(buf, "req="...)
		return append(buf, id...)
	}

	buf = append(buf, key...)
	buf = append(buf, '=')

	v := a.Value
	switch v.Kind() {
	case slog.KindString:
		return appendString(buf, v.String())
	case slog.KindInt64:
		return strconv.AppendInt(buf, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(buf, v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.AppendFloat(buf, v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case slog.KindDuration:
		return append(buf, v.Duration().Round(time.Microsecond).String()...)
	case slog.KindTime:
		return v.Time().AppendFormat(buf, time.RFC3339)
	}

	if err, ok := v.Any().(error); ok {
		return strconv.AppendQuote(buf, err.Error())
	}
	return appendString(buf, v.String())
}

func appendString(buf []byte, s string) []byte {
	if s == "" || strings.ContainsAny(s, " \t\n\"=|") {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	derived := *h
	derived.fixed = append([]byte(nil), h.fixed...)
	for _, a := range attrs {
		derived.fixed = appendAttr(derived.fixed, h.prefix, a)
	}
	return &derived
}

func (h *CompactHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	derived := *h
	derived.prefix = h.prefix + name + "."
	return &derived
}

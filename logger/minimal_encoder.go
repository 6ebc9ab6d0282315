package logger

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette holds the ANSI colors of one theme
type palette struct {
	fg        string
	time      string
	component string
	path      string
	number    string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

var themes = map[string]palette{
	// Everforest Dark (natural forest greens)
	"everforest": {
		fg:        "\x1b[38;5;223m",
		time:      "\x1b[38;5;107m",
		component: "\x1b[38;5;208m",
		path:      "\x1b[38;5;109m",
		number:    "\x1b[38;5;108m",
		warn:      "\x1b[38;5;179m",
		warnBg:    "\x1b[48;5;58m",
		err:       "\x1b[38;5;167m",
		errBg:     "\x1b[48;5;52m",
	},
	// Gruvbox Dark (warm, muted)
	"gruvbox": {
		fg:        "\x1b[38;5;223m",
		time:      "\x1b[38;5;108m",
		component: "\x1b[38;5;214m",
		path:      "\x1b[38;5;109m",
		number:    "\x1b[38;5;175m",
		warn:      "\x1b[38;5;214m",
		warnBg:    "\x1b[48;5;58m",
		err:       "\x1b[38;5;167m",
		errBg:     "\x1b[48;5;88m",
	},
}

// Current active theme (set from config or TSCR_LOG_THEME)
var currentTheme = "everforest"

// SetTheme configures the color scheme for log output. Unknown names are ignored.
func SetTheme(theme string) {
	if _, ok := themes[theme]; ok {
		currentTheme = theme
	}
}

// Theme returns the active color theme name
func Theme() string {
	return currentTheme
}

func colors() palette {
	return themes[currentTheme]
}

// minimalEncoder implements a calm, compact console encoder with theme support
// Format: "13:04:35  watch  regenerated  src/rect.ts -> src/rect.cr 3ms"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for field serialization
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{Encoder: enc.Encoder.Clone()}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := buffer.NewPool().Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for WARN/ERROR with bold + background
	if lvl := levelColorString(ent.Level); lvl != "" {
		final.AppendString("  ")
		final.AppendString(lvl)
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(c.component)
		final.AppendString(ent.LoggerName)
		final.AppendString(colorReset)
	}

	final.AppendString("  ")
	final.AppendString(c.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if len(fields) > 0 {
		final.AppendString("  ")
		final.AppendString(extractFieldValues(fields))
	}

	final.AppendString("\n")
	return final, nil
}

// levelColorString returns bold + colored + background for WARN/ERROR
func levelColorString(level zapcore.Level) string {
	c := colors()
	switch level {
	case zapcore.WarnLevel:
		return colorBold + c.warnBg + c.warn + "WARN" + colorReset
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return colorBold + c.errBg + c.err + level.CapitalString() + colorReset
	case zapcore.DebugLevel:
		return "DEBUG"
	default:
		return ""
	}
}

// getFieldValue extracts the value from a zap field, handling different field types
func getFieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", uint64(field.Integer))
	case zapcore.Float64Type:
		return strconv.FormatFloat(math.Float64frombits(uint64(field.Integer)), 'g', -1, 64)
	case zapcore.Float32Type:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(field.Integer))), 'g', -1, 32)
	case zapcore.DurationType:
		return time.Duration(field.Integer).String()
	case zapcore.BoolType:
		return fmt.Sprintf("%t", field.Integer == 1)
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok {
			return err.Error()
		}
	}
	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}
	return ""
}

// extractFieldValues renders structured fields compactly. Well-known fields get
// a dedicated layout; every other field is kept as key=value.
// Input: {"file": "a.ts", "output": "a.cr", "duration_ms": 3}
// Output: "a.ts -> a.cr 3ms"
func extractFieldValues(fields []zapcore.Field) string {
	c := colors()
	var values []string
	var file, output, line, column string

	for _, field := range fields {
		val := getFieldValue(field)
		switch field.Key {
		case FieldFile:
			file = val
		case FieldOutput:
			output = val
		case FieldLine:
			line = val
		case FieldColumn:
			column = val
		case FieldDurationMS:
			values = append(values, c.number+val+colorReset+"ms")
		case FieldBytes:
			values = append(values, c.number+val+colorReset+" bytes")
		case FieldError:
			values = append(values, c.err+val+colorReset)
		default:
			values = append(values, field.Key+"="+val)
		}
	}

	location := file
	if location != "" && line != "" {
		location += ":" + line
		if column != "" {
			location += ":" + column
		}
	} else if line != "" {
		values = append(values, FieldLine+"="+line)
		if column != "" {
			values = append(values, FieldColumn+"="+column)
		}
	}
	if output != "" {
		if location != "" {
			location += " -> " + output
		} else {
			location = "-> " + output
		}
	}
	if location != "" {
		values = append([]string{c.path + location + colorReset}, values...)
	}

	return strings.Join(values, " ")
}

// Package logx builds the zerolog logger of the command line tool.
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	colorTeal   = "#3ddbd9"
	colorBlue   = "#4589ff"
	colorOrange = "#ff832b"
	colorRed    = "#da1e28"
	colorGray   = "#8d8d8d"
	colorLight  = "#f4f4f4"
)

// Format selects the console encoding.
type Format string

const (
	FormatAuto    Format = "auto"    // console on a terminal, json otherwise
	FormatConsole Format = "console" // styled human-readable lines
	FormatJSON    Format = "json"
)

type Config struct {
	Level  string `mapstructure:"level"`
	Format Format `mapstructure:"format"`

	// File, when set, receives a JSON copy of every record, rotated by size.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// New returns a logger writing to out (and to cfg.File if set). The returned
// closer releases the log file; it is a no-op without one.
func New(cfg Config, out *os.File) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		var err error
		if level, err = zerolog.ParseLevel(strings.ToLower(cfg.Level)); err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("logx: %w", err)
		}
	}

	var (
		console io.Writer
		closer  io.Closer = nopCloser{}
	)

	switch cfg.Format {
	case FormatJSON:
		console = out
	case FormatConsole:
		console = ConsoleWriter(out)
	case FormatAuto, "":
		if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
			console = ConsoleWriter(out)
		} else {
			console = out
		}
	default:
		return zerolog.Nop(), closer, fmt.Errorf("logx: unknown format %q", cfg.Format)
	}

	w := console

	if cfg.File != "" {
		rot := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		w = zerolog.MultiLevelWriter(console, rot)
		closer = rot
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()

	return logger, closer, nil
}

// ConsoleWriter is a zerolog.ConsoleWriter with lipgloss-styled levels and
// field names.
func ConsoleWriter(out io.Writer) zerolog.ConsoleWriter {
	var (
		timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))
		keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue))
		eqStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))
		msgStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorLight))
	)

	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.TimeOnly,

		FormatLevel: func(i any) string {
			lvl := strings.ToLower(fmt.Sprint(i))

			color := colorGray
			switch lvl {
			case "debug":
				color = colorTeal
			case "info":
				color = colorBlue
			case "warn":
				color = colorOrange
			case "error", "fatal", "panic":
				color = colorRed
			}

			label := strings.ToUpper(lvl)
			if len(label) > 3 {
				label = label[:3]
			}

			return lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")).
				Background(lipgloss.Color(color)).
				Padding(0, 1).
				Render(label)
		},

		FormatTimestamp: func(i any) string {
			return timeStyle.Render(fmt.Sprint(i))
		},

		FormatFieldName: func(i any) string {
			return keyStyle.Render(fmt.Sprint(i)) + eqStyle.Render("=")
		},

		FormatMessage: func(i any) string {
			if i == nil {
				return ""
			}
			return msgStyle.Render(fmt.Sprint(i))
		},
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

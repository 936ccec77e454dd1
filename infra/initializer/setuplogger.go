package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type levelStyle struct {
	level log.Level
	icon  string
	color lipgloss.AdaptiveColor
}

var levelStyles = []levelStyle{
	{log.DebugLevel, "DBG", lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#B39DDB"}},
	{log.InfoLevel, "INF", lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}},
	{log.WarnLevel, "WRN", lipgloss.AdaptiveColor{Light: "#F5A623", Dark: "#FFC861"}},
	{log.ErrorLevel, "ERR", lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}},
}

// highlighted keys get the accent color of the level they usually appear at
var highlightedKeys = map[string]lipgloss.AdaptiveColor{
	"error":   levelStyles[3].color,
	"userID":  levelStyles[1].color,
	"goalID":  levelStyles[1].color,
	"key":     levelStyles[0].color,
	"caller":  levelStyles[0].color,
	"symbol":  levelStyles[2].color,
	"context": levelStyles[0].color,
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	for _, ls := range levelStyles {
		s.Levels[ls.level] = lipgloss.NewStyle().
			SetString(ls.icon).
			Bold(true).
			Padding(0, 1).
			Foreground(ls.color)
	}
	for key, color := range highlightedKeys {
		s.Keys[key] = lipgloss.NewStyle().Foreground(color)
		s.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return s
}

// SetupLogger builds the process logger, writing to w (stdout when nil),
// and installs it as the slog default.
func SetupLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles())

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}

package server

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shravanasati/webfetch/internal/response"
	"go.uber.org/zap"
)

var methodStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("15")).
	Bold(true).
	Background(lipgloss.Color("12")).
	Width(8).
	Align(lipgloss.Center)

// accessLog writes one line per handled request.
type accessLog struct {
	log     *zap.Logger
	colored bool
}

func (a accessLog) record(method, target string, status response.StatusCode, elapsed time.Duration) {
	if a.log == nil {
		return
	}

	msg := fmt.Sprintf("%s %s %d", method, target, status)
	if a.colored {
		msg = fmt.Sprintf("%s %s %s",
			methodStyle.Render(method),
			target,
			statusStyle(status).Render(fmt.Sprintf("%d", status)),
		)
	}

	a.log.Info(msg,
		zap.String("method", method),
		zap.String("target", target),
		zap.Int("status", int(status)),
		zap.Duration("elapsed", elapsed),
	)
}

// statusStyle colors a status code by class.
func statusStyle(status response.StatusCode) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch {
	case status >= 200 && status < 300:
		return base.Foreground(lipgloss.Color("46"))
	case status >= 300 && status < 400:
		return base.Foreground(lipgloss.Color("226"))
	case status >= 400 && status < 500:
		return base.Foreground(lipgloss.Color("208"))
	case status >= 500:
		return base.Foreground(lipgloss.Color("196"))
	default:
		return base.Foreground(lipgloss.Color("15"))
	}
}

package components

import (
	"github.com/sefyapp/sefy/internal/theme"
)

// AlertKind distinguishes error banners from confirmations.
type AlertKind int

const (
	AlertNone AlertKind = iota
	AlertError
	AlertSuccess
)

// Alert is a dismissible one-line banner shown under a screen's content.
type Alert struct {
	Kind    AlertKind
	Message string
}

// NewErrorAlert builds an error banner.
func NewErrorAlert(message string) Alert {
	return Alert{Kind: AlertError, Message: message}
}

// NewSuccessAlert builds a confirmation banner.
func NewSuccessAlert(message string) Alert {
	return Alert{Kind: AlertSuccess, Message: message}
}

// Clear resets the alert.
func (a *Alert) Clear() {
	*a = Alert{}
}

// View renders the banner, or nothing when no alert is active.
func (a Alert) View(styles theme.Styles) string {
	switch a.Kind {
	case AlertError:
		return styles.Error.Render("✗ " + a.Message)
	case AlertSuccess:
		return styles.Accent.Render("✓ " + a.Message)
	default:
		return ""
	}
}

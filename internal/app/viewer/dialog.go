package viewer

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thushan/ollaview/internal/core/domain"
	"github.com/thushan/ollaview/theme"
)

const (
	dialogMinWidth = 24
	dialogMaxWidth = 60
	dialogOK       = "确定"
)

// errorDialog is the modal shown after a failed refresh. While it is open it
// receives every key and the refresh control stays disabled.
type errorDialog struct {
	title   string
	message string
	kind    domain.ErrorKind
}

func newErrorDialog(err error) *errorDialog {
	return &errorDialog{
		title:   DialogTitle,
		message: DialogMessage(err),
		kind:    domain.KindOf(err),
	}
}

func (d *errorDialog) view(styles theme.UIStyles, width int) string {
	inner := width - 8
	if inner > dialogMaxWidth {
		inner = dialogMaxWidth
	}
	if inner < dialogMinWidth {
		inner = dialogMinWidth
	}

	title := styles.DialogTitle.Render(d.title)
	message := styles.DialogMessage.Width(inner).Render(d.message)
	button := lipgloss.PlaceHorizontal(inner, lipgloss.Center, styles.DialogButton.Render(dialogOK))

	return styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", message, "", button))
}

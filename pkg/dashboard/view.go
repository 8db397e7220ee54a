package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.Modal == modalForm && m.Form != nil {
		if m.Form.stage == stageMeta {
			return m.Form.metaForm.View()
		}
		return m.Form.fieldsForm.View()
	}

	var b strings.Builder

	b.WriteString(m.styles.header.Render("Rclone Remote Manager"))
	b.WriteString("\n\n")

	b.WriteString(m.renderTable())
	b.WriteString("\n")

	switch m.Modal {
	case modalConfirmDelete:
		b.WriteString(m.styles.modal.Render(
			"Delete remote \""+m.ConfirmName+"\"?\n\n"+
				m.styles.subtle.Render("y: delete    any other key: cancel")) + "\n")
	case modalConfirmSave:
		b.WriteString(m.styles.modal.Render(
			m.PendingPrompt+"\n\n"+
				m.styles.subtle.Render("y: proceed    any other key: abort")) + "\n")
	case modalHelp:
		b.WriteString(m.styles.modal.Render(helpText) + "\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("n new  e edit  d delete  m mount  u unmount  t test  a autostart  o open  r refresh  T theme  ? help  q quit"))
	return b.String()
}

const helpText = `Keys

  up/down, j/k   select remote
  n              new remote
  e              edit selected remote
  d              delete selected remote
  m / u          mount / unmount
  t              test connection
  a              toggle mount-at-startup (crontab)
  o              open mount folder
  r              refresh
  T              toggle dark mode
  q              quit

Remotes marked * have no registered handler and cannot be edited here.`

func (m Model) renderTable() string {
	if m.StoreAbsent {
		return m.styles.warning.Render("No rclone config found.") + "\n" +
			m.styles.subtle.Render("Press n to create your first remote.") + "\n"
	}
	if len(m.Rows) == 0 && !m.Loading {
		return m.styles.subtle.Render("No remotes configured. Press n to create one.") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.tableHead.Render(fmt.Sprintf("%-20s %-10s %-8s %-10s %s",
		"REMOTE", "TYPE", "MOUNTED", "AUTOSTART", "MOUNT POINT")))
	b.WriteString("\n")

	for i, row := range m.Rows {
		name := row.Name
		if !row.Editable {
			name += " *"
		}
		mounted := "No"
		if row.Mounted {
			mounted = "Yes"
		}
		autostart := "No"
		if row.Autostart {
			autostart = "Yes"
		}

		line := fmt.Sprintf("%-20s %-10s %-8s %-10s %s",
			name, strings.ToLower(row.Type), mounted, autostart, row.MountPath)

		style := m.styles.row
		if row.Mounted {
			style = m.styles.rowMounted
		}
		if i == m.Cursor {
			style = m.styles.cursor
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatus() string {
	text := m.Status
	if m.Busy || m.Loading {
		text = m.Spinner.View() + " " + text
	}

	var style lipgloss.Style
	switch m.StatusKind {
	case statusSuccess:
		style = m.styles.success
	case statusError:
		style = m.styles.errText
	case statusWarning:
		style = m.styles.warning
	default:
		style = m.styles.row
	}
	return style.Render(text)
}

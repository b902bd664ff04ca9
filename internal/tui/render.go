package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/weedbox/mailshell"
)

func renderSidebar(state mailshell.State) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("✉ Mailshell") + "\n\n")

	compose := "  + Compose"
	if state.View == mailshell.ViewCompose {
		compose = activeItemStyle.Render(compose)
	}
	b.WriteString(compose + "\n\n")

	for _, badge := range state.Badges() {
		line := fmt.Sprintf("  %s", badge.View.Label())
		if badge.View == state.View {
			line = activeItemStyle.Render(line)
		}
		if badge.Count > 0 {
			line += " " + badgeStyle.Render(fmt.Sprintf("%d", badge.Count))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func renderList(msgs []mailshell.Message, cursor int, selectedID string, now time.Time) string {
	if len(msgs) == 0 {
		return mutedStyle.Render("No emails found")
	}

	var b strings.Builder
	for i, msg := range msgs {
		pointer := "  "
		if i == cursor {
			pointer = cursorStyle.Render("▶ ")
		}

		flags := "  "
		if !msg.Read {
			flags = "● "
		}
		if msg.Starred {
			flags += starStyle.Render("★ ")
		}
		if len(msg.Attachments) > 0 {
			flags += "📎 "
		}

		sender := truncate(msg.Sender, listWidth-20)
		subject := truncate(msg.Subject, listWidth-6)
		if !msg.Read {
			sender = unreadStyle.Render(sender)
			subject = unreadStyle.Render(subject)
		}
		if msg.ID == selectedID {
			subject = cursorStyle.Render(subject)
		}

		b.WriteString(pointer + flags + sender + "  " + mutedStyle.Render(FormatListDate(msg.Timestamp, now)) + "\n")
		b.WriteString("    " + subject + "\n")
		b.WriteString("    " + mutedStyle.Render(truncate(firstLine(msg.Body), listWidth-6)) + "\n")
		if summary := attachmentSummary(msg.Attachments); summary != "" {
			b.WriteString("    " + mutedStyle.Render(summary) + "\n")
		}
		if len(msg.Labels) > 0 {
			labels := make([]string, 0, len(msg.Labels))
			for _, l := range msg.Labels {
				labels = append(labels, labelStyle.Render(l))
			}
			b.WriteString("    " + strings.Join(labels, " ") + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderViewer(msg mailshell.Message) string {
	var b strings.Builder

	star := "☆"
	if msg.Starred {
		star = starStyle.Render("★")
	}
	b.WriteString(titleStyle.Render(msg.Subject) + " " + star + "\n\n")
	b.WriteString(fieldLabelStyle.Render("From") + msg.Sender + "\n")
	b.WriteString(fieldLabelStyle.Render("To") + msg.Recipient + "\n")
	b.WriteString(fieldLabelStyle.Render("Date") + FormatFullDate(msg.Timestamp) + "\n")
	if len(msg.Labels) > 0 {
		labels := make([]string, 0, len(msg.Labels))
		for _, l := range msg.Labels {
			labels = append(labels, labelStyle.Render(l))
		}
		b.WriteString(fieldLabelStyle.Render("Labels") + strings.Join(labels, " ") + "\n")
	}
	b.WriteString("\n" + msg.Body + "\n")

	if len(msg.Attachments) > 0 {
		b.WriteString("\n" + mutedStyle.Render(fmt.Sprintf("Attachments (%d)", len(msg.Attachments))) + "\n")
		for _, att := range msg.Attachments {
			b.WriteString(fmt.Sprintf("  %s %s %s\n", mailshell.FileIcon(att.Name), att.Name, mutedStyle.Render(mailshell.FormatFileSize(att.Size))))
		}
	}

	b.WriteString("\n" + mutedStyle.Render("r reply · R reply all · f forward · s star · d delete"))
	return b.String()
}

func renderEmptyViewer() string {
	return "\n\n" + titleStyle.Render("No email selected") + "\n" +
		mutedStyle.Render("Choose an email from the list to view its contents")
}

func attachmentSummary(atts []mailshell.Attachment) string {
	switch len(atts) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("1 attachment (%s)", mailshell.FormatFileSize(atts[0].Size))
	default:
		return fmt.Sprintf("%d attachments", len(atts))
	}
}

// FormatListDate renders a timestamp relative to now: a clock time for today,
// "Yesterday", a weekday within the last week, else month and day.
func FormatListDate(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return t.Format("15:04")
	case days == 1:
		return "Yesterday"
	case days < 7:
		return t.Format("Mon")
	default:
		return t.Format("Jan 2")
	}
}

// FormatFullDate renders the timestamp shown in the message viewer.
func FormatFullDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006 15:04")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

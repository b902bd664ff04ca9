package mailshell

import (
	"fmt"
	"strings"
)

// View is the mailbox folder or mode the user is browsing
type View int

const (
	ViewInbox View = iota
	ViewCompose
	ViewSent
	ViewStarred
	ViewTrash
)

// SidebarViews lists the browsable views in sidebar order
var SidebarViews = []View{ViewInbox, ViewStarred, ViewSent, ViewTrash}

func (v View) String() string {
	switch v {
	case ViewInbox:
		return "inbox"
	case ViewCompose:
		return "compose"
	case ViewSent:
		return "sent"
	case ViewStarred:
		return "starred"
	case ViewTrash:
		return "trash"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// Label returns the sidebar caption for the view
func (v View) Label() string {
	s := v.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseView converts a view name into a View
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inbox":
		return ViewInbox, nil
	case "compose":
		return ViewCompose, nil
	case "sent":
		return ViewSent, nil
	case "starred":
		return ViewStarred, nil
	case "trash":
		return ViewTrash, nil
	}
	return ViewInbox, fmt.Errorf("unknown view %q", s)
}

package nav

import "outline-cli/internal/model"

type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeySpace
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeySpace:
		return "space"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyPageUp:
		return "pgup"
	case KeyPageDown:
		return "pgdown"
	default:
		return "none"
	}
}

// Result describes what a key did.
//
// FocusID names the row that must receive focus. It is set whenever the active row
// moved or the focused row's expand state changed; by then the viewport already
// contains that row.
type Result struct {
	Moved     bool
	Toggled   bool
	Activated *model.Node
	FocusID   string
}

// HandleKey applies one keyboard event to the focused (active) row. With no rows every
// key is a no-op.
func (n *Navigator) HandleKey(k Key) Result {
	if len(n.rows) == 0 {
		return Result{}
	}
	i := n.ActiveIndex()
	if i < 0 {
		i = 0
		n.activeID = n.rows[0].ID()
	}
	row := n.rows[i]

	switch k {
	case KeyDown:
		return n.moveTo(i + 1)
	case KeyUp:
		return n.moveTo(i - 1)
	case KeyHome:
		return n.moveTo(0)
	case KeyEnd:
		return n.moveTo(len(n.rows) - 1)
	case KeyPageDown:
		return n.moveTo(i + n.page())
	case KeyPageUp:
		return n.moveTo(i - n.page())
	case KeyRight:
		if !row.HasChildren {
			return Result{}
		}
		if !row.Expanded {
			n.Expand(row.ID())
			return Result{Toggled: true, FocusID: n.activeID}
		}
		// Expanded rows are immediately followed by their first child.
		return n.moveTo(i + 1)
	case KeyLeft:
		if row.HasChildren && row.Expanded {
			n.Collapse(row.ID())
			return Result{Toggled: true, FocusID: n.activeID}
		}
		if row.ParentID == "" {
			return Result{}
		}
		if j, ok := n.rowIndex[row.ParentID]; ok {
			return n.moveTo(j)
		}
		return Result{}
	case KeyEnter, KeySpace:
		node := row.Node
		return Result{Activated: &node, FocusID: row.ID()}
	default:
		return Result{}
	}
}

// moveTo clamps j to the row range and makes it active. Moving onto the current row is
// a no-op.
func (n *Navigator) moveTo(j int) Result {
	if j < 0 {
		j = 0
	}
	if j > len(n.rows)-1 {
		j = len(n.rows) - 1
	}
	if n.rows[j].ID() == n.activeID {
		return Result{}
	}
	n.activeID = n.rows[j].ID()
	n.scrollIntoView()
	return Result{Moved: true, FocusID: n.activeID}
}

func (n *Navigator) page() int {
	if n.height > 1 {
		return n.height - 1
	}
	return 1
}

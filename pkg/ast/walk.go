package ast

// Callback is invoked for a node on entry or exit.
type Callback func(n *Node)

// Listener is a dispatch table from node kind to enter/exit callbacks.
// Kinds without an entry are ignored, so a listener only names the
// productions it cares about.
type Listener struct {
	enter map[Kind]Callback
	exit  map[Kind]Callback
}

// NewListener returns an empty listener.
func NewListener() *Listener {
	return &Listener{
		enter: make(map[Kind]Callback),
		exit:  make(map[Kind]Callback),
	}
}

// OnEnter registers fn to run when a node of the given kind is entered,
// before any of its children. A later registration for the same kind replaces
// the earlier one.
func (l *Listener) OnEnter(kind Kind, fn Callback) *Listener {
	l.enter[kind] = fn
	return l
}

// OnExit registers fn to run when a node of the given kind is exited, after
// all of its children have been visited.
func (l *Listener) OnExit(kind Kind, fn Callback) *Listener {
	l.exit[kind] = fn
	return l
}

// Handles reports whether l has any callback for kind.
func (l *Listener) Handles(kind Kind) bool {
	_, e := l.enter[kind]
	_, x := l.exit[kind]
	return e || x
}

// Walk traverses the tree rooted at root depth-first, left to right. For every
// node the enter callbacks of all listeners fire (in listener order) before the
// node's children are visited, and the exit callbacks fire after all children.
func Walk(root *Node, listeners ...*Listener) {
	if root == nil || len(listeners) == 0 {
		return
	}
	for _, l := range listeners {
		if fn := l.enter[root.Kind]; fn != nil {
			fn(root)
		}
	}
	for _, child := range root.Children {
		Walk(child, listeners...)
	}
	for _, l := range listeners {
		if fn := l.exit[root.Kind]; fn != nil {
			fn(root)
		}
	}
}

// Inspect traverses the tree depth-first and calls fn for each node.
// If fn returns false, the children of that node are skipped.
func Inspect(node *Node, fn func(n *Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range node.Children {
		Inspect(child, fn)
	}
}

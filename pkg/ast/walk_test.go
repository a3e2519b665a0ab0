package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/leapddl/pkg/token"
)

// tree builds Script(CreateTable(TableName(t), Terminal), UseStatement).
func tree() *Node {
	root := &Node{Kind: Script}
	create := &Node{Kind: CreateTable}
	name := &Node{Kind: TableName}
	name.Append(NewTerminal(token.Token{Literal: "t"}))
	create.Append(name)
	create.Append(NewTerminal(token.Token{Literal: "x"}))
	root.Append(create)
	root.Append(&Node{Kind: UseStatement})
	return root
}

func TestWalk_Order(t *testing.T) {
	var events []string
	record := func(prefix string) Callback {
		return func(n *Node) { events = append(events, prefix+n.Kind.String()) }
	}

	l := NewListener().
		OnEnter(CreateTable, record("enter ")).
		OnExit(CreateTable, record("exit ")).
		OnEnter(TableName, record("enter ")).
		OnExit(TableName, record("exit ")).
		OnEnter(UseStatement, record("enter "))

	Walk(tree(), l)

	assert.Equal(t, []string{
		"enter CreateTable",
		"enter TableName",
		"exit TableName",
		"exit CreateTable",
		"enter UseStatement",
	}, events)
}

func TestWalk_ListenersFireInOrder(t *testing.T) {
	var events []string
	first := NewListener().OnEnter(CreateTable, func(*Node) { events = append(events, "first") })
	second := NewListener().OnEnter(CreateTable, func(*Node) { events = append(events, "second") })

	Walk(tree(), first, second)

	assert.Equal(t, []string{"first", "second"}, events)
}

func TestListener_Handles(t *testing.T) {
	l := NewListener().OnExit(TableName, func(*Node) {})

	assert.True(t, l.Handles(TableName))
	assert.False(t, l.Handles(CreateTable))
}

func TestWalk_NilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		Walk(nil, NewListener())
		Walk(tree())
		Inspect(nil, func(*Node) bool { return true })
	})
}

func TestInspect_SkipsChildren(t *testing.T) {
	var kinds []Kind
	Inspect(tree(), func(n *Node) bool {
		kinds = append(kinds, n.Kind)
		return n.Kind != CreateTable
	})

	assert.Equal(t, []Kind{Script, CreateTable, UseStatement}, kinds)
}

func TestNode_Lookup(t *testing.T) {
	root := tree()

	create := root.Child(CreateTable)
	assert.NotNil(t, create)
	assert.Same(t, root, create.Parent)
	assert.Nil(t, root.Child(TableName))
	assert.NotNil(t, root.Find(TableName))
	assert.Len(t, create.ChildrenOf(Terminal), 1)
	assert.False(t, root.IsStatement())
	assert.True(t, create.IsStatement())
}

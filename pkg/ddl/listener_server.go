package ddl

import (
	"github.com/leapstack-labs/leapddl/pkg/ast"
	"github.com/leapstack-labs/leapddl/pkg/catalog"
)

// NewServerListener returns the listener for CREATE SERVER.
func NewServerListener(ctx *Context) *ast.Listener {
	return ast.NewListener().
		OnExit(ast.CreateServer, func(n *ast.Node) {
			ids := n.ChildrenOf(ast.Identifier)
			if len(ids) == 0 {
				return
			}
			name := identifierName(ids[0])
			if ctx.catalog.FindServer(name, ctx.CaseSensitive()) != nil {
				ctx.duplicate(catalog.KindServer, name, n, false)
				return
			}

			s := ctx.catalog.NewServer(name)
			if len(ids) > 1 {
				s.Wrapper = identifierName(ids[1])
			}
			for _, opt := range n.ChildrenOf(ast.ServerOption) {
				value := textValue(opt.Child(ast.TextLiteral))
				switch opt.FirstKeyword() {
				case "HOST":
					s.Host = value
				case "DATABASE":
					s.Database = value
				case "USER":
					s.User = value
				case "PASSWORD":
					s.Password = value
				case "SOCKET":
					s.Socket = value
				case "OWNER":
					s.OwnerUser = value
				case "PORT":
					if v, ok := ctx.intValue(opt, name); ok {
						s.Port = v
					}
				}
			}
			ctx.catalog.AddServer(s)
			ctx.logger.Debug("created server", "server", name, "wrapper", s.Wrapper)
		})
}

// NewTablespaceListener returns the listener for CREATE [UNDO] TABLESPACE. The
// logfile group named by USE LOGFILE GROUP is bound from the resolution pass.
func NewTablespaceListener(ctx *Context) *ast.Listener {
	return ast.NewListener().
		OnExit(ast.CreateTablespace, func(n *ast.Node) {
			name := identifierName(n.Child(ast.Identifier))
			if ctx.catalog.FindTablespace(name, ctx.CaseSensitive()) != nil {
				ctx.duplicate(catalog.KindTablespace, name, n, false)
				return
			}

			ts := ctx.catalog.NewTablespace(name)
			ts.Undo = hasWord(n, "UNDO")
			ts.DataFile = textValue(n.Child(ast.TextLiteral))
			for _, opt := range n.ChildrenOf(ast.TablespaceOption) {
				kw := storageOptionKeyword(opt)
				switch kw {
				case "INITIAL_SIZE":
					ts.InitialSize, _ = ctx.sizeValue(opt, name)
				case "AUTOEXTEND_SIZE":
					ts.AutoextendSize, _ = ctx.sizeValue(opt, name)
				case "MAX_SIZE":
					ts.MaxSize, _ = ctx.sizeValue(opt, name)
				case "EXTENT_SIZE":
					ts.ExtentSize, _ = ctx.sizeValue(opt, name)
				case "FILE_BLOCK_SIZE":
					ts.FileBlockSize, _ = ctx.sizeValue(opt, name)
				case "NODEGROUP":
					if v, ok := ctx.intValue(opt, name); ok {
						ts.NodeGroup = v
					}
				case "WAIT":
					ts.Wait = true
				case "NO_WAIT":
					ts.Wait = false
				case "COMMENT":
					ts.Comment = textValue(opt.Child(ast.TextLiteral))
				case "ENCRYPTION":
					ts.Encryption = textValue(opt.Child(ast.TextLiteral))
				case "ENGINE":
					ts.Engine = identifierName(opt.Child(ast.Identifier))
				default:
					ctx.reportf(SeverityInfo, CodeUnsupported, name, opt, "tablespace option %s is not analysed", kw)
				}
			}

			if ref := n.Child(ast.LogfileGroupRef); ref != nil {
				ts.LogfileGroupName = identifierName(ref.Child(ast.Identifier))
				ctx.refs.Push(&ObjectReference{
					Target:    catalog.KindLogfileGroup,
					Name:      []string{ts.LogfileGroupName},
					Owner:     ts,
					OwnerName: name,
					Bind: func(obj catalog.Object) {
						ts.LogfileGroup = obj.(*catalog.LogfileGroup)
					},
				})
			}

			ctx.catalog.AddTablespace(ts)
			ctx.logger.Debug("created tablespace", "tablespace", name)
		})
}

// NewLogfileGroupListener returns the listener for CREATE LOGFILE GROUP.
func NewLogfileGroupListener(ctx *Context) *ast.Listener {
	return ast.NewListener().
		OnExit(ast.CreateLogfileGroup, func(n *ast.Node) {
			name := identifierName(n.Child(ast.Identifier))
			if ctx.catalog.FindLogfileGroup(name, ctx.CaseSensitive()) != nil {
				ctx.duplicate(catalog.KindLogfileGroup, name, n, false)
				return
			}

			lg := ctx.catalog.NewLogfileGroup(name)
			lg.UndoFile = textValue(n.Child(ast.TextLiteral))
			for _, opt := range n.ChildrenOf(ast.LogfileGroupOption) {
				kw := storageOptionKeyword(opt)
				switch kw {
				case "INITIAL_SIZE":
					lg.InitialSize, _ = ctx.sizeValue(opt, name)
				case "UNDO_BUFFER_SIZE":
					lg.UndoBufferSize, _ = ctx.sizeValue(opt, name)
				case "REDO_BUFFER_SIZE":
					lg.RedoBufferSize, _ = ctx.sizeValue(opt, name)
				case "NODEGROUP":
					if v, ok := ctx.intValue(opt, name); ok {
						lg.NodeGroup = v
					}
				case "WAIT":
					lg.Wait = true
				case "NO_WAIT":
					lg.Wait = false
				case "COMMENT":
					lg.Comment = textValue(opt.Child(ast.TextLiteral))
				case "ENGINE":
					lg.Engine = identifierName(opt.Child(ast.Identifier))
				default:
					ctx.reportf(SeverityInfo, CodeUnsupported, name, opt, "logfile group option %s is not analysed", kw)
				}
			}

			ctx.catalog.AddLogfileGroup(lg)
			ctx.logger.Debug("created logfile group", "group", name)
		})
}

// storageOptionKeyword returns the option keyword of a tablespace or logfile
// group option, with STORAGE ENGINE folded into ENGINE.
func storageOptionKeyword(opt *ast.Node) string {
	words := opt.Words()
	if len(words) > 1 && words[0] == "STORAGE" {
		words = words[1:]
	}
	if len(words) == 0 {
		return ""
	}
	return words[0]
}

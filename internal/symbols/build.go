package symbols

import (
	"fmt"
	"strconv"

	"lpcls/internal/ast"
	"lpcls/internal/diag"
	"lpcls/internal/token"
)

// ScanFunction names a call whose trailing arguments are output variables.
// FirstOutput is the zero-based index of the first output argument.
type ScanFunction struct {
	Name        string
	FirstOutput int
}

// DefaultScanFunctions are sscanf and parse_command.
var DefaultScanFunctions = []ScanFunction{
	{Name: "sscanf", FirstOutput: 2},
	{Name: "parse_command", FirstOutput: 3},
}

// ScanFunctionsByName maps configured names to scan functions. Known names keep
// their output position, unknown ones are treated like sscanf.
func ScanFunctionsByName(names []string) []ScanFunction {
	out := make([]ScanFunction, 0, len(names))
	for _, name := range names {
		fn := ScanFunction{Name: name, FirstOutput: 2}
		for _, def := range DefaultScanFunctions {
			if def.Name == name {
				fn = def
			}
		}
		out = append(out, fn)
	}
	return out
}

// BuildOptions configures a build pass.
type BuildOptions struct {
	Hints    Hints
	Reporter diag.Reporter
	// ScanFunctions defaults to DefaultScanFunctions when nil.
	ScanFunctions []ScanFunction
	Validate      bool
}

// Build walks file and produces its scope tree. It never fails: malformed
// constructs are skipped and traversal continues with their siblings.
func Build(file *ast.File, opts BuildOptions) *Table {
	table := NewTable(opts.Hints, file.Sp)
	scan := opts.ScanFunctions
	if scan == nil {
		scan = DefaultScanFunctions
	}
	b := builder{
		table:    table,
		resolver: NewResolver(table, table.Root, opts.Reporter),
		scan:     make(map[string]int, len(scan)),
	}
	for _, fn := range scan {
		b.scan[fn.Name] = fn.FirstOutput
	}

	for _, d := range file.Decls {
		b.decl(d)
	}

	if opts.Validate {
		if err := table.Validate(); err != nil {
			if opts.Reporter == nil {
				panic(err)
			}
			msg := fmt.Sprintf("symbol table invariant violation: %v", err)
			diag.ReportError(opts.Reporter, diag.SemaError, file.Sp, msg).Emit()
		}
	}
	return table
}

type builder struct {
	table    *Table
	resolver *Resolver
	scan     map[string]int
}

func (b *builder) decl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.InheritDecl:
		b.inherit(d)
	case *ast.VarDecl:
		b.varDecl(d, SymbolVariable)
	case *ast.FuncDecl:
		b.funcDecl(d)
	case *ast.StructDecl:
		b.structDecl(d)
	}
}

func (b *builder) inherit(d *ast.InheritDecl) {
	parts := make([]InheritPart, 0, len(d.Parts))
	for _, p := range d.Parts {
		switch p := p.(type) {
		case *ast.BasicLit:
			parts = append(parts, InheritPart{Text: unquote(p.Value)})
		case *ast.Ident:
			parts = append(parts, InheritPart{Macro: true, Text: p.Name})
		}
	}
	id := b.resolver.Declare(Symbol{
		Name:      d.Raw,
		Kind:      SymbolInherit,
		Type:      "object",
		Span:      d.RawSp,
		Decl:      d.Sp,
		Modifiers: d.Modifiers,
	})
	b.table.Inherits = append(b.table.Inherits, Inherit{
		Raw:    d.Raw,
		Parts:  parts,
		Span:   d.RawSp,
		Symbol: id,
	})
}

func unquote(s string) string {
	if v, err := strconv.Unquote(s); err == nil {
		return v
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// varDecl declares one symbol per declarator. Initializers are walked before the
// name is bound, so `int x = x;` refers to an outer x.
func (b *builder) varDecl(d *ast.VarDecl, kind SymbolKind) []SymbolID {
	ids := make([]SymbolID, 0, len(d.Vars))
	for _, v := range d.Vars {
		if v == nil || !v.Name.Valid() {
			continue
		}
		if v.Init != nil {
			b.expr(v.Init)
		}
		typ := d.TypeText(v)
		inferred := false
		if typ == "mixed" && v.Init != nil {
			typ = b.infer(v.Init)
			inferred = typ != "mixed"
		}
		ids = append(ids, b.resolver.Declare(Symbol{
			Name:      v.Name.Name,
			Kind:      kind,
			Type:      typ,
			Span:      v.Name.Sp,
			Decl:      d.Sp,
			Modifiers: d.Modifiers,
			Doc:       d.Doc,
			Inferred:  inferred,
		}))
	}
	return ids
}

func (b *builder) funcDecl(d *ast.FuncDecl) {
	if !d.Name.Valid() {
		return
	}
	ret := "mixed"
	if d.Type != nil {
		ret = d.Type.WithStars(d.Stars)
	}
	sym := Symbol{
		Name:      d.Name.Name,
		Kind:      SymbolFunction,
		Type:      ret,
		Span:      d.Name.Sp,
		Decl:      d.Sp,
		Modifiers: d.Modifiers,
		Doc:       d.Doc,
		Varargs:   d.Varargs,
		Prototype: d.Body == nil,
	}

	var fnID SymbolID
	if prev, ok := b.resolver.LookupLocal(d.Name.Name); ok && sym.Prototype && !b.table.Symbols.Get(prev).Prototype &&
		b.table.Symbols.Get(prev).Kind == SymbolFunction {
		// a prototype after the definition must not hide it
		fnID = b.resolver.DeclareHidden(sym)
	} else {
		fnID = b.resolver.Declare(sym)
	}

	scope := b.resolver.Enter(ScopeFunction, "function:"+d.Name.Name, d.Sp)
	params := b.params(d.Params)
	if d.Body != nil {
		b.block(d.Body, "block")
	}
	b.resolver.Leave(scope)

	if fn := b.table.Symbols.Get(fnID); fn != nil {
		fn.Params = params
	}
}

func (b *builder) params(params []*ast.Param) []SymbolID {
	ids := make([]SymbolID, 0, len(params))
	for _, p := range params {
		if p.Default != nil {
			b.expr(p.Default)
		}
		if !p.Name.Valid() {
			continue
		}
		ids = append(ids, b.resolver.Declare(Symbol{
			Name:    p.Name.Name,
			Kind:    SymbolParameter,
			Type:    p.TypeText(),
			Span:    p.Name.Sp,
			Decl:    p.Sp,
			Varargs: p.Varargs,
		}))
	}
	return ids
}

func (b *builder) structDecl(d *ast.StructDecl) {
	if !d.Name.Valid() {
		return
	}
	kind, scopeKind := SymbolStruct, ScopeStruct
	if d.Keyword == "class" {
		kind, scopeKind = SymbolClass, ScopeClass
	}
	typeID := b.resolver.Declare(Symbol{
		Name: d.Name.Name,
		Kind: kind,
		Type: d.Keyword + " " + d.Name.Name,
		Span: d.Name.Sp,
		Decl: d.Sp,
		Doc:  d.Doc,
	})

	scope := b.resolver.Enter(scopeKind, d.Keyword+":"+d.Name.Name, d.Sp)
	var members []SymbolID
	for _, f := range d.Fields {
		members = append(members, b.varDecl(f, SymbolMember)...)
	}
	b.resolver.Leave(scope)

	if sym := b.table.Symbols.Get(typeID); sym != nil {
		sym.Members = members
	}
}

func (b *builder) block(blk *ast.Block, name string) {
	if blk == nil {
		return
	}
	scope := b.resolver.Enter(ScopeBlock, name, blk.Sp)
	for _, s := range blk.Stmts {
		b.stmt(s)
	}
	b.resolver.Leave(scope)
}

func (b *builder) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case nil:
	case *ast.Block:
		b.block(s, "block")
	case *ast.VarDecl:
		b.varDecl(s, SymbolVariable)
	case *ast.StructDecl:
		b.structDecl(s)
	case *ast.ExprStmt:
		b.expr(s.X)
	case *ast.IfStmt:
		b.expr(s.Cond)
		b.stmt(s.Then)
		b.stmt(s.Else)
	case *ast.WhileStmt:
		b.expr(s.Cond)
		b.stmt(s.Body)
	case *ast.DoStmt:
		b.stmt(s.Body)
		b.expr(s.Cond)
	case *ast.ForStmt:
		scope := b.resolver.Enter(ScopeBlock, "for", s.Sp)
		b.stmt(s.Init)
		b.expr(s.Cond)
		b.expr(s.Post)
		b.stmt(s.Body)
		b.resolver.Leave(scope)
	case *ast.ForeachStmt:
		b.foreach(s)
	case *ast.SwitchStmt:
		b.expr(s.Tag)
		b.block(s.Body, "block")
	case *ast.CaseClause:
		b.expr(s.Value)
		b.expr(s.Hi)
	case *ast.ReturnStmt:
		b.expr(s.Result)
	}
}

// foreach binds loop variables in their own scope. A single untyped variable takes
// the element type of the collection; key/value pairs default to mixed.
func (b *builder) foreach(s *ast.ForeachStmt) {
	scope := b.resolver.Enter(ScopeBlock, "foreach", s.Sp)
	b.expr(s.Coll)
	elem := "mixed"
	if len(s.Vars) == 1 && s.Coll != nil {
		elem = ElementType(b.infer(s.Coll))
	}
	for _, v := range s.Vars {
		if !v.Name.Valid() {
			continue
		}
		typ, inferred := v.TypeText(), false
		if typ == "" {
			typ, inferred = elem, elem != "mixed"
		}
		b.resolver.Declare(Symbol{
			Name:     v.Name.Name,
			Kind:     SymbolVariable,
			Type:     typ,
			Span:     v.Name.Sp,
			Decl:     s.Sp,
			Inferred: inferred,
		})
	}
	b.stmt(s.Body)
	b.resolver.Leave(scope)
}

func (b *builder) expr(e ast.Expr) {
	switch e := e.(type) {
	case nil:
		return
	case *ast.AssignExpr:
		b.assign(e)
		return
	case *ast.CallExpr:
		b.call(e)
		return
	case *ast.Closure:
		scope := b.resolver.Enter(ScopeFunction, "function:<closure>", e.Sp)
		b.params(e.Params)
		b.block(e.Body, "block")
		b.resolver.Leave(scope)
		return
	}
	b.children(e)
}

func (b *builder) children(n ast.Node) {
	for _, c := range ast.Children(n) {
		switch c := c.(type) {
		case *ast.Block:
			b.block(c, "block")
		case ast.Expr:
			b.expr(c)
		}
	}
}

// assign registers `x = rhs` on an undeclared x as a new local with the inferred
// type of rhs.
func (b *builder) assign(e *ast.AssignExpr) {
	b.expr(e.Rhs)
	id, ok := ast.Unparen(e.Lhs).(*ast.Ident)
	if !ok || e.Op != token.Assign || !declarable(id) {
		b.expr(e.Lhs)
		return
	}
	if _, visible := b.resolver.Lookup(id.Name); visible {
		return
	}
	typ := b.infer(e.Rhs)
	b.resolver.Declare(Symbol{
		Name:     id.Name,
		Kind:     SymbolVariable,
		Type:     typ,
		Span:     id.Sp,
		Decl:     e.Sp,
		Inferred: true,
	})
}

func declarable(id *ast.Ident) bool {
	return id.Valid() && id.Name[0] != '$'
}

// call walks a call and declares the output arguments of scan functions.
func (b *builder) call(e *ast.CallExpr) {
	b.children(e)
	fn, ok := e.Fun.(*ast.Ident)
	if !ok {
		return
	}
	first, ok := b.scan[fn.Name]
	if !ok {
		return
	}
	for i := first; i < len(e.Args); i++ {
		arg := ast.Unparen(e.Args[i])
		if ref, isRef := arg.(*ast.RefExpr); isRef {
			arg = ast.Unparen(ref.X)
		}
		id, isIdent := arg.(*ast.Ident)
		if !isIdent || !declarable(id) {
			continue
		}
		if _, visible := b.resolver.Lookup(id.Name); visible {
			continue
		}
		b.resolver.Declare(Symbol{
			Name: id.Name,
			Kind: SymbolVariable,
			Type: "mixed",
			Span: id.Sp,
			Decl: e.Sp,
		})
	}
}

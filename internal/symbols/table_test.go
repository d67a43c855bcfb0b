package symbols

import (
	"testing"

	"lpcls/internal/source"
)

func TestResolverLifecycle(t *testing.T) {
	table := NewTable(Hints{}, source.Span{Start: 0, End: 100})
	res := NewResolver(table, table.Root, nil)

	scope := res.Enter(ScopeFunction, "function:f", source.Span{Start: 10, End: 50})
	id := res.Declare(Symbol{Name: "value", Kind: SymbolVariable, Span: source.Span{Start: 20, End: 25}})
	if !id.IsValid() {
		t.Fatalf("declare returned invalid id")
	}
	if got := table.Symbol(id).Type; got != "mixed" {
		t.Fatalf("expected missing type to default to mixed, got %q", got)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	res.Leave(scope)
	if res.CurrentScope() != table.Root {
		t.Fatalf("expected to be back at root, got %d", res.CurrentScope())
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate after leave: %v", err)
	}
}

func TestScopesNewLinksParent(t *testing.T) {
	table := NewTable(Hints{}, source.Span{End: 10})
	child := table.Scopes.New(ScopeBlock, "block", table.Root, source.Span{Start: 1, End: 2})
	root := table.Scope(table.Root)
	if len(root.Children) != 1 || root.Children[0] != child {
		t.Fatalf("expected child linked to root, got %v", root.Children)
	}
}

func TestDeclareMostRecentWins(t *testing.T) {
	table := NewTable(Hints{}, source.Span{End: 100})
	res := NewResolver(table, table.Root, nil)
	first := res.Declare(Symbol{Name: "x", Kind: SymbolVariable, Type: "int"})
	second := res.Declare(Symbol{Name: "x", Kind: SymbolVariable, Type: "string"})

	root := table.Scope(table.Root)
	if root.NameIndex["x"] != second {
		t.Fatalf("expected name index to hold the later declaration")
	}
	if len(root.Symbols) != 2 || root.Symbols[0] != first {
		t.Fatalf("expected both declarations kept in order, got %v", root.Symbols)
	}
	if got := table.Globals(); len(got) != 1 || got[0] != second {
		t.Fatalf("Globals = %v, want [%d]", got, second)
	}
}

func TestValidateDetectsBrokenInvariants(t *testing.T) {
	table := NewTable(Hints{}, source.Span{Start: 0, End: 10})
	a := table.Scopes.New(ScopeBlock, "block", table.Root, source.Span{Start: 2, End: 6})
	b := table.Scopes.New(ScopeBlock, "block", table.Root, source.Span{Start: 4, End: 8})
	table.Scopes.New(ScopeBlock, "block", a, source.Span{Start: 0, End: 9})
	table.Scope(b).NameIndex["ghost"] = SymbolID(7)

	if err := table.Validate(); err == nil {
		t.Fatalf("expected validation errors")
	}
}

func TestDeclareWithoutScopeIsNoop(t *testing.T) {
	table := NewTable(Hints{}, source.Span{End: 10})
	res := NewResolver(table, NoScopeID, nil)
	if id := res.Declare(Symbol{Name: "x"}); id.IsValid() {
		t.Fatalf("expected invalid id without an active scope")
	}
}

//go:build !lpcls_debug

package symbols

func debugScopeMismatch(ScopeID, ScopeID) {}

package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/wasc/script/parser"
)

// documentSymbols outlines the definitions of a program. Included units are
// not descended into; their nodes live in other documents.
func documentSymbols(program *parser.Program, src *parser.Source) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for _, pkg := range program.Packages {
		name := strings.Join(pkg.Name, ".")
		if name == "" {
			name = "(default package)"
		}
		sym := newSymbol(src, name, protocol.SymbolKindPackage, pkg.Loc, parser.Span{})
		if pkg.Block != nil {
			sym.Children = directiveSymbols(src, pkg.Block.Directives, false)
		}
		symbols = append(symbols, sym)
	}
	return append(symbols, directiveSymbols(src, program.Directives, false)...)
}

func directiveSymbols(src *parser.Source, directives []parser.Directive, inType bool) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol
	for _, d := range directives {
		switch d := d.(type) {
		case *parser.ClassDefinition:
			sym := newSymbol(src, d.Name, protocol.SymbolKindClass, d.Loc, d.NameSpan)
			if d.Block != nil {
				sym.Children = directiveSymbols(src, d.Block.Directives, true)
			}
			symbols = append(symbols, sym)
		case *parser.InterfaceDefinition:
			sym := newSymbol(src, d.Name, protocol.SymbolKindInterface, d.Loc, d.NameSpan)
			if d.Block != nil {
				sym.Children = directiveSymbols(src, d.Block.Directives, true)
			}
			symbols = append(symbols, sym)
		case *parser.EnumDefinition:
			sym := newSymbol(src, d.Name, protocol.SymbolKindEnum, d.Loc, d.NameSpan)
			if d.Block != nil {
				sym.Children = directiveSymbols(src, d.Block.Directives, true)
			}
			symbols = append(symbols, sym)
		case *parser.NamespaceDefinition:
			symbols = append(symbols, newSymbol(src, d.Name, protocol.SymbolKindNamespace, d.Loc, d.NameSpan))
		case *parser.TypeDefinition:
			symbols = append(symbols, newSymbol(src, d.Name, protocol.SymbolKindTypeParameter, d.Loc, d.NameSpan))
		case *parser.FunctionDefinition:
			symbols = append(symbols, newSymbol(src, d.Name, functionSymbolKind(d.FunctionKind, inType), d.Loc, d.NameSpan))
		case *parser.VariableDefinition:
			kind := protocol.SymbolKindVariable
			switch {
			case d.Const:
				kind = protocol.SymbolKindConstant
			case inType:
				kind = protocol.SymbolKindField
			}
			for _, b := range d.Bindings {
				if np, ok := b.Pattern.(*parser.NamePattern); ok {
					symbols = append(symbols, newSymbol(src, np.Name, kind, b.Loc, np.NameSpan))
				}
			}
		case *parser.Block:
			symbols = append(symbols, directiveSymbols(src, d.Directives, inType)...)
		}
	}
	return symbols
}

func functionSymbolKind(kind parser.FunctionKind, inType bool) protocol.SymbolKind {
	switch kind {
	case parser.FunctionConstructor:
		return protocol.SymbolKindConstructor
	case parser.FunctionGetter, parser.FunctionSetter:
		return protocol.SymbolKindProperty
	}
	if inType {
		return protocol.SymbolKindMethod
	}
	return protocol.SymbolKindFunction
}

func newSymbol(src *parser.Source, name string, kind protocol.SymbolKind, loc, nameSpan parser.Span) protocol.DocumentSymbol {
	r := toRange(src, loc)
	selection := r
	if nameSpan.End > nameSpan.Start && nameSpan.Start >= loc.Start && nameSpan.End <= loc.End {
		selection = toRange(src, nameSpan)
	}
	return protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          r,
		SelectionRange: selection,
	}
}

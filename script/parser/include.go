package parser

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// parseInclude parses `include "path"` and the unit it names. Failing to
// find or read the file is only a warning; the directive then carries no
// directives of its own.
func (p *Parser) parseInclude(ctx parseContext) (Directive, error) {
	p.mark()
	if err := p.next(); err != nil {
		return nil, err
	}
	t := p.tok()
	if t.Kind != TokenString {
		return nil, p.failExpecting(TokenString)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	if err := p.terminate(); err != nil {
		return nil, err
	}
	d := &IncludeDirective{Path: t.Value}
	p.include(d, t.Span())
	return finish(p, d), nil
}

func (p *Parser) include(d *IncludeDirective, loc Span) {
	target, ok := p.resolveInclude(d.Path)
	if !ok {
		p.log.Warningf("could not resolve include %q from %q", d.Path, p.source.URL)
		p.warn(ErrCouldNotResolveInclude, loc, StringArgument(d.Path))
		return
	}
	if p.source.includeChain(target) {
		p.log.Warningf("circular include %s", target)
		p.warn(ErrCircularInclude, loc, StringArgument(target))
		return
	}
	if depth := p.source.includeDepth() + 1; depth > p.options.maxIncludeDepth {
		p.warn(ErrIncludeTooDeep, loc, StringArgument(target), p.options.maxIncludeDepth)
		return
	}
	data, err := p.readInclude(target)
	if err != nil {
		p.log.Warningf("could not read include %s: %s", target, err.Error())
		p.warn(ErrCouldNotReadInclude, loc, StringArgument(target), StringArgument(err.Error()))
		return
	}
	p.log.Debugf("including %s", target)

	child := NewSource(string(data), target)
	child.Parent = p.source
	p.source.Included = append(p.source.Included, child)
	program := newParser(child, p.options).ParseProgram()
	for _, diag := range child.Diagnostics {
		p.source.AddDiagnostic(diag)
	}
	d.Source = child
	d.Packages = program.Packages
	d.Directives = program.Directives
}

// resolveInclude joins rel to the directory of the including unit. With a
// file system configured the result must be a valid fs path.
func (p *Parser) resolveInclude(rel string) (string, bool) {
	if rel == "" {
		return "", false
	}
	if p.options.fsys != nil {
		target := path.Clean(rel)
		if !path.IsAbs(rel) {
			target = path.Join(path.Dir(p.source.URL), rel)
		}
		target = trimRoot(target)
		return target, fs.ValidPath(target)
	}
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel), true
	}
	dir := "."
	if p.source.URL != "" {
		dir = filepath.Dir(p.source.URL)
	}
	return filepath.Join(dir, rel), true
}

func trimRoot(name string) string {
	for len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	if name == "" {
		return "."
	}
	return name
}

func (p *Parser) readInclude(target string) ([]byte, error) {
	if p.options.fsys != nil {
		return fs.ReadFile(p.options.fsys, target)
	}
	return os.ReadFile(target)
}

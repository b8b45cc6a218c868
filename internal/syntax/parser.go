package syntax

import (
	"fmt"
	"strings"

	m "arealint.dev/pkg/arealint/internal/model"
)

// ParseError reports a source unit that could not be parsed. A parse failure
// is not recoverable: the caller aborts the whole analysis run.
type ParseError struct {
	Path m.Path
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// Parse scans src and returns the module definitions found in it. Nested
// definitions concatenate the enclosing module's name, so
//
//	defmodule Invoicing do
//	  defmodule Invoice do ... end
//	end
//
// yields Invoicing and Invoicing.Invoice.
func Parse(path m.Path, src []byte) (*SourceUnit, error) {
	p := &parser{
		lex:  newLexer(src),
		unit: &SourceUnit{Path: path},
	}

	if err := p.run(); err != nil {
		return nil, err
	}

	return p.unit, nil
}

// frame is one entry of the block stack. Module frames carry the node being
// built; plain do/fn blocks carry nil.
type frame struct {
	node *ModuleNode
}

type parser struct {
	lex   *lexer
	unit  *SourceUnit
	stack []frame
}

func (p *parser) errorf(line int, format string, args ...any) error {
	return &ParseError{Path: p.unit.Path, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// current returns the innermost enclosing module, or nil at the top level.
func (p *parser) current() *ModuleNode {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].node != nil {
			return p.stack[i].node
		}
	}

	return nil
}

func (p *parser) run() error {
	for {
		tok := p.lex.next()

		switch tok.kind {
		case tokenEOF:
			if len(p.stack) > 0 {
				return p.errorf(tok.line, "missing end for open block")
			}

			return nil
		case tokenWord:
			if err := p.word(tok); err != nil {
				return err
			}
		case tokenQualified:
			if mod := p.current(); mod != nil {
				mod.Refs = append(mod.Refs, RefNode{Name: tok.text, Line: tok.line})
			}
		case tokenAttr:
			if tok.text == "moduledoc" {
				p.moduledoc(tok.line)
			}
		default:
			// Strings, atoms, keyword keys and punctuation carry no
			// boundary information on their own.
		}
	}
}

func (p *parser) word(tok token) error {
	switch tok.text {
	case "defmodule":
		return p.defmodule(tok.line)
	case "do", "fn":
		p.stack = append(p.stack, frame{})
	case "end":
		if len(p.stack) == 0 {
			return p.errorf(tok.line, "unexpected end")
		}

		p.stack = p.stack[:len(p.stack)-1]
	case "alias":
		return p.alias(tok.line)
	}

	return nil
}

func (p *parser) defmodule(line int) error {
	name := p.lex.next()
	if name.kind != tokenQualified {
		return p.errorf(name.line, "defmodule: expected module name, got %q", name.text)
	}

	doTok := p.lex.next()
	if doTok.kind != tokenWord || doTok.text != "do" {
		return p.errorf(doTok.line, "defmodule %s: expected do", name.text)
	}

	node := &ModuleNode{Name: name.text, Line: line}

	if parent := p.current(); parent != nil {
		node.Name = parent.Name + "." + name.text
		parent.Children = append(parent.Children, node)
	} else {
		p.unit.Modules = append(p.unit.Modules, node)
	}

	p.stack = append(p.stack, frame{node: node})

	return nil
}

// moduledoc records the declared description attribute of the innermost
// module. The literal `false` means the module opts out of being public;
// any other value counts as a present description.
func (p *parser) moduledoc(line int) {
	value := p.lex.next()

	mod := p.current()
	if mod == nil || mod.Doc != nil {
		return
	}

	declared := &DocAttr{Value: true, Line: line}
	if value.kind == tokenWord && value.text == "false" {
		declared.Value = false
	}

	mod.Doc = declared
}

// alias handles `alias A.B.C`, `alias A.B.C, as: X` and `alias A.B.{C, D}`.
func (p *parser) alias(line int) error {
	target := p.lex.next()
	if target.kind != tokenQualified || strings.HasPrefix(target.text, SelfToken) {
		// Dynamic or self-relative aliases are outside the syntactic
		// best-effort contract; record nothing.
		return nil
	}

	mod := p.current()

	next := p.lex.next()

	// Multi-alias: the chain lexes up to the prefix, followed by ".{".
	if next.kind == tokenPunct && next.text == "." {
		return p.aliasGroup(mod, target.text)
	}

	record := func(as string) {
		if mod == nil {
			return
		}

		mod.Aliases = append(mod.Aliases, AliasNode{Target: target.text, As: as, Line: line})
	}

	if next.kind == tokenPunct && next.text == "," {
		asTok := p.lex.next()
		if asTok.kind == tokenKeyword && asTok.text == "as" {
			asName := p.lex.next()
			if asName.kind != tokenQualified {
				return p.errorf(asName.line, "alias %s: expected name after as:", target.text)
			}

			record(asName.text)

			return nil
		}

		// Not an as: clause; fall through with the default short name and
		// let the unrecognized token be handled on the next loop turn.
		record(lastSegment(target.text))

		return p.replay(asTok)
	}

	record(lastSegment(target.text))

	return p.replay(next)
}

// aliasGroup reads the `{C, D}` tail of a multi-alias declaration.
func (p *parser) aliasGroup(mod *ModuleNode, prefix string) error {
	open := p.lex.next()
	if open.kind != tokenPunct || open.text != "{" {
		return p.errorf(open.line, "alias %s: expected { after dot", prefix)
	}

	for {
		tok := p.lex.next()

		switch {
		case tok.kind == tokenQualified:
			if mod != nil {
				mod.Aliases = append(mod.Aliases, AliasNode{
					Target: prefix + "." + tok.text,
					As:     lastSegment(tok.text),
					Line:   tok.line,
				})
			}
		case tok.kind == tokenPunct && tok.text == ",":
		case tok.kind == tokenPunct && tok.text == "}":
			return nil
		case tok.kind == tokenEOF:
			return p.errorf(tok.line, "alias %s: unterminated group", prefix)
		default:
			return p.errorf(tok.line, "alias %s: unexpected %q in group", prefix, tok.text)
		}
	}
}

// replay feeds a token that was read ahead back through the main loop
// dispatch, so block tracking stays balanced.
func (p *parser) replay(tok token) error {
	switch tok.kind {
	case tokenWord:
		return p.word(tok)
	case tokenQualified:
		if mod := p.current(); mod != nil {
			mod.Refs = append(mod.Refs, RefNode{Name: tok.text, Line: tok.line})
		}
	case tokenAttr:
		if tok.text == "moduledoc" {
			p.moduledoc(tok.line)
		}
	}

	return nil
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}

	return name
}

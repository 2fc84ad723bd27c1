// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package syntax

import (
	"fmt"

	sable "github.com/sable-lang/sable"
)

// Parser is a recursive-descent parser over a pre-tokenized stream.
// Precedence, low to high: ';' (Pipe, right-associative) < '||' < '&&'
// < '==' < '+'/'-' < '*'/'/'/'%' < unary '-' < application < atoms.
type Parser struct {
	toks []Token
	pos  int
}

func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

// ParsePhrase parses a single top-level phrase from src: "val x = e",
// "rec f = fun x -> e", "data Name = Ctor(a,b) | ... ", or a bare
// expression (Calculate).
func ParsePhrase(src string) (sable.Phrase, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := NewParser(toks)
	phrase, err := p.parsePhrase()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != TokEOF {
		return nil, fmt.Errorf("unexpected trailing input at %d: %q", p.cur().Pos, p.cur().Text)
	}
	return phrase, nil
}

func (p *Parser) cur() Token  { return p.toks[p.pos] }
func (p *Parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k TokenKind) (Token, error) {
	if p.cur().Kind != k {
		if p.cur().Kind == TokEOF {
			return Token{}, ErrUnexpectedEOF{}
		}
		return Token{}, fmt.Errorf("expected %s, got %q at %d", k, p.cur().Text, p.cur().Pos)
	}
	return p.advance(), nil
}

func (p *Parser) parsePhrase() (sable.Phrase, error) {
	switch p.cur().Kind {
	case TokVal:
		p.advance()
		name, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokEquals); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return sable.DefinePhrase{Defn: sable.Val{Name: name.Text, Value: e}}, nil
	case TokRec:
		p.advance()
		name, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokEquals); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return sable.DefinePhrase{Defn: sable.Rec{Name: name.Text, Value: e}}, nil
	case TokData:
		return p.parseData()
	default:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return sable.Calculate{Expr: e}, nil
	}
}

func (p *Parser) parseData() (sable.Phrase, error) {
	p.advance() // 'data'
	name, err := p.expect(TokUpperIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokEquals); err != nil {
		return nil, err
	}
	var ctors []sable.CtorDefn
	for {
		ctorName, err := p.expect(TokUpperIdent)
		if err != nil {
			return nil, err
		}
		arity := 0
		if p.cur().Kind == TokLParen {
			p.advance()
			if p.cur().Kind != TokRParen {
				arity++
				if _, err := p.expect(TokIdent); err != nil {
					return nil, err
				}
				for p.cur().Kind == TokComma {
					p.advance()
					arity++
					if _, err := p.expect(TokIdent); err != nil {
						return nil, err
					}
				}
			}
			if _, err := p.expect(TokRParen); err != nil {
				return nil, err
			}
		}
		ctors = append(ctors, sable.CtorDefn{Name: ctorName.Text, Arity: arity})
		if p.cur().Kind == TokPipe {
			p.advance()
			continue
		}
		break
	}
	return sable.DefinePhrase{Defn: sable.Data{TypeName: name.Text, Ctors: ctors}}, nil
}

// parseExpr is the lowest-precedence entry point: sequencing ("Pipe"),
// parsed right-associative (e1 ; e2 ; e3 == Pipe(e1, Pipe(e2, e3))).
func (p *Parser) parseExpr() (sable.Expr, error) {
	first, err := p.parseBindingForm()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == TokSemi {
		p.advance()
		rest, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return sable.Pipe{First: first, Second: rest}, nil
	}
	return first, nil
}

// parseBindingForm routes to the ML-style binder keywords (let, if, fun,
// match, try) that extend as far right as possible, falling through to
// the operator-precedence chain for everything else.
func (p *Parser) parseBindingForm() (sable.Expr, error) {
	switch p.cur().Kind {
	case TokLet:
		return p.parseLet()
	case TokIf:
		return p.parseIf()
	case TokFun:
		return p.parseFun()
	case TokMatch:
		return p.parseMatch()
	case TokTry:
		return p.parseTry()
	case TokThrow:
		p.advance()
		e, err := p.parseBindingForm()
		if err != nil {
			return nil, err
		}
		return sable.Throw{Value: e}, nil
	default:
		return p.parseOrOr()
	}
}

func (p *Parser) parseLet() (sable.Expr, error) {
	p.advance() // 'let'
	var defn sable.Defn
	if p.cur().Kind == TokRec {
		p.advance()
		name, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokEquals); err != nil {
			return nil, err
		}
		rhs, err := p.parseBindingForm()
		if err != nil {
			return nil, err
		}
		defn = sable.Rec{Name: name.Text, Value: rhs}
	} else {
		name, err := p.expect(TokIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokEquals); err != nil {
			return nil, err
		}
		rhs, err := p.parseBindingForm()
		if err != nil {
			return nil, err
		}
		defn = sable.Val{Name: name.Text, Value: rhs}
	}
	if _, err := p.expect(TokIn); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return sable.Let{Defn: defn, Body: body}, nil
}

func (p *Parser) parseIf() (sable.Expr, error) {
	p.advance() // 'if'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokThen); err != nil {
		return nil, err
	}
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokElse); err != nil {
		return nil, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return sable.If{Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) parseFun() (sable.Expr, error) {
	p.advance() // 'fun'
	param, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokArrow); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return sable.Lambda{Param: param.Text, Body: body}, nil
}

func (p *Parser) parseMatch() (sable.Expr, error) {
	p.advance() // 'match'
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokWith); err != nil {
		return nil, err
	}
	cases, err := p.parseCases()
	if err != nil {
		return nil, err
	}
	return sable.Match{Scrutinee: scrutinee, Cases: cases}, nil
}

func (p *Parser) parseTry() (sable.Expr, error) {
	p.advance() // 'try'
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokCatch); err != nil {
		return nil, err
	}
	cases, err := p.parseCases()
	if err != nil {
		return nil, err
	}
	return sable.TryCatch{Body: body, Cases: cases}, nil
}

// parseCases parses a leading-'|'-optional list of "pattern -> body" arms.
func (p *Parser) parseCases() ([]sable.Case, error) {
	var cases []sable.Case
	for {
		if p.cur().Kind == TokPipe {
			p.advance()
		} else if len(cases) > 0 {
			break
		}
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokArrow); err != nil {
			return nil, err
		}
		body, err := p.parseBindingForm()
		if err != nil {
			return nil, err
		}
		cases = append(cases, sable.Case{Pattern: pat, Body: body})
		if p.cur().Kind != TokPipe {
			break
		}
	}
	return cases, nil
}

// parsePattern parses a pattern: a lowercase variable, or a constructor
// tag applied to zero or more sub-patterns (Cons x xs).
func (p *Parser) parsePattern() (sable.Expr, error) {
	switch p.cur().Kind {
	case TokIdent:
		name := p.advance().Text
		return sable.Variable{Name: name}, nil
	case TokUpperIdent:
		name := p.advance().Text
		var args []sable.Expr
		for p.cur().Kind == TokIdent || p.cur().Kind == TokUpperIdent || p.cur().Kind == TokInt || p.cur().Kind == TokLParen {
			sub, err := p.parseAtomPattern()
			if err != nil {
				return nil, err
			}
			args = append(args, sub)
		}
		return sable.Injector{Name: name, Args: args}, nil
	case TokInt:
		tok := p.advance()
		return sable.Number{Value: sable.NewIntFromBig(tok.Int)}, nil
	case TokLParen:
		p.advance()
		sub, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return sub, nil
	default:
		return nil, fmt.Errorf("expected pattern, got %q at %d", p.cur().Text, p.cur().Pos)
	}
}

func (p *Parser) parseAtomPattern() (sable.Expr, error) {
	switch p.cur().Kind {
	case TokIdent:
		return sable.Variable{Name: p.advance().Text}, nil
	case TokInt:
		tok := p.advance()
		return sable.Number{Value: sable.NewIntFromBig(tok.Int)}, nil
	case TokUpperIdent:
		return sable.Injector{Name: p.advance().Text}, nil
	case TokLParen:
		p.advance()
		sub, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return sub, nil
	default:
		return nil, fmt.Errorf("expected pattern, got %q at %d", p.cur().Text, p.cur().Pos)
	}
}

func (p *Parser) parseOrOr() (sable.Expr, error) {
	left, err := p.parseAndAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokOrOr {
		p.advance()
		right, err := p.parseAndAnd()
		if err != nil {
			return nil, err
		}
		left = sable.BinPrim{Op: sable.OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAndAnd() (sable.Expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokAndAnd {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = sable.BinPrim{Op: sable.OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (sable.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokEqEq {
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = sable.BinPrim{Op: sable.OpEqual, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAdditive() (sable.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokPlus || p.cur().Kind == TokMinus {
		op := sable.OpPlus
		if p.cur().Kind == TokMinus {
			op = sable.OpMinus
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = sable.BinPrim{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (sable.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == TokStar || p.cur().Kind == TokSlash || p.cur().Kind == TokPercent {
		var op sable.BinOp
		switch p.cur().Kind {
		case TokStar:
			op = sable.OpTimes
		case TokSlash:
			op = sable.OpDiv
		default:
			op = sable.OpMod
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = sable.BinPrim{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (sable.Expr, error) {
	if p.cur().Kind == TokMinus {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return sable.MonPrim{Op: sable.OpNeg, Operand: operand}, nil
	}
	return p.parseApplication()
}

// parseApplication handles juxtaposition (f x y), the tightest binding
// form short of an atom itself, left-associative. A constructor tag
// (uppercase-leading identifier) heading the chain builds a literal
// Injector node directly — `Cons 1 (Cons 2 Nil)` parses straight to
// nested Injector values, independent of any `data` declaration, per
// §4.4's direct Injector(name, args) evaluation rule.
func (p *Parser) parseApplication() (sable.Expr, error) {
	if p.cur().Kind == TokUpperIdent {
		return p.parseInjectorApplication()
	}
	fn, err := p.parseConcurrencyPrimitive()
	if err != nil {
		return nil, err
	}
	for p.startsAtom() {
		arg, err := p.parseConcurrencyPrimitive()
		if err != nil {
			return nil, err
		}
		fn = sable.Apply{Fn: fn, Arg: arg}
	}
	return fn, nil
}

// parseInjectorApplication collects a constructor tag's arguments as
// atoms (each argument does not itself extend into a further unparenthesized
// application — parenthesize nested constructor applications, matching
// ordinary application's juxtaposition rules).
func (p *Parser) parseInjectorApplication() (sable.Expr, error) {
	name := p.advance().Text
	var args []sable.Expr
	for p.startsAtom() {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return sable.Injector{Name: name, Args: args}, nil
}

func (p *Parser) startsAtom() bool {
	switch p.cur().Kind {
	case TokInt, TokIdent, TokUpperIdent, TokLParen, TokNewchan:
		return true
	default:
		return false
	}
}

// parseConcurrencyPrimitive handles the newchan/send/sendp/recv/recvp/close
// keyword forms, which take their arguments as single atoms, not full
// application chains: `send c f x` parses as `(send c f) x`, so an
// application argument must be parenthesized (`send c (f x)`).
func (p *Parser) parseConcurrencyPrimitive() (sable.Expr, error) {
	switch p.cur().Kind {
	case TokNewchan:
		p.advance()
		return sable.NewChan{}, nil
	case TokClose:
		p.advance()
		ch, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return sable.Close{Chan: ch}, nil
	case TokSend:
		p.advance()
		ch, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		v, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return sable.Send{Chan: ch, Value: v}, nil
	case TokSendP:
		p.advance()
		ch, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		v, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return sable.SendP{Chan: ch, Value: v}, nil
	case TokRecv:
		p.advance()
		ch, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return sable.Receive{Chan: ch}, nil
	case TokRecvP:
		p.advance()
		ch, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return sable.ReceiveP{Chan: ch}, nil
	default:
		return p.parseAtom()
	}
}

// parseAtom parses the tightest-binding forms: literals, variables,
// parenthesized expressions, tuples, and parallel compositions. `(e)` is
// a grouped expression; `(e1, e2, ...)` is a TupleLit; `(e1 | e2 | ...)`
// is Parallel; `()` is the variable `unit`.
func (p *Parser) parseAtom() (sable.Expr, error) {
	switch p.cur().Kind {
	case TokInt:
		tok := p.advance()
		return sable.Number{Value: sable.NewIntFromBig(tok.Int)}, nil
	case TokIdent:
		tok := p.advance()
		return sable.Variable{Name: tok.Text}, nil
	case TokUpperIdent:
		tok := p.advance()
		return sable.Injector{Name: tok.Text}, nil
	case TokNewchan:
		p.advance()
		return sable.NewChan{}, nil
	case TokLParen:
		return p.parseParenthesized()
	default:
		if p.cur().Kind == TokEOF {
			return nil, ErrUnexpectedEOF{}
		}
		return nil, fmt.Errorf("expected an expression, got %q at %d", p.cur().Text, p.cur().Pos)
	}
}

func (p *Parser) parseParenthesized() (sable.Expr, error) {
	p.advance() // '('
	if p.cur().Kind == TokRParen {
		p.advance()
		return sable.Variable{Name: "unit"}, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	switch p.cur().Kind {
	case TokRParen:
		p.advance()
		return first, nil
	case TokComma:
		elems := []sable.Expr{first}
		for p.cur().Kind == TokComma {
			p.advance()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return sable.TupleLit{Elems: elems}, nil
	case TokPipe:
		components := []sable.Expr{first}
		for p.cur().Kind == TokPipe {
			p.advance()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			components = append(components, e)
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return sable.Parallel{Components: components}, nil
	default:
		if p.cur().Kind == TokEOF {
			return nil, ErrUnexpectedEOF{}
		}
		return nil, fmt.Errorf("expected ')', ',' or '|', got %q at %d", p.cur().Text, p.cur().Pos)
	}
}

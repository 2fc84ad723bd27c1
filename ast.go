// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

// The node types in this file are the fixed contract between the
// evaluator and its external collaborators (§6): a lexer/parser produces
// them, and Obey consumes Phrase values. Their shape is specified; their
// producer (internal/syntax) is supplementary tooling, not part of the
// evaluation core.

// Expr is any evaluable expression node.
type Expr interface {
	isExpr()
}

// Number is an integer literal.
type Number struct {
	Value VInt
}

func (Number) isExpr() {}

// Variable is a name reference.
type Variable struct {
	Name Identifier
}

func (Variable) isExpr() {}

// Apply is function application: Fn applied to Arg.
type Apply struct {
	Fn  Expr
	Arg Expr
}

func (Apply) isExpr() {}

// If is a conditional; Cond must evaluate to VBool.
type If struct {
	Cond, Then, Else Expr
}

func (If) isExpr() {}

// Lambda is a single-parameter function literal.
type Lambda struct {
	Param Identifier
	Body  Expr
}

func (Lambda) isExpr() {}

// Pipe evaluates First, discards the result, then evaluates Second.
type Pipe struct {
	First, Second Expr
}

func (Pipe) isExpr() {}

// Let elaborates Defn into a child environment, then evaluates Body under it.
type Let struct {
	Defn Defn
	Body Expr
}

func (Let) isExpr() {}

// Injector applies a constructor tag to evaluated arguments.
type Injector struct {
	Name Identifier
	Args []Expr
}

func (Injector) isExpr() {}

// TupleLit is a literal tuple expression `(e1, e2, ...)`, at least two
// elements (a single parenthesized expression is just grouping).
type TupleLit struct {
	Elems []Expr
}

func (TupleLit) isExpr() {}

// Case is one arm of a Match or TryCatch: Pattern is a syntactic subset
// of Expr (Variable, Number, Injector, and flattened Apply spines — see
// pattern.go).
type Case struct {
	Pattern Expr
	Body    Expr
}

// Match evaluates Scrutinee and dispatches to the first matching Case.
type Match struct {
	Scrutinee Expr
	Cases     []Case
}

func (Match) isExpr() {}

// NewChan allocates a fresh rendezvous channel.
type NewChan struct{}

func (NewChan) isExpr() {}

// Close seals the channel produced by Chan.
type Close struct {
	Chan Expr
}

func (Close) isExpr() {}

// Send is the user-facing send: a propagated ExcClosed escapes to the
// nearest exception prompt. SendP is the low-level primitive that
// returns the Exception value instead of escaping with it.
type Send struct {
	Chan, Value Expr
}

func (Send) isExpr() {}

type SendP struct {
	Chan, Value Expr
}

func (SendP) isExpr() {}

// Receive/ReceiveP mirror Send/SendP for the receiving side.
type Receive struct {
	Chan Expr
}

func (Receive) isExpr() {}

type ReceiveP struct {
	Chan Expr
}

func (ReceiveP) isExpr() {}

// Parallel evaluates each component concurrently under the scheduler,
// producing a Tuple of results in original component order.
type Parallel struct {
	Components []Expr
}

func (Parallel) isExpr() {}

// TryCatch evaluates Body under a fresh exception prompt, dispatching an
// escaped Exception to the first matching Case, or re-raising it.
type TryCatch struct {
	Body  Expr
	Cases []Case
}

func (TryCatch) isExpr() {}

// Throw raises e (which must evaluate to a VInjection) as an exception.
type Throw struct {
	Value Expr
}

func (Throw) isExpr() {}

// BinOp is a binary primitive operator.
type BinOp int

const (
	OpPlus BinOp = iota
	OpMinus
	OpTimes
	OpDiv
	OpMod
	OpAnd
	OpOr
	OpEqual
)

// BinPrim applies a binary primitive to two operands.
type BinPrim struct {
	Op          BinOp
	Left, Right Expr
}

func (BinPrim) isExpr() {}

// MonOp is a unary primitive operator.
type MonOp int

const (
	OpNeg MonOp = iota
)

// MonPrim applies a unary primitive to one operand.
type MonPrim struct {
	Op      MonOp
	Operand Expr
}

func (MonPrim) isExpr() {}

// Defn is any top-level or let-bound definition form.
type Defn interface {
	isDefn()
	// DefnName returns the principal name introduced by this
	// definition, used by "Added definition: <name>" (§6). For Data it is
	// the type name.
	DefnName() Identifier
}

// Val binds Name to the value of Value.
type Val struct {
	Name  Identifier
	Value Expr
}

func (Val) isDefn() {}
func (d Val) DefnName() Identifier { return d.Name }

// Rec binds Name to a self-referential closure; Value must be a Lambda.
type Rec struct {
	Name  Identifier
	Value Expr
}

func (Rec) isDefn() {}
func (d Rec) DefnName() Identifier { return d.Name }

// CtorDefn is one constructor introduced by a Data definition, bound to a
// curried constructor function of Arity parameters (Arity 0 binds the
// nullary injection value directly).
type CtorDefn struct {
	Name  Identifier
	Arity int
}

// Data declares a family of constructors for TypeName.
type Data struct {
	TypeName string
	Ctors    []CtorDefn
}

func (Data) isDefn() {}
func (d Data) DefnName() Identifier { return d.TypeName }

// Phrase is a single top-level REPL unit: either an expression to
// Calculate or a Defn to DefinePhrase.
type Phrase interface {
	isPhrase()
}

// Calculate evaluates Expr and displays its value.
type Calculate struct {
	Expr Expr
}

func (Calculate) isPhrase() {}

// DefinePhrase elaborates Defn into the environment. Named distinctly from
// the env.go Define function — a phrase that *defines* something, not the
// environment-extension primitive itself.
type DefinePhrase struct {
	Defn Defn
}

func (DefinePhrase) isPhrase() {}

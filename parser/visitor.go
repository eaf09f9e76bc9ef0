package parser

import "github.com/carlkingsford/toyvm/value"

// ModelVisitor is the callback interface the parser drives while it reads
// the lexeme stream. Expression events fire in postfix order (operands
// before operators); statement events are structural markers an emitter
// uses to resolve forward jumps, the same role post-processing passes
// over a fully built block list (label assignment, reference smoothing)
// play in a batch compiler, done here incrementally instead.
type ModelVisitor interface {
	VisitProgram() error
	VisitDeclarations() error
	VisitVariableDeclaration(declType value.Tag, name string, initial *value.Value) error
	VisitOperators() error

	VisitExpressionOperator() error

	VisitIf() error
	VisitElse() error
	VisitEndIf() error

	VisitWhile() error
	VisitWhileBody() error
	VisitEndWhile() error

	VisitDoWhile() error
	VisitEndDoWhile() error

	VisitBreak() error
	VisitContinue() error

	VisitRead(name string) error
	VisitWrite() error

	VisitVariableInvokation(name string) error
	VisitConstantInvokation(v value.Value) error
	VisitBinaryOperator(op value.BinOp) error
	VisitUnaryOperator(op value.UnOp) error
}

package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carlkingsford/toyvm/parser"
	"github.com/carlkingsford/toyvm/value"
)

// recordingVisitor logs every visit as a short opcode-like string, so
// tests can assert on event order without building a real emitter.
type recordingVisitor struct {
	events []string
}

func (r *recordingVisitor) emit(s string) error {
	r.events = append(r.events, s)
	return nil
}

func (r *recordingVisitor) VisitProgram() error      { return r.emit("Program") }
func (r *recordingVisitor) VisitDeclarations() error { return r.emit("Declarations") }
func (r *recordingVisitor) VisitVariableDeclaration(t value.Tag, name string, initial *value.Value) error {
	if initial != nil {
		return r.emit("Decl(" + name + "=" + initial.String() + ")")
	}
	return r.emit("Decl(" + name + ")")
}
func (r *recordingVisitor) VisitOperators() error         { return r.emit("Operators") }
func (r *recordingVisitor) VisitExpressionOperator() error { return r.emit("ExprStmt") }
func (r *recordingVisitor) VisitIf() error                { return r.emit("If") }
func (r *recordingVisitor) VisitElse() error              { return r.emit("Else") }
func (r *recordingVisitor) VisitEndIf() error             { return r.emit("EndIf") }
func (r *recordingVisitor) VisitWhile() error             { return r.emit("While") }
func (r *recordingVisitor) VisitWhileBody() error         { return r.emit("WhileBody") }
func (r *recordingVisitor) VisitEndWhile() error          { return r.emit("EndWhile") }
func (r *recordingVisitor) VisitDoWhile() error           { return r.emit("DoWhile") }
func (r *recordingVisitor) VisitEndDoWhile() error        { return r.emit("EndDoWhile") }
func (r *recordingVisitor) VisitBreak() error             { return r.emit("Break") }
func (r *recordingVisitor) VisitContinue() error          { return r.emit("Continue") }
func (r *recordingVisitor) VisitRead(name string) error   { return r.emit("Read(" + name + ")") }
func (r *recordingVisitor) VisitWrite() error              { return r.emit("Write") }
func (r *recordingVisitor) VisitVariableInvokation(name string) error {
	return r.emit("Var(" + name + ")")
}
func (r *recordingVisitor) VisitConstantInvokation(v value.Value) error {
	return r.emit("Const(" + v.String() + ")")
}
func (r *recordingVisitor) VisitBinaryOperator(op value.BinOp) error {
	return r.emit("Bin(" + op.String() + ")")
}
func (r *recordingVisitor) VisitUnaryOperator(op value.UnOp) error {
	return r.emit("Un(" + op.String() + ")")
}

func parseAll(t *testing.T, src string) []string {
	t.Helper()
	v := &recordingVisitor{}
	err := parser.Parse("test.tvm", strings.NewReader(src), v)
	require.NoError(t, err)
	return v.events
}

func TestParseEmptyProgram(t *testing.T) {
	events := parseAll(t, "program { }")
	require.Equal(t, []string{"Program", "Operators"}, events)
}

func TestParseDeclarationsFireOncePerFirstDecl(t *testing.T) {
	events := parseAll(t, `program {
		int a, b = 2;
		real c;
	}`)
	require.Equal(t, []string{
		"Program",
		"Declarations",
		"Decl(a)",
		"Decl(b=2)",
		"Decl(c)",
		"Operators",
	}, events)
}

func TestParseExpressionPrecedence(t *testing.T) {
	events := parseAll(t, `program { int a; a = 1 + 2 * 3; }`)
	require.Equal(t, []string{
		"Program",
		"Declarations",
		"Decl(a)",
		"Operators",
		"Var(a)",
		"Const(1)",
		"Const(2)",
		"Const(3)",
		"Bin(*)",
		"Bin(+)",
		"Bin(=)",
		"ExprStmt",
	}, events)
}

func TestParseUnaryAndNot(t *testing.T) {
	events := parseAll(t, `program { int a; a = -1; }`)
	require.Equal(t, []string{
		"Program", "Declarations", "Decl(a)", "Operators",
		"Var(a)", "Const(1)", "Un(-)", "Bin(=)", "ExprStmt",
	}, events)

	events = parseAll(t, `program { boolean b; b = not true; }`)
	require.Equal(t, []string{
		"Program", "Declarations", "Decl(b)", "Operators",
		"Var(b)", "Const(true)", "Un(not)", "Bin(=)", "ExprStmt",
	}, events)
}

func TestParseDoubleUnaryMinus(t *testing.T) {
	events := parseAll(t, `program { int a; a = --1; }`)
	require.Equal(t, []string{
		"Program", "Declarations", "Decl(a)", "Operators",
		"Var(a)", "Const(1)", "Un(-)", "Un(-)", "Bin(=)", "ExprStmt",
	}, events)
}

func TestParseIfElse(t *testing.T) {
	events := parseAll(t, `program {
		int a;
		if (a == 1) { write(a); } else { write(0); }
	}`)
	require.Equal(t, []string{
		"Program", "Declarations", "Decl(a)", "Operators",
		"Var(a)", "Const(1)", "Bin(==)", "If",
		"Var(a)", "Write",
		"Else",
		"Const(0)", "Write",
		"EndIf",
	}, events)
}

func TestParseWhile(t *testing.T) {
	events := parseAll(t, `program {
		int a;
		while (a < 10) { a = a + 1; }
	}`)
	require.Equal(t, []string{
		"Program", "Declarations", "Decl(a)", "Operators",
		"While",
		"Var(a)", "Const(10)", "Bin(<)",
		"WhileBody",
		"Var(a)", "Var(a)", "Const(1)", "Bin(+)", "Bin(=)", "ExprStmt",
		"EndWhile",
	}, events)
}

func TestParseDoWhile(t *testing.T) {
	events := parseAll(t, `program {
		int a;
		do { a = a + 1; } while (a < 10);
	}`)
	require.Equal(t, []string{
		"Program", "Declarations", "Decl(a)", "Operators",
		"DoWhile",
		"Var(a)", "Var(a)", "Const(1)", "Bin(+)", "Bin(=)", "ExprStmt",
		"Var(a)", "Const(10)", "Bin(<)",
		"EndDoWhile",
	}, events)
}

func TestParseBreakContinue(t *testing.T) {
	events := parseAll(t, `program {
		while (true) {
			break;
			continue;
		}
	}`)
	require.Equal(t, []string{
		"Program", "Operators",
		"While",
		"Const(true)",
		"WhileBody",
		"Break",
		"Continue",
		"EndWhile",
	}, events)
}

func TestParseReadWrite(t *testing.T) {
	events := parseAll(t, `program {
		int a;
		read(a);
		write(a, a + 1);
	}`)
	require.Equal(t, []string{
		"Program", "Declarations", "Decl(a)", "Operators",
		"Read(a)",
		"Var(a)", "Write",
		"Var(a)", "Const(1)", "Bin(+)", "Write",
	}, events)
}

func TestParseSyntaxErrors(t *testing.T) {
	cases := []string{
		`program { int a b; }`,
		`program { 1 + ; }`,
		`program { if (true) write(1) }`,
		`program { while true) {} }`,
	}
	for _, src := range cases {
		v := &recordingVisitor{}
		err := parser.Parse("test.tvm", strings.NewReader(src), v)
		require.Error(t, err)
		var synErr *parser.SyntaxError
		require.ErrorAs(t, err, &synErr)
	}
}

func TestParseTrailingGarbageRejected(t *testing.T) {
	err := parser.Parse("test.tvm", strings.NewReader(`program {} program {}`), &recordingVisitor{})
	require.Error(t, err)
}

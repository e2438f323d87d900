package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyedUmais05/Java-code-smell-detector/pkg/parser"
)

func newUnit(t *testing.T, src string) *Unit {
	t.Helper()
	p := parser.New()
	defer p.Close()

	result, err := p.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	u := NewUnit(result)
	t.Cleanup(u.Close)
	return u
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\n", []string{"a", ""}},
		{"a\r\nb", []string{"a", "b"}},
		{"a\rb\r", []string{"a", "b"}},
		{"\n", []string{""}},
		{"a\n\r\nb", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitLines(tt.in), "%q", tt.in)
	}
}

func TestUnit_ClassAndMethodViews(t *testing.T) {
	src := `package demo;

public class Account {
    private int balance, limit;
    private final java.util.List<String> owners;

    public Account(int start) { balance = start; }

    @Override
    public synchronized void deposit(int amount, String... notes) throws IllegalStateException {
        // add it
        balance += amount;
        if (amount > limit) {
            audit(amount);
        }
    }

    private void audit(int amount) {}

    abstract static class Nested {
        abstract int size();
    }
}
`
	u := newUnit(t, src)

	require.Len(t, u.Classes(), 2)
	account := u.Classes()[0]
	assert.Equal(t, "Account", account.Name)
	assert.Equal(t, 3, account.Line)
	require.Len(t, account.Fields, 2)
	assert.Equal(t, []string{"balance", "limit"}, account.Fields[0].Names)
	assert.True(t, account.Fields[0].Primitive)
	assert.Equal(t, "java.util.List", account.Fields[1].TypeName)
	assert.False(t, account.Fields[1].Primitive)
	assert.Equal(t, []string{"balance", "limit", "owners"}, account.FieldNames())

	require.Len(t, account.Methods, 2, "constructors are not methods")
	deposit := account.Methods[0]
	assert.Equal(t, "deposit", deposit.Name)
	assert.Equal(t, "Account", deposit.Owner)
	assert.Equal(t, 9, deposit.Line, "a method starts at its first annotation")
	assert.Equal(t, []string{"public", "synchronized"}, deposit.Modifiers)
	assert.Equal(t, []string{"IllegalStateException"}, deposit.Throws)
	require.Len(t, deposit.Params, 2)
	assert.Equal(t, Param{Name: "amount", TypeName: "int"}, deposit.Params[0])
	assert.Equal(t, Param{Name: "notes", TypeName: "String", Variadic: true}, deposit.Params[1])
	require.Len(t, deposit.Body, 2, "comments are not statements")
	assert.Equal(t, StmtExpression, deposit.Body[0].Kind)
	assert.Equal(t, StmtIf, deposit.Body[1].Kind)
	assert.Equal(t, 13, deposit.Body[1].Line)
	assert.True(t, deposit.References("balance"))
	assert.True(t, deposit.References("limit"))
	assert.False(t, deposit.References("audit"), "a called name is not a value reference")

	audit := account.Methods[1]
	assert.True(t, audit.IsPrivate())
	assert.True(t, audit.HasBody)

	nested := u.Classes()[1]
	assert.Equal(t, "Nested", nested.Name)
	require.Len(t, nested.Methods, 1)
	assert.False(t, nested.Methods[0].HasBody)
	assert.Equal(t, "Nested", nested.Methods[0].Owner)

	require.Len(t, u.Methods(), 3)
	assert.Same(t, deposit, u.Methods()[0], "class and file views share method values")
}

func TestUnit_SwitchesAndInvocations(t *testing.T) {
	src := `class Router {
    String route(int code) {
        switch (code) {
            case 1:
            case 2:
                return "low";
            case 3:
                return "mid";
            default:
                return "high";
        }
    }

    int arrow(int d) {
        return switch (d) {
            case 1, 7 -> 0;
            case 2 -> 1;
            default -> 2;
        };
    }

    void use() {
        route(1);
        java.util.function.IntUnaryOperator f = this::arrow;
        Runnable r = new Runnable() {
            public void run() { helper(); }
        };
    }
}
`
	u := newUnit(t, src)

	require.Len(t, u.Switches(), 2)
	assert.Equal(t, Switch{Line: 3, Cases: 3}, u.Switches()[0])
	assert.Equal(t, 15, u.Switches()[1].Line)
	assert.Equal(t, 3, u.Switches()[1].Cases)

	var names []string
	for _, inv := range u.Invocations() {
		names = append(names, inv.Name)
	}
	assert.Equal(t, []string{"route", "arrow", "helper"}, names)

	var run *Method
	for _, m := range u.Methods() {
		if m.Name == "run" {
			run = m
		}
	}
	require.NotNil(t, run)
	assert.Equal(t, "", run.Owner, "anonymous class bodies have no owner")
}

func TestUnit_Lines(t *testing.T) {
	u := newUnit(t, "class A {\r\n  int x;\r\n}\r\n")
	assert.Len(t, u.Lines(), 3)
	assert.Equal(t, "  int x;", u.Line(2))
	assert.Equal(t, "", u.Line(0))
	assert.Equal(t, "", u.Line(4))
}

func TestUnit_ParameterTypeNames(t *testing.T) {
	u := newUnit(t, "class A { void m(final java.util.Map<String, Integer>[] a, int[] b) {} }")
	require.Len(t, u.Methods(), 1)
	params := u.Methods()[0].Params
	require.Len(t, params, 2)
	assert.Equal(t, "java.util.Map", params[0].TypeName)
	assert.Equal(t, "int", params[1].TypeName)
}

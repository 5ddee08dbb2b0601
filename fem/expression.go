// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/io"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expression implements fe.Value and fe.Evaluator for coordinate expressions
// such as "293 + 10*x[0]" or "sin(pi*x[1])*t"
type Expression struct {
	Codes   []string      // source code of each component
	Degree  int           // degree for interpolation
	progs   []*vm.Program // compiled programs
	scratch exprEnv       // environment used when evaluating
}

// exprEnv is the environment of expressions
type exprEnv struct {
	X  []float64 `expr:"x"`
	T  float64   `expr:"t"`
	Pi float64   `expr:"pi"`
	E  float64   `expr:"DOLFIN_EPS"`
}

// functions available in expressions
var exprFuncs = []expr.Option{
	expr.Function("sin", func(p ...interface{}) (interface{}, error) { return math.Sin(p[0].(float64)), nil }, math.Sin),
	expr.Function("cos", func(p ...interface{}) (interface{}, error) { return math.Cos(p[0].(float64)), nil }, math.Cos),
	expr.Function("tan", func(p ...interface{}) (interface{}, error) { return math.Tan(p[0].(float64)), nil }, math.Tan),
	expr.Function("exp", func(p ...interface{}) (interface{}, error) { return math.Exp(p[0].(float64)), nil }, math.Exp),
	expr.Function("log", func(p ...interface{}) (interface{}, error) { return math.Log(p[0].(float64)), nil }, math.Log),
	expr.Function("sqrt", func(p ...interface{}) (interface{}, error) { return math.Sqrt(p[0].(float64)), nil }, math.Sqrt),
	expr.Function("pow", func(p ...interface{}) (interface{}, error) { return math.Pow(p[0].(float64), p[1].(float64)), nil }, math.Pow),
	expr.Function("fabs", func(p ...interface{}) (interface{}, error) { return math.Abs(p[0].(float64)), nil }, math.Abs),
}

// NewExpression compiles one program per component
func NewExpression(codes []string, degree int) (o *Expression, err error) {
	o = &Expression{Codes: codes, Degree: degree}
	opts := append([]expr.Option{expr.Env(exprEnv{}), expr.AsFloat64()}, exprFuncs...)
	for i, code := range codes {
		src := strings.TrimSpace(code)
		if src == "" {
			return nil, cfgErr("expression component %d is empty", i)
		}
		prog, e := expr.Compile(src, opts...)
		if e != nil {
			return nil, cfgErr("cannot compile expression %q:\n%v", code, e)
		}
		o.progs = append(o.progs, prog)
	}
	return
}

// Rank returns 0 for scalar expressions and 1 for vector expressions
func (o *Expression) Rank() int {
	if len(o.Codes) == 1 {
		return 0
	}
	return 1
}

// Ncomp returns the number of components
func (o *Expression) Ncomp() int { return len(o.Codes) }

// Eval evaluates all components at x and t
func (o *Expression) Eval(res []float64, t float64, x []float64) (err error) {
	o.scratch = exprEnv{X: x, T: t, Pi: math.Pi, E: 3e-16}
	for i, prog := range o.progs {
		out, e := expr.Run(prog, o.scratch)
		if e != nil {
			return cfgErr("cannot evaluate expression %q at x=%v: %v", o.Codes[i], x, e)
		}
		res[i] = out.(float64)
	}
	return
}

// String returns the source code
func (o *Expression) String() string {
	if len(o.Codes) == 1 {
		return io.Sf("Expression(%q)", o.Codes[0])
	}
	return io.Sf("Expression(%q)", o.Codes)
}

// Package calc evaluates arithmetic expressions written in prefix (Polish)
// notation, such as "* 10 + 1.23 4.56".
package calc

import (
	"fmt"
	"strings"

	"github.com/ChiliNoodles/Deci"
	"github.com/pkg/errors"
)

// Calculator evaluates expressions. The zero value divides with
// [deci.Deci.Quo].
type Calculator struct {
	// Scale, when non-nil, makes "/" round every quotient to this many
	// digits after the decimal point.
	Scale *int
	Mode  deci.RoundingMode
}

// Evaluate parses and evaluates input.
// Supported operators are "+", "-", "*", "/" and "^", the last one taking an
// integer exponent.
func (c Calculator) Evaluate(input string) (deci.Deci, error) {
	tokens, err := parseTokens(input)
	if err != nil {
		return deci.Deci{}, errors.Wrap(err, "parsing tokens")
	}
	stack, err := c.processTokens(tokens)
	if err != nil {
		return deci.Deci{}, errors.Wrap(err, "processing tokens")
	}
	if len(stack) != 1 {
		return deci.Deci{}, errors.Errorf("post-processed stack contains %v, expected exactly one item", stack)
	}
	return stack[0], nil
}

func parseTokens(input string) ([]string, error) {
	tokens := strings.Fields(input)
	if len(tokens) == 0 {
		return nil, errors.New("no tokens")
	}
	return tokens, nil
}

func (c Calculator) processTokens(tokens []string) ([]deci.Deci, error) {
	stack := make([]deci.Deci, 0, len(tokens))
	var err error
	for i := len(tokens) - 1; i >= 0; i-- {
		token := tokens[i]
		switch token {
		case "+", "-", "*", "/", "^":
			stack, err = c.processOperator(stack, token)
		default:
			stack, err = processOperand(stack, token)
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "processing token %q", token)
		}
	}
	return stack, nil
}

func (c Calculator) processOperator(stack []deci.Deci, token string) ([]deci.Deci, error) {
	if len(stack) < 2 {
		return nil, errors.New("not enough operands")
	}
	right := stack[len(stack)-2]
	left := stack[len(stack)-1]
	stack = stack[:len(stack)-2]
	var result deci.Deci
	var err error
	switch token {
	case "+":
		result = left.Add(right)
	case "-":
		result = left.Sub(right)
	case "*":
		result = left.Mul(right)
	case "/":
		if c.Scale != nil {
			result, err = left.QuoToScale(right, *c.Scale, c.Mode)
		} else {
			result, err = left.Quo(right)
		}
	case "^":
		result, err = power(left, right)
	}
	if err != nil {
		return nil, errors.WithMessage(err, fmt.Sprintf("evaluating \"%s %s %s\"", left, token, right))
	}
	return append(stack, result), nil
}

func power(base, exp deci.Deci) (deci.Deci, error) {
	n, ok := exp.Int64()
	if !ok || !exp.IsInt() || n > 1<<20 {
		return deci.Deci{}, errors.Wrapf(deci.ErrValidation, "exponent %v is not a small integer", exp)
	}
	return base.Pow(int(n))
}

func processOperand(stack []deci.Deci, token string) ([]deci.Deci, error) {
	d, err := deci.Parse(token)
	if err != nil {
		return nil, err
	}
	return append(stack, d), nil
}

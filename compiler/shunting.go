package compiler

import "strings"

// concatOp is the explicit concatenation operator. It never appears in user
// patterns; insertConcat() introduces it between adjacent juxtaposed terms.
const concatOp = '·'

func isOperand(c rune) bool {
	switch c {
	case '|', '*', '+', '?', '(', ')', concatOp, epsilon:
		return false
	}
	return true
}

func isRepeatOp(c rune) bool {
	return c == '*' || c == '+' || c == '?'
}

func needsConcat(cur, next rune) bool {
	switch {
	case isOperand(cur) && isOperand(next):
		return true
	case isOperand(cur) && next == '(':
		return true
	case cur == ')' && isOperand(next):
		return true
	case isRepeatOp(cur) && isOperand(next):
		return true
	case isRepeatOp(cur) && next == '(':
		return true
	case cur == ')' && next == '(':
		return true
	}
	return false
}

func insertConcat(pattern string) string {
	cs := []rune(pattern)
	var b strings.Builder
	for i, c := range cs {
		b.WriteRune(c)
		if i+1 < len(cs) && needsConcat(c, cs[i+1]) {
			b.WriteRune(concatOp)
		}
	}
	return b.String()
}

var opPrecedence = map[rune]int{
	'|':      1,
	concatOp: 2,
	'*':      3,
	'+':      3,
	'?':      3,
}

// toPostfix rewrites an infix pattern into postfix form using the shunting
// yard algorithm. The repeat operators are postfix-unary, but the ordinary
// precedence rule covers them because they bind tighter than any other
// operator.
func toPostfix(pattern string) (string, error) {
	var out []rune
	var stack []rune
	for _, c := range []rune(insertConcat(pattern)) {
		switch {
		case isOperand(c):
			out = append(out, c)
		case c == '(':
			stack = append(stack, c)
		case c == ')':
			for len(stack) > 0 && stack[len(stack)-1] != '(' {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return "", synErrGroupNoInitiator
			}
			stack = stack[:len(stack)-1]
		default:
			for len(stack) > 0 && stack[len(stack)-1] != '(' && opPrecedence[stack[len(stack)-1]] >= opPrecedence[c] {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, c)
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top == '(' {
			return "", synErrGroupUnclosed
		}
		out = append(out, top)
	}
	return string(out), nil
}

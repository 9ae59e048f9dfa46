package grammar

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The text format is one rule per left-hand side:
//
//	E  -> T Ep ;
//	Ep -> plus T Ep | ε ;
//	T  -> id ;
//
// The first rule's left-hand side is the start symbol. Every name that
// appears on a left-hand side is a non-terminal; every other name is a
// terminal. The spelling ε denotes the empty production.

var grammarLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Arrow", Pattern: `->`},
	{Name: "Pipe", Pattern: `\|`},
	{Name: "Semi", Pattern: `;`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_']*`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type alternativeNode struct {
	Symbols []string `parser:"@Ident+"`
}

type ruleNode struct {
	Left         string             `parser:"@Ident Arrow"`
	Alternatives []*alternativeNode `parser:"@@ ( Pipe @@ )* Semi"`
}

type grammarFile struct {
	Rules []*ruleNode `parser:"@@+"`
}

var grammarParser = participle.MustBuild[grammarFile](
	participle.Lexer(grammarLexer),
	participle.Elide("Whitespace"),
)

// Parse reads a grammar in the text format above.
func Parse(src string) (*Grammar, error) {
	file, err := grammarParser.ParseString("", src)
	if err != nil {
		return nil, err
	}

	nonTermNames := map[string]struct{}{}
	for _, r := range file.Rules {
		if r.Left == EpsilonName {
			return nil, fmt.Errorf("ε is reserved and cannot be a non-terminal")
		}
		if _, ok := nonTermNames[r.Left]; ok {
			return nil, fmt.Errorf("the rule for %v is defined twice; join its alternatives with |", r.Left)
		}
		nonTermNames[r.Left] = struct{}{}
	}

	g := &Grammar{}
	termSeen := map[string]struct{}{}
	for i, r := range file.Rules {
		left := Symbol{Name: r.Left, Type: SymbolTypeNonTerminal}
		if i == 0 {
			g.Start = left
		}
		g.NonTerminals = append(g.NonTerminals, left)
		for _, alt := range r.Alternatives {
			var right []Symbol
			for _, name := range alt.Symbols {
				if name == EpsilonName {
					if len(alt.Symbols) != 1 {
						return nil, fmt.Errorf("ε must be the sole symbol of an alternative in the rule for %v", r.Left)
					}
					right = append(right, Epsilon)
					if _, ok := termSeen[EpsilonName]; !ok {
						termSeen[EpsilonName] = struct{}{}
						g.Terminals = append(g.Terminals, Epsilon)
					}
					continue
				}
				if _, ok := nonTermNames[name]; ok {
					right = append(right, Symbol{Name: name, Type: SymbolTypeNonTerminal})
					continue
				}
				if _, ok := termSeen[name]; !ok {
					termSeen[name] = struct{}{}
					g.Terminals = append(g.Terminals, Symbol{Name: name, Type: SymbolTypeTerminal})
				}
				right = append(right, Symbol{Name: name, Type: SymbolTypeTerminal})
			}
			g.Productions = append(g.Productions, &Production{
				Left:  left,
				Right: right,
			})
		}
	}
	return g, nil
}

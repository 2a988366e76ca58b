// Package options parses and validates writer options given on the command
// line as "key=value;key2=value2".
package options

import (
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/JuniperGlossary/core/errors"
)

// Values holds parsed option values keyed by option name.
type Values map[string]string

// optionsGrammar is the participle grammar for option strings.
// Examples: "kindlegen_path=/usr/bin/kindlegen", `a=1; b="x;y"`, "".
//
//nolint:govet // participle grammar tags are not standard struct tags
type optionsGrammar struct {
	Pairs []*pairGrammar `@@? ( ";" @@? )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type pairGrammar struct {
	Key   string        `@Text "="`
	Value *valueGrammar `@@?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type valueGrammar struct {
	Quoted *string `  @String`
	Bare   *string `| @Text`
}

// optionsLexer splits option strings. Text never starts or ends with
// whitespace, so "a = b c" yields Text("a"), "=", Text("b c").
var optionsLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Punct", Pattern: `[;=]`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Text", Pattern: `[^;="\s](?:[^;="]*[^;="\s])?`},
})

var optionsParser = participle.MustBuild[optionsGrammar](
	participle.Lexer(optionsLexer),
	participle.Elide("Whitespace"),
)

// Parse parses an option string. Later keys override earlier ones.
func Parse(s string) (Values, error) {
	values := Values{}
	if strings.TrimSpace(s) == "" {
		return values, nil
	}

	parsed, err := optionsParser.ParseString("", s)
	if err != nil {
		return nil, &errors.ParseError{Format: "write options", Message: err.Error(), Err: err}
	}

	for _, p := range parsed.Pairs {
		if p == nil {
			continue
		}
		value := ""
		if p.Value != nil {
			switch {
			case p.Value.Quoted != nil:
				value, err = strconv.Unquote(*p.Value.Quoted)
				if err != nil {
					return nil, errors.NewParse("write options", "", "bad quoted value for "+p.Key)
				}
			case p.Value.Bare != nil:
				value = *p.Value.Bare
			}
		}
		values[p.Key] = value
	}
	return values, nil
}

// Encode renders values back into option syntax with sorted keys.
func (v Values) Encode() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		val := v[k]
		if strings.ContainsAny(val, `;="`) || strings.TrimSpace(val) != val {
			val = strconv.Quote(val)
		}
		parts = append(parts, k+"="+val)
	}
	return strings.Join(parts, ";")
}

package decoders

import (
	"fmt"
	"regexp"
	"strings"
)

// builtinPatterns are the named sub-patterns a grok template may reference.
// Word, digit and space classes are Unicode-aware; Go's \w, \d and \s only cover ASCII.
var builtinPatterns = map[string]string{
	"DJANGOTIMESTAMP": `\p{Nd}{4}-\p{Nd}{2}-\p{Nd}{2} \p{Nd}{2}:\p{Nd}{2}:\p{Nd}{2},\p{Nd}{3}`,
	"WORD":            `[\p{L}\p{N}_]+`,
	"LOGGERNAME":      `[\p{L}\p{N}_.]+`,
	"NOTSPACE":        `[^\s\p{Z}\x{1c}-\x{1f}\x{85}]+`,
	"DIGITS":          `\p{Nd}+`,
	"IPDIGITS":        `[\p{Nd}.]+`,
}

var grokTokenRe = regexp.MustCompile(`%\{(\w+)(?::(\w+))?\}`)

// grokPattern matches a whole line against a compiled grok template.
// Template format: %{PATTERN_NAME:field_name}; text outside tokens is raw regex.
type grokPattern struct {
	template   string
	regex      *regexp.Regexp
	fieldNames []string
}

func newGrokPattern(template string) (*grokPattern, error) {
	regexStr, fieldNames, err := compileGrokTemplate(template)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile("^" + regexStr + "$")
	if err != nil {
		return nil, fmt.Errorf("compiled grok regex invalid: %w (regex: %s)", err, regexStr)
	}

	return &grokPattern{
		template:   template,
		regex:      re,
		fieldNames: fieldNames,
	}, nil
}

func mustGrokPattern(template string) *grokPattern {
	p, err := newGrokPattern(template)
	if err != nil {
		panic(err)
	}
	return p
}

// Match returns the named captures of line, or false when line does not match.
func (g *grokPattern) Match(line string) (map[string]string, bool) {
	matches := g.regex.FindStringSubmatch(line)
	if matches == nil {
		return nil, false
	}

	fields := make(map[string]string, len(g.fieldNames))
	for i, name := range g.fieldNames {
		if name != "" && i+1 < len(matches) {
			fields[name] = matches[i+1]
		}
	}
	return fields, true
}

// compileGrokTemplate converts a grok template to a Go regex.
// %{PATTERN_NAME:field_name} -> (regex_for_PATTERN_NAME), captured as field_name
// %{PATTERN_NAME} -> (?:regex_for_PATTERN_NAME)
func compileGrokTemplate(template string) (string, []string, error) {
	var fieldNames []string
	var unknown []string

	result := grokTokenRe.ReplaceAllStringFunc(template, func(token string) string {
		m := grokTokenRe.FindStringSubmatch(token)
		patternName, fieldName := m[1], m[2]

		builtinRegex, ok := builtinPatterns[patternName]
		if !ok {
			unknown = append(unknown, patternName)
			return token
		}

		if fieldName == "" {
			return "(?:" + builtinRegex + ")"
		}
		fieldNames = append(fieldNames, fieldName)
		return "(" + builtinRegex + ")"
	})

	if len(unknown) > 0 {
		return "", nil, fmt.Errorf("unknown grok pattern: %s", strings.Join(unknown, ", "))
	}
	return result, fieldNames, nil
}

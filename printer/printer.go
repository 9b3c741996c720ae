// Package printer renders colorized source-snippet windows around a
// token, used by package errors to show where a decode failure occurred.
// Grounded on the teacher's printer.Printer (fatih/color + token
// position/Prev/Next linking).
package printer

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/vadelabs/toon-sub000/token"
)

// Property is a prefix/suffix pair applied around a token's rendered text.
type Property struct {
	Prefix string
	Suffix string
}

// PropertyFunc returns a Property, deferred so color codes are only
// computed when actually used.
type PropertyFunc func() *Property

// Printer renders a token.Tokens window as text, optionally with line
// numbers and per-token-class coloring.
type Printer struct {
	LineNumber       bool
	LineNumberFormat func(num int) string
	Key              PropertyFunc
	Bool             PropertyFunc
	String           PropertyFunc
	Number           PropertyFunc
}

func defaultLineNumberFormat(num int) string {
	return fmt.Sprintf("%2d | ", num)
}

func (p *Printer) property(tk *token.Token) *Property {
	prop := &Property{}
	if tk.NextType() == token.ColonType {
		if p.Key != nil {
			return p.Key()
		}
		return prop
	}
	switch tk.Type {
	case token.BoolType:
		if p.Bool != nil {
			return p.Bool()
		}
	case token.StringType, token.QuotedStringType:
		if p.String != nil {
			return p.String()
		}
	case token.NumberType:
		if p.Number != nil {
			return p.Number()
		}
	}
	return prop
}

// PrintTokens renders a linked token window as text, one rendered line
// per distinct source line.
func (p *Printer) PrintTokens(tokens token.Tokens) string {
	if len(tokens) == 0 {
		return ""
	}
	if p.LineNumber && p.LineNumberFormat == nil {
		p.LineNumberFormat = defaultLineNumberFormat
	}
	var texts []string
	lineNumber := tokens[0].Position.Line
	for _, tk := range tokens {
		lines := strings.Split(tk.Origin, "\n")
		prop := p.property(tk)
		for idx, src := range lines {
			header := ""
			if p.LineNumber {
				header = p.LineNumberFormat(lineNumber)
			}
			line := prop.Prefix + src + prop.Suffix
			if idx == 0 {
				if len(texts) == 0 {
					texts = append(texts, header+line)
					lineNumber++
				} else {
					texts[len(texts)-1] = texts[len(texts)-1] + line
				}
			} else {
				texts = append(texts, header+line)
				lineNumber++
			}
		}
	}
	return strings.Join(texts, "\n")
}

const escape = "\x1b"

func format(attr color.Attribute) string {
	return fmt.Sprintf("%s[%dm", escape, attr)
}

func (p *Printer) setDefaultColorSet() {
	p.Bool = func() *Property {
		return &Property{Prefix: format(color.FgHiMagenta), Suffix: format(color.Reset)}
	}
	p.Number = func() *Property {
		return &Property{Prefix: format(color.FgHiMagenta), Suffix: format(color.Reset)}
	}
	p.Key = func() *Property {
		return &Property{Prefix: format(color.FgHiCyan), Suffix: format(color.Reset)}
	}
	p.String = func() *Property {
		return &Property{Prefix: format(color.FgHiGreen), Suffix: format(color.Reset)}
	}
}

// PrintErrorMessage colorizes msg in bright red when isColored is set.
func (p *Printer) PrintErrorMessage(msg string, isColored bool) string {
	if isColored {
		return fmt.Sprintf("%s%s%s", format(color.FgHiRed), msg, format(color.Reset))
	}
	return msg
}

// PrintErrorToken renders a window of source around tk (3 lines of
// context on each side), with the offending line marked '>' and its
// column annotated with a caret.
func (p *Printer) PrintErrorToken(tk *token.Token, isColored bool) string {
	errToken := tk
	pos := tk.Position
	curLine := pos.Line
	curExtLine := curLine + len(strings.Split(strings.TrimLeft(tk.Origin, "\n"), "\n")) - 1
	if len(tk.Origin) > 0 && tk.Origin[len(tk.Origin)-1] == '\n' {
		curExtLine--
	}
	minLine := int(math.Max(float64(curLine-3), 1))
	maxLine := curExtLine + 3
	for {
		if tk.Position.Line < minLine || tk.Prev == nil {
			break
		}
		tk = tk.Prev
	}
	var tokens token.Tokens
	lastTk := tk
	for tk != nil && tk.Position.Line <= curExtLine {
		tokens.Add(tk)
		lastTk = tk
		tk = tk.Next
	}

	p.LineNumber = true
	p.LineNumberFormat = func(num int) string {
		marker := "  "
		if curLine == num {
			marker = "> "
		}
		text := fmt.Sprintf("%s%2d | ", marker, num)
		if isColored {
			return color.New(color.Bold, color.FgHiWhite).Sprint(text)
		}
		return text
	}
	if isColored {
		p.setDefaultColorSet()
	}
	beforeSource := p.PrintTokens(tokens)
	prefixSpaceNum := len(fmt.Sprintf("  %2d | ", 1))
	col := errToken.Position.Column - 1
	if col < 0 {
		col = 0
	}
	annotateLine := strings.Repeat(" ", prefixSpaceNum+col) + "^"

	_ = lastTk
	var afterTokens token.Tokens
	for tk != nil && tk.Position.Line <= maxLine {
		afterTokens.Add(tk)
		tk = tk.Next
	}
	afterSource := p.PrintTokens(afterTokens)
	if afterSource == "" {
		return fmt.Sprintf("%s\n%s", beforeSource, annotateLine)
	}
	return fmt.Sprintf("%s\n%s\n%s", beforeSource, annotateLine, afterSource)
}

package gdbmi

import (
	"fmt"
	"strings"
)

// prompt is the block terminator gdb prints when it is ready for the
// next command.
const prompt = "(gdb)"

// ParseLine parses one line of gdb output, given without its trailing
// newline.
func ParseLine(line string) (Record, error) {
	line = strings.TrimSuffix(line, "\r")
	if strings.TrimSpace(line) == prompt {
		return &PromptRecord{}, nil
	}

	p := &parser{line: line}
	token := p.takeToken()

	switch {
	case p.take('~'):
		return p.streamRecord(StreamConsole, token)
	case p.take('@'):
		return p.streamRecord(StreamTarget, token)
	case p.take('&'):
		return p.streamRecord(StreamLog, token)
	case p.take('*'):
		return p.asyncRecord(AsyncExec, token)
	case p.take('+'):
		return p.asyncRecord(AsyncStatus, token)
	case p.take('='):
		return p.asyncRecord(AsyncNotify, token)
	case p.take('^'):
		return p.resultRecord(token)
	}
	return nil, p.errf("unrecognized record")
}

type parser struct {
	line string
	pos  int
}

func (p *parser) errf(format string, args ...any) *ParseError {
	return &ParseError{Line: p.line, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.line)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.line[p.pos]
}

func (p *parser) take(c byte) bool {
	if p.peek() != c {
		return false
	}
	p.pos++
	return true
}

func (p *parser) takeToken() string {
	start := p.pos
	for !p.eof() && p.line[p.pos] >= '0' && p.line[p.pos] <= '9' {
		p.pos++
	}
	return p.line[start:p.pos]
}

func (p *parser) streamRecord(kind StreamKind, token string) (Record, error) {
	if token != "" {
		return nil, p.errf("stream record with token")
	}
	text, err := p.parseCString()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errf("trailing data after stream record")
	}
	return &StreamRecord{Kind: kind, Text: text}, nil
}

func (p *parser) asyncRecord(kind AsyncKind, token string) (Record, error) {
	class, err := p.parseClass()
	if err != nil {
		return nil, err
	}
	results, err := p.parseResults()
	if err != nil {
		return nil, err
	}
	return &AsyncRecord{Token: token, Kind: kind, Class: AsyncClass(class), Results: results}, nil
}

func (p *parser) resultRecord(token string) (Record, error) {
	class, err := p.parseClass()
	if err != nil {
		return nil, err
	}
	switch ResultClass(class) {
	case ResultDone, ResultRunning, ResultConnected, ResultError, ResultExit:
	default:
		return nil, p.errf("unknown result class %q", class)
	}
	results, err := p.parseResults()
	if err != nil {
		return nil, err
	}
	return &ResultRecord{Token: token, Class: ResultClass(class), Results: results}, nil
}

func (p *parser) parseClass() (string, error) {
	start := p.pos
	for !p.eof() && p.peek() != ',' {
		p.pos++
	}
	if p.pos == start {
		return "", p.errf("missing class")
	}
	return p.line[start:p.pos], nil
}

func (p *parser) parseResults() (NamedValues, error) {
	var results NamedValues
	for p.take(',') {
		pair, err := p.parseResult()
		if err != nil {
			return nil, err
		}
		results = append(results, pair)
	}
	if !p.eof() {
		return nil, p.errf("trailing data after results")
	}
	return results, nil
}

func (p *parser) parseResult() (NamedValue, error) {
	name := p.parseName()
	if name == "" {
		return NamedValue{}, p.errf("missing result name")
	}
	if !p.take('=') {
		return NamedValue{}, p.errf("expected '=' after %q", name)
	}
	value, err := p.parseValue()
	if err != nil {
		return NamedValue{}, err
	}
	return NamedValue{Name: name, Value: value}, nil
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '-' || c == '_' || c == '.'
}

func (p *parser) parseName() string {
	start := p.pos
	for !p.eof() && isNameByte(p.peek()) {
		p.pos++
	}
	return p.line[start:p.pos]
}

func (p *parser) parseValue() (Value, error) {
	switch p.peek() {
	case '"':
		s, err := p.parseCString()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: ValueConst, Const: s}, nil
	case '{':
		return p.parseTuple()
	case '[':
		return p.parseList()
	}
	return Value{}, p.errf("expected value")
}

func (p *parser) parseTuple() (Value, error) {
	p.pos++ // '{'
	v := Value{Kind: ValueTuple}
	if p.take('}') {
		return v, nil
	}
	for {
		pair, err := p.parseResult()
		if err != nil {
			return Value{}, err
		}
		v.Tuple = append(v.Tuple, pair)
		if p.take(',') {
			continue
		}
		if p.take('}') {
			return v, nil
		}
		return Value{}, p.errf("expected ',' or '}' in tuple")
	}
}

func (p *parser) parseList() (Value, error) {
	p.pos++ // '['
	v := Value{Kind: ValueList}
	if p.take(']') {
		return v, nil
	}
	for {
		item, err := p.parseListItem()
		if err != nil {
			return Value{}, err
		}
		v.List = append(v.List, item)
		if p.take(',') {
			continue
		}
		if p.take(']') {
			return v, nil
		}
		return Value{}, p.errf("expected ',' or ']' in list")
	}
}

// parseListItem accepts both list forms of the grammar: plain values
// and name=value pairs. Pairs become single-entry tuples.
func (p *parser) parseListItem() (Value, error) {
	switch p.peek() {
	case '"', '{', '[':
		return p.parseValue()
	}
	pair, err := p.parseResult()
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: ValueTuple, Tuple: NamedValues{pair}}, nil
}

// parseCString unescapes a double-quoted string using C conventions.
// Octal escapes carry the raw bytes of non-ASCII output.
func (p *parser) parseCString() (string, error) {
	if !p.take('"') {
		return "", p.errf("expected string")
	}
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errf("unterminated string")
		}
		c := p.line[p.pos]
		p.pos++
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if p.eof() {
				return "", p.errf("unterminated escape")
			}
			e := p.line[p.pos]
			p.pos++
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'f':
				b.WriteByte('\f')
			case 'v':
				b.WriteByte('\v')
			case 'a':
				b.WriteByte(7)
			case 'b':
				b.WriteByte('\b')
			case '0', '1', '2', '3', '4', '5', '6', '7':
				n := int(e - '0')
				for i := 0; i < 2 && !p.eof(); i++ {
					d := p.line[p.pos]
					if d < '0' || d > '7' {
						break
					}
					n = n*8 + int(d-'0')
					p.pos++
				}
				b.WriteByte(byte(n))
			default:
				b.WriteByte(e)
			}
		default:
			b.WriteByte(c)
		}
	}
}

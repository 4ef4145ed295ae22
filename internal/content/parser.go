package content

import (
	"bytes"

	"github.com/coregx/pdfgraph/internal/raw"
	"github.com/pkg/errors"
)

// Parse tokenizes a page's decoded content-stream bytes into a typed
// Operator sequence.
//
// Grounded in the earlier reader's internal/extractor tokenizer (removed),
// restated over internal/raw's Cursor/ExtractObject instead of a
// separate lexer: an operand is anything ExtractObject recognizes
// (number, name, string, array, dictionary); anything else is scanned
// as a bare operator word and dispatched against the operands buffered
// so far.
func Parse(buf []byte) ([]Operator, error) {
	c := raw.NewCursor(buf)
	var ops []Operator
	var operands []raw.Object

	for {
		c.SkipWhitespace()
		if c.Len() == 0 {
			break
		}

		if ok, consumed := tryOperand(c); ok {
			operands = append(operands, consumed)
			continue
		}

		word := c.TakeWhile(isOperatorByte)
		if len(word) == 0 {
			// A delimiter byte ExtractObject didn't recognize (e.g. a
			// stray ')' or '>') — skip it rather than looping forever.
			c.Advance(1)
			continue
		}

		tag := string(word)
		if tag == "BI" {
			op, err := parseInlineImage(c)
			if err != nil {
				return nil, errors.Wrap(err, "content: inline image")
			}
			ops = append(ops, op)
			operands = nil
			continue
		}

		ops = append(ops, dispatch(tag, operands))
		operands = nil
	}

	return ops, nil
}

// tryOperand attempts to recognize one PDF object at the cursor without
// committing to it on failure, since an operator word like "Td" and an
// operand like a number both can start the next token.
func tryOperand(c *raw.Cursor) (bool, raw.Object) {
	trial := c.Clone()
	obj, err := raw.ExtractObject(trial)
	if err != nil {
		return false, nil
	}
	c.Seek(trial.Pos())
	return true, obj
}

func isOperatorByte(b byte) bool {
	switch b {
	case 0x00, 0x09, 0x0A, 0x0C, 0x0D, 0x20,
		'(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return false
	default:
		return true
	}
}

func isWhitespaceByte(b byte) bool {
	switch b {
	case 0x00, 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	default:
		return false
	}
}

// parseInlineImage consumes a BI…ID…EI run. The BI…ID portion is a
// dictionary written as bare key/value operand pairs (not a `<<...>>`
// literal); the ID…EI portion is raw, possibly binary image data that
// must never be tokenized as PDF objects — doing so could misread binary
// bytes that happen to collide with delimiter characters.
func parseInlineImage(c *raw.Cursor) (Operator, error) {
	var dictOperands []raw.Object
	for {
		c.SkipWhitespace()
		if c.Len() == 0 {
			return nil, errors.New("unterminated inline image: missing ID")
		}
		if ok, obj := tryOperand(c); ok {
			dictOperands = append(dictOperands, obj)
			continue
		}
		word := c.TakeWhile(isOperatorByte)
		if len(word) == 0 {
			c.Advance(1)
			continue
		}
		if string(word) == "ID" {
			break
		}
	}

	if b, ok := c.Peek(); ok && isWhitespaceByte(b) {
		c.Advance(1)
	}

	buf := c.Bytes()
	pos := c.Pos()
	for {
		rel := bytes.Index(buf[pos:], []byte("EI"))
		if rel < 0 {
			c.Seek(len(buf))
			return NotImplemented{Tag: "BI", Operands: dictOperands}, nil
		}
		at := pos + rel
		before := at == 0 || isWhitespaceByte(buf[at-1])
		after := at+2 >= len(buf) || isWhitespaceByte(buf[at+2]) || !isOperatorByte(buf[at+2])
		if before && after {
			c.Seek(at + 2)
			return NotImplemented{Tag: "BI", Operands: dictOperands}, nil
		}
		pos = at + 2
	}
}

func numAt(ops []raw.Object, i int) float64 {
	if i < 0 || i >= len(ops) {
		return 0
	}
	f, _ := raw.AsFloat(ops[i])
	return f
}

func intAt(ops []raw.Object, i int) int {
	if i < 0 || i >= len(ops) {
		return 0
	}
	if n, ok := ops[i].(raw.Integer); ok {
		return int(n)
	}
	f, _ := raw.AsFloat(ops[i])
	return int(f)
}

func nameAt(ops []raw.Object, i int) raw.Name {
	if i < 0 || i >= len(ops) {
		return ""
	}
	n, _ := ops[i].(raw.Name)
	return n
}

func strAt(ops []raw.Object, i int) []byte {
	if i < 0 || i >= len(ops) {
		return nil
	}
	s, ok := ops[i].(raw.PdfString)
	if !ok {
		return nil
	}
	return []byte(s)
}

// dispatch maps an operator tag plus its buffered operands to a typed
// Operator, per the table. Any tag not in that table (path
// construction, painting, clipping, color, graphics-state, XObject,
// marked-content operators) becomes NotImplemented.
func dispatch(tag string, operands []raw.Object) Operator {
	switch tag {
	case "BT":
		return BeginText{}
	case "ET":
		return EndText{}
	case "Tc":
		return SetCharSpacing{Value: numAt(operands, 0)}
	case "Tw":
		return SetWordSpacing{Value: numAt(operands, 0)}
	case "Tz":
		return SetHScaling{Value: numAt(operands, 0)}
	case "TL":
		return SetLeading{Value: numAt(operands, 0)}
	case "Tf":
		return SetFont{Name: nameAt(operands, 0), Size: numAt(operands, 1)}
	case "Tr":
		return SetRenderMode{Mode: intAt(operands, 0)}
	case "Ts":
		return SetRise{Value: numAt(operands, 0)}
	case "Td":
		return MoveBy{Tx: numAt(operands, 0), Ty: numAt(operands, 1)}
	case "TD":
		return MoveByAndSetLeading{Tx: numAt(operands, 0), Ty: numAt(operands, 1)}
	case "Tm":
		return SetMatrix{
			A: numAt(operands, 0), B: numAt(operands, 1),
			C: numAt(operands, 2), D: numAt(operands, 3),
			E: numAt(operands, 4), F: numAt(operands, 5),
		}
	case "T*":
		return NextLine{}
	case "Tj":
		return ShowText{Text: strAt(operands, 0)}
	case "'":
		return NextLineShow{Text: strAt(operands, 0)}
	case "\"":
		return SpaceAndShow{AW: numAt(operands, 0), AC: numAt(operands, 1), Text: strAt(operands, 2)}
	case "TJ":
		return dispatchShowArray(operands)
	default:
		return NotImplemented{Tag: tag, Operands: operands}
	}
}

func dispatchShowArray(operands []raw.Object) Operator {
	if len(operands) == 0 {
		return ShowArray{}
	}
	arr, ok := operands[len(operands)-1].(*raw.Array)
	if !ok {
		return ShowArray{}
	}
	elems := make([]ShowArrayElem, 0, len(*arr))
	for _, o := range *arr {
		if s, ok := o.(raw.PdfString); ok {
			elems = append(elems, ShowArrayElem{Text: []byte(s)})
			continue
		}
		if f, ok := raw.AsFloat(o); ok {
			elems = append(elems, ShowArrayElem{Amount: f})
		}
	}
	return ShowArray{Elements: elems}
}

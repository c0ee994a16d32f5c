package js_ast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jsgen/jsgen/internal/logger"
)

// This is the interchange format used by the command-line tool. Each node is
// an object with a "kind" and optional payloads:
//
//	kind, op, postfix, str, num, flags, access, children, type, generics,
//	implements, originalName, doc, loc
//
// Numbers that JSON can't represent ("NaN", "Infinity", "-Infinity", "-0")
// are accepted as strings. Nodes are read token by token with an explicit
// stack, so nesting depth is only limited by memory.

var flagNames = map[string]Flags{
	"static":        FlagStatic,
	"generator":     FlagGenerator,
	"async":         FlagAsync,
	"arrow":         FlagArrow,
	"quoted":        FlagQuoted,
	"shorthand":     FlagShorthand,
	"optional":      FlagOptional,
	"optionalChain": FlagOptionalChain,
	"freeCall":      FlagFreeCall,
	"directEval":    FlagDirectEval,
	"getter":        FlagGetter,
	"setter":        FlagSetter,
	"method":        FlagMethod,
	"exportDefault": FlagExportDefault,
	"exportAll":     FlagExportAll,
	"construct":     FlagConstruct,
	"await":         FlagAwait,
	"synthetic":     FlagSynthetic,
}

func (a *Access) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*a = AccessNone
	case "public":
		*a = AccessPublic
	case "protected":
		*a = AccessProtected
	case "private":
		*a = AccessPrivate
	default:
		return fmt.Errorf("invalid access modifier %q", text)
	}
	return nil
}

func (a Access) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// A node whose closing brace hasn't been read yet
type jsonFrame struct {
	node     Node
	kindName string
	hasKind  bool
	op       string
	postfix  bool
	num      json.RawMessage
	flags    []string

	// Where the finished node goes in its parent, and its position there
	field    string
	position int

	// Set while reading the elements of "children" or "implements"
	array string
}

type jsonDecoder struct {
	decoder *json.Decoder
	tree    *Tree
	stack   []*jsonFrame
}

// DecodeJSON decodes a tree from its JSON form and returns the tree along with
// the index of its root. Parent links are filled in while decoding.
func DecodeJSON(data []byte) (*Tree, Index, error) {
	d := jsonDecoder{decoder: json.NewDecoder(bytes.NewReader(data)), tree: &Tree{}}
	d.decoder.DisallowUnknownFields()

	tok, err := d.token()
	if err != nil {
		return nil, NoIndex, err
	}
	if tok == nil {
		return nil, NoIndex, errors.New("$: missing node")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, NoIndex, errors.New("$: expected an object")
	}
	d.stack = append(d.stack, &jsonFrame{})

	index, err := d.run()
	if err != nil {
		return nil, NoIndex, err
	}
	return d.tree, index, nil
}

// A document that ends early is always missing something
func (d *jsonDecoder) token() (json.Token, error) {
	tok, err := d.decoder.Token()
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return tok, err
}

// The path is only built when it's needed for an error message
func (d *jsonDecoder) path() string {
	var sb strings.Builder
	sb.WriteByte('$')
	for _, f := range d.stack[1:] {
		sb.WriteByte('.')
		sb.WriteString(f.field)
		if f.field == "children" || f.field == "implements" {
			fmt.Fprintf(&sb, "[%d]", f.position)
		}
	}
	return sb.String()
}

func (d *jsonDecoder) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s", d.path(), fmt.Sprintf(format, args...))
}

func (d *jsonDecoder) run() (Index, error) {
	for {
		top := d.stack[len(d.stack)-1]

		if top.array != "" {
			tok, err := d.token()
			if err != nil {
				return NoIndex, err
			}
			position := len(top.node.Children)
			if top.array == "implements" {
				position = len(top.node.Implements)
			}
			if tok == nil {
				d.stack = append(d.stack, &jsonFrame{field: top.array, position: position})
				return NoIndex, d.errorf("missing node")
			}
			switch tok {
			case json.Delim(']'):
				top.array = ""
			case json.Delim('{'):
				d.stack = append(d.stack, &jsonFrame{field: top.array, position: position})
			default:
				return NoIndex, d.errorf("%s must only contain nodes", top.array)
			}
			continue
		}

		tok, err := d.token()
		if err != nil {
			return NoIndex, err
		}
		if tok == json.Delim('}') {
			index, err := d.finish(top)
			if err != nil {
				return NoIndex, err
			}
			d.stack = d.stack[:len(d.stack)-1]
			if len(d.stack) == 0 {
				return index, nil
			}
			parent := d.stack[len(d.stack)-1]
			switch top.field {
			case "children":
				parent.node.Children = append(parent.node.Children, index)
			case "implements":
				parent.node.Implements = append(parent.node.Implements, index)
			case "type":
				parent.node.DeclaredType = index
			case "generics":
				parent.node.Generics = index
			}
			continue
		}

		key, ok := tok.(string)
		if !ok {
			return NoIndex, d.errorf("unexpected %v", tok)
		}
		if err := d.field(top, key); err != nil {
			return NoIndex, err
		}
	}
}

func (d *jsonDecoder) decode(value interface{}) error {
	if err := d.decoder.Decode(value); err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return d.errorf("%v", err)
	}
	return nil
}

func (d *jsonDecoder) field(f *jsonFrame, key string) error {
	switch key {
	case "kind":
		f.hasKind = true
		return d.decode(&f.kindName)

	case "op":
		return d.decode(&f.op)

	case "postfix":
		return d.decode(&f.postfix)

	case "str":
		return d.decode(&f.node.Str)

	case "num":
		return d.decode(&f.num)

	case "flags":
		return d.decode(&f.flags)

	case "access":
		return d.decode(&f.node.Access)

	case "originalName":
		return d.decode(&f.node.OriginalName)

	case "doc":
		return d.decode(&f.node.Doc)

	case "loc":
		var loc *logger.Loc
		if err := d.decode(&loc); err != nil {
			return err
		}
		if loc != nil {
			f.node.Loc = *loc
		}
		return nil

	case "children", "implements", "type", "generics":
		tok, err := d.token()
		if err != nil {
			return err
		}
		if tok == nil {
			return nil
		}
		isArray := key == "children" || key == "implements"
		switch {
		case isArray && tok == json.Delim('['):
			f.array = key
		case !isArray && tok == json.Delim('{'):
			d.stack = append(d.stack, &jsonFrame{field: key})
		default:
			return d.errorf("unexpected %v in %q", tok, key)
		}
		return nil
	}
	return d.errorf("unknown field %q", key)
}

// finish checks the payloads of a node once all of it has been read, and adds
// it to the tree after its children
func (d *jsonDecoder) finish(f *jsonFrame) (Index, error) {
	kind, ok := KindFromName(f.kindName)
	if !ok {
		if !f.hasKind {
			return NoIndex, d.errorf("missing kind")
		}
		return NoIndex, d.errorf("unknown kind %q", f.kindName)
	}
	node := &f.node
	node.Kind = kind

	switch kind {
	case EBinary, EUnary:
		op, ok := lookupOp(f.op, kind == EUnary, f.postfix)
		if !ok {
			return NoIndex, d.errorf("unknown operator %q for %s", f.op, kind)
		}
		node.Op = op
	default:
		if f.op != "" {
			return NoIndex, d.errorf("%s does not take an operator", kind)
		}
	}

	if len(f.num) > 0 && string(f.num) != "null" {
		num, err := decodeNumber(f.num)
		if err != nil {
			return NoIndex, d.errorf("%v", err)
		}
		node.Num = num
	}

	for _, name := range f.flags {
		flag, ok := flagNames[name]
		if !ok {
			return NoIndex, d.errorf("unknown flag %q", name)
		}
		node.Flags |= flag
	}

	return d.tree.Add(*node), nil
}

func lookupOp(text string, unary bool, postfix bool) (OpCode, bool) {
	first, last := BinOpAdd, opCount-1
	if unary {
		first, last = UnOpPos, UnOpPreInc
		if postfix {
			first, last = UnOpPostDec, UnOpPostInc
		}
	} else if postfix {
		return 0, false
	}
	for op := first; op <= last; op++ {
		if OpTable[op].Text == text {
			return op, true
		}
	}
	return 0, false
}

func decodeNumber(raw json.RawMessage) (float64, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		switch text {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		case "-0":
			return math.Copysign(0, -1), nil
		}
		return 0, fmt.Errorf("invalid number %q", text)
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, fmt.Errorf("invalid number %s", raw)
	}
	return value, nil
}

package smt

import (
	"fmt"
	"strings"

	"github.com/alanz/liquidfix/internal/ports"
	"github.com/alanz/liquidfix/internal/types"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Response is the parsed form of one SMT solver reply (§4.A response
// grammar): sat / unsat / unknown, an error, or a value model.
type Response struct {
	Kind     ResponseKind
	ErrorMsg string
	Model    []ports.ValueBinding
	raw      string
}

type ResponseKind int

const (
	RespSat ResponseKind = iota
	RespUnsat
	RespUnknown
	RespError
	RespModel
)

// String re-serialises the response to exactly the text the grammar
// produces, which is the round-trip property §8 tests.
func (r Response) String() string {
	switch r.Kind {
	case RespSat:
		return "sat"
	case RespUnsat:
		return "unsat"
	case RespUnknown:
		return "unknown"
	case RespError:
		return fmt.Sprintf("(error %q)", r.ErrorMsg)
	case RespModel:
		parts := make([]string, len(r.Model))
		for i, b := range r.Model {
			parts[i] = fmt.Sprintf("(%s %s)", b.Sym, b.Text)
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return r.raw
	}
}

// LineReader supplies one more line of solver output on demand. It is the
// "parser+continuation" pair of §9: ReadResponse calls it again whenever
// the data accumulated so far is not yet a syntactically complete response
// (e.g. a multi-line error message).
type LineReader func() (string, error)

// ReadResponse accumulates lines from read until a complete response has
// arrived, then parses it. A parse failure here is fatal (§7 category 1,
// "Protocol desync"): the conversation has desynchronised and the solve
// must abort.
func ReadResponse(read LineReader) (Response, error) {
	var buf strings.Builder
	for {
		line, err := read()
		if err != nil {
			return Response{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("smt: failed reading solver response").
				WithCause(err)
		}
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
		if _, complete := balance(buf.String()); complete {
			break
		}
	}
	return parseResponse(buf.String())
}

func parseResponse(data string) (Response, error) {
	trimmed := strings.TrimSpace(data)
	switch trimmed {
	case "sat":
		return Response{Kind: RespSat, raw: trimmed}, nil
	case "unsat":
		return Response{Kind: RespUnsat, raw: trimmed}, nil
	case "unknown":
		return Response{Kind: RespUnknown, raw: trimmed}, nil
	}
	if !strings.HasPrefix(trimmed, "(") {
		return Response{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("smt: unparseable response %q", trimmed))
	}
	root, _, err := parseSexpr(trimmed, 0)
	if err != nil {
		return Response{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("smt: malformed s-expression response").
			WithCause(err)
	}
	if len(root.list) == 2 && root.list[0].atom == "error" && root.list[1].quoted {
		return Response{Kind: RespError, ErrorMsg: root.list[1].atom, raw: trimmed}, nil
	}
	// A get-info reply such as (:version "4.8.12") is one keyword/value pair
	// rather than a list of pairs; it is returned as a one-entry model.
	if len(root.list) == 2 && !root.list[0].isList && strings.HasPrefix(root.list[0].atom, ":") {
		return Response{Kind: RespModel, Model: []ports.ValueBinding{{Sym: types.Symbol(root.list[0].atom), Text: root.list[1].String()}}, raw: trimmed}, nil
	}
	model := make([]ports.ValueBinding, 0, len(root.list))
	for _, pair := range root.list {
		if !pair.isList || len(pair.list) != 2 {
			return Response{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("smt: malformed model entry %q", pair.String()))
		}
		model = append(model, ports.ValueBinding{
			Sym:  types.Symbol(pair.list[0].atom),
			Text: pair.list[1].String(),
		})
	}
	return Response{Kind: RespModel, Model: model, raw: trimmed}, nil
}

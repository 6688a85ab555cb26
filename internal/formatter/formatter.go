package formatter

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/mcncl/jsonnorm/internal/models"
)

// DefaultIndent is the indentation used when none is configured.
const DefaultIndent = "  "

// Options controls how a JSON tree is written out.
type Options struct {
	// Indent is repeated once per nesting level. Empty produces compact output.
	Indent string
	// RemoveNulls omits object members whose value is null.
	RemoveNulls bool
}

// Formatter is responsible for turning a JSON tree into text
type Formatter struct {
	opts Options
}

// NewFormatter creates a Formatter that indents with two spaces and keeps nulls
func NewFormatter() *Formatter {
	return &Formatter{opts: Options{Indent: DefaultIndent}}
}

// NewFormatterWithOptions creates a Formatter with custom options
func NewFormatterWithOptions(opts Options) *Formatter {
	return &Formatter{opts: opts}
}

// Format returns the text for v, terminated by a newline
func (f *Formatter) Format(v models.JSONValue) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes v to w. Object members are written in their stored order.
func (f *Formatter) Write(w io.Writer, v models.JSONValue) error {
	enc := jsontext.NewEncoder(w, f.encoderOptions()...)
	return f.encode(enc, v)
}

func (f *Formatter) encoderOptions() []jsontext.Options {
	opts := []jsontext.Options{jsontext.AllowInvalidUTF8(true)}
	if f.opts.Indent != "" {
		opts = append(opts, jsontext.WithIndent(f.opts.Indent), jsontext.SpaceAfterColon(true))
	}
	return opts
}

func (f *Formatter) encode(enc *jsontext.Encoder, v models.JSONValue) error {
	switch val := v.(type) {
	case nil:
		return enc.WriteToken(jsontext.Null)
	case bool:
		return enc.WriteToken(jsontext.Bool(val))
	case float64:
		// JSON has no spelling for non-finite numbers; JavaScript writes them as null.
		if math.IsInf(val, 0) || math.IsNaN(val) {
			return enc.WriteToken(jsontext.Null)
		}
		if val == 0 {
			val = 0 // drop the sign of -0
		}
		return enc.WriteToken(jsontext.Float(val))
	case string:
		return enc.WriteToken(jsontext.String(val))
	case models.JSONArray:
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, elem := range val {
			if err := f.encode(enc, elem); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndArray)
	case *models.JSONObject:
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		for _, m := range val.Members() {
			if f.opts.RemoveNulls && m.Value == nil {
				continue
			}
			if err := enc.WriteToken(jsontext.String(m.Key)); err != nil {
				return err
			}
			if err := f.encode(enc, m.Value); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndObject)
	default:
		return fmt.Errorf("unsupported JSON value of type %T", v)
	}
}

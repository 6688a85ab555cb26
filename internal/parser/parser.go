package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/go-json-experiment/json/jsontext"
	"github.com/mcncl/jsonnorm/internal/errors" // Custom errors package
	"github.com/mcncl/jsonnorm/internal/models"
)

// decoderOptions mirror JSON.parse: a repeated name keeps its first position
// and takes the last value, and invalid UTF-8 is replaced rather than rejected.
var decoderOptions = []jsontext.Options{
	jsontext.AllowDuplicateNames(true),
	jsontext.AllowInvalidUTF8(true),
}

// Parse reads exactly one JSON value from reader into a Document.
// Object members keep the order in which they appear in the input.
func Parse(reader io.Reader) (models.Document, error) {
	dec := jsontext.NewDecoder(reader, decoderOptions...)

	root, err := decodeValue(dec)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.Document{}, syntaxError(err)
	}

	// Whitespace after the root value is fine, anything else is not.
	if _, err := dec.ReadToken(); err == nil {
		return models.Document{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Document{}, errors.NewParsingError("invalid trailing data after first JSON value", syntaxError(err))
	}

	return models.Document{
		Root:     root,
		RootKind: models.KindOf(root),
	}, nil
}

func syntaxError(err error) error {
	var synErr *jsontext.SyntacticError
	if stderrors.As(err, &synErr) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", synErr.ByteOffset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

func decodeValue(dec *jsontext.Decoder) (models.JSONValue, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}

	switch tok.Kind() {
	case 'n':
		return nil, nil
	case 't', 'f':
		return tok.Bool(), nil
	case '"':
		return tok.String(), nil
	case '0':
		return parseNumber(tok.String())
	case '[':
		arr := models.JSONArray{}
		for dec.PeekKind() != ']' {
			elem, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return arr, nil
	case '{':
		obj := models.NewJSONObject(0)
		for dec.PeekKind() != '}' {
			name, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			// A Token is only valid until the next decoder call.
			key := name.String()
			value, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, value)
		}
		if _, err := dec.ReadToken(); err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok.Kind())
	}
}

// parseNumber converts a JSON number literal to a float64. Literals outside
// the float64 range become ±Inf, as in JavaScript.
func parseNumber(literal string) (models.JSONValue, error) {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return nil, err
	}
	return f, nil
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}

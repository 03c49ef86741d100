package decoders

import (
	"errors"
	"strings"

	"log-analyzer/internal/models"

	"github.com/valyala/fastjson"
)

// Format names the input shape a line was decoded from.
type Format string

const (
	FormatNone       Format = "none"
	FormatStructured Format = "structured"
	FormatText       Format = "text"
)

var (
	ErrUnrecognizedLine     = errors.New("line is neither a json object nor a request log line")
	ErrNotAnObject          = errors.New("structured line is not a json object")
	ErrUnsupportedFieldType = errors.New("structured field has a non-string value")
)

// requestLineTemplate describes the free-text request log line, e.g.
//
//	2025-03-27 12:13:15,000 INFO django.request: GET /api/v1/products/ 201 OK [192.168.1.72]
const requestLineTemplate = `%{DJANGOTIMESTAMP:timestamp} %{WORD:levelname} %{LOGGERNAME:logger}: ` +
	`%{WORD:method} %{NOTSPACE:path} %{DIGITS:status} %{WORD:message} \[%{IPDIGITS:ip}\]`

var requestLinePattern = mustGrokPattern(requestLineTemplate)

// stringOnlyFields must hold JSON strings when present; anything else fails the line.
var stringOnlyFields = map[string]struct{}{
	models.FieldLogger:    {},
	models.FieldPath:      {},
	models.FieldLevelName: {},
}

// DecodeResult is the outcome of decoding one line. A failed decode carries Err and an
// empty Record; it is data for the caller, never a reason to stop reading.
type DecodeResult struct {
	Record models.FieldRecord
	Format Format
	Err    error
}

func (r DecodeResult) OK() bool {
	return r.Err == nil
}

func failure(err error) DecodeResult {
	return DecodeResult{Record: models.FieldRecord{}, Format: FormatNone, Err: err}
}

//go:generate mockgen -source=line_decoder.go -destination=./mocks/line_decoder_mock.go -package=mocks
type LineDecoder interface {
	Decode(line string) DecodeResult
}

type lineDecoder struct {
	parsers fastjson.ParserPool
}

// NewLineDecoder returns a decoder safe for concurrent use.
func NewLineDecoder() LineDecoder {
	return &lineDecoder{}
}

// Decode tries the line as a JSON object first and falls back to the request line pattern.
func (d *lineDecoder) Decode(line string) DecodeResult {
	line = strings.TrimRight(line, "\r\n")

	parser := d.parsers.Get()
	value, err := parser.Parse(line)
	if err == nil {
		result := decodeStructured(value)
		d.parsers.Put(parser)
		return result
	}
	d.parsers.Put(parser)

	return decodeText(line)
}

func decodeStructured(value *fastjson.Value) DecodeResult {
	obj, err := value.Object()
	if err != nil {
		return failure(ErrNotAnObject)
	}

	record := make(models.FieldRecord, obj.Len())
	// duplicate keys keep their last value; a later string clears an earlier rejection
	rejected := make(map[string]struct{})
	obj.Visit(func(key []byte, v *fastjson.Value) {
		name := string(key)
		_, stringOnly := stringOnlyFields[name]

		switch v.Type() {
		case fastjson.TypeString:
			record[name] = string(v.GetStringBytes())
			delete(rejected, name)
		case fastjson.TypeNumber, fastjson.TypeTrue, fastjson.TypeFalse:
			if stringOnly {
				rejected[name] = struct{}{}
				return
			}
			record[name] = v.String()
		default:
			if stringOnly {
				rejected[name] = struct{}{}
				return
			}
			// null, nested objects and arrays carry nothing a flat record can hold
			delete(record, name)
		}
	})
	if len(rejected) > 0 {
		return failure(ErrUnsupportedFieldType)
	}

	return DecodeResult{Record: record, Format: FormatStructured}
}

func decodeText(line string) DecodeResult {
	fields, ok := requestLinePattern.Match(strings.TrimSpace(line))
	if !ok {
		return failure(ErrUnrecognizedLine)
	}
	return DecodeResult{Record: models.FieldRecord(fields), Format: FormatText}
}

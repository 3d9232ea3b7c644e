package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

// A Parser decodes request payloads into structs and validates them
// against their "validate" struct tags.
type Parser struct {
	dec   *schema.Decoder
	valid *v10.Validate
}

// NewParser constructs a *Parser that ignores unknown query parameters
// and reports fields by their "json" or "schema" tag names.
func NewParser() *Parser {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	v := v10.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			name = ""
		}

		if name == "" {
			name = strings.SplitN(field.Tag.Get("schema"), ",", 2)[0]
		}

		if name == "-" {
			name = ""
		}

		return name
	})

	return &Parser{dec: dec, valid: v}
}

// ParseBody decodes into a pointer to a struct the JSON data in body.
// If successful, ParseBody runs validation against the contents,
// returning ValidationErrors if the data fails validation rules.
//
// ParseBody reads the entire body and can't be read from again.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("switchback/http/req: %w: ParseBody called with non-pointer: %s", ErrBadAny, err)
	}

	if err != nil {
		return fmt.Errorf("switchback/http/req: %w: failed decoding request body: %s", ErrBadFormat, err)
	}

	return p.validate(structPtr)
}

// ParseQueryParams decodes into a pointer to a struct the query param data in params.
// If successful, ParseQueryParams runs validation against the contents,
// returning ValidationErrors if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if err := p.dec.Decode(structPtr, params); err != nil {
		return fmt.Errorf("switchback/http/req: failed decoding request query params: %w", translateDecoderError(err))
	}

	return p.validate(structPtr)
}

// translateDecoderError converts an error returned by *schema.Decoder into standardized errors.
func translateDecoderError(err error) error {
	var pkgErrs schema.MultiError
	if !errors.As(err, &pkgErrs) {
		return fmt.Errorf("%w: %s", ErrBadAny, err)
	}

	var validErrs ValidationErrors
	for _, pkgErr := range pkgErrs {
		switch err := pkgErr.(type) {
		case schema.ConversionError:
			// NOTE(dlk): For non-slice values, Index is -1.
			idx := err.Index
			if idx < 0 {
				idx = 0
			}

			validErrs = append(validErrs, ValidationError{
				Field: err.Key,
				Got:   fmt.Sprintf("bad value at index %d", idx),
				Rule:  "must be " + err.Type.String(),
			})

		default:
			return fmt.Errorf("%w: %s", ErrBadFormat, err)
		}
	}

	return validErrs
}

// validate checks the fields on structPtr match the rules set by "validate" struct tags.
func (p *Parser) validate(structPtr any) error {
	err := p.valid.Struct(structPtr)
	if err == nil {
		return nil
	}

	var errs v10.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("switchback/http/req: %w: %s", ErrBadAny, err)
	}

	var validateErrs ValidationErrors
	for _, ve := range errs {
		field := ve.Namespace()
		if ns := strings.SplitN(field, ".", 2); len(ns) == 2 {
			field = ns[1]
		}

		rule := ve.Tag()
		if ve.Param() != "" {
			rule += "=" + ve.Param()
		}

		validateErrs = append(validateErrs, ValidationError{
			Field: field,
			Got:   ve.Value(),
			Rule:  rule + "; " + ve.Type().String(),
		})
	}

	return validateErrs
}

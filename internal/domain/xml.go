package domain

import (
	"encoding/xml"
	"fmt"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"

	apperrors "github.com/shhac/minisql/internal/errors"
)

// Element names match the connection files written by earlier .NET releases
// of the tool, so existing files load unchanged.
type xmlDefinitionList struct {
	XMLName     xml.Name        `xml:"DbConnectionDefinitionList"`
	Definitions []xmlDefinition `xml:"Definitions>DbConnectionDefinition"`
	DefaultName *string         `xml:"DefaultName"`
}

type xmlDefinition struct {
	Name             *string `xml:"Name"`
	ProviderName     *string `xml:"ProviderName"`
	ConnectionString *string `xml:"ConnectionString"`
	Comment          string  `xml:"Comment,omitempty"`
}

// FromXML parses a connection definition document. Any parse or shape error
// yields a *errors.DeserializationError and no list.
func FromXML(doc string) (*ConnectionDefinitionList, error) {
	return ReadXML(strings.NewReader(doc))
}

// ReadXML is FromXML over a reader.
func ReadXML(r io.Reader) (*ConnectionDefinitionList, error) {
	var raw xmlDefinitionList
	if err := decodeDocument(r, &raw); err != nil {
		return nil, deserializationError(err)
	}

	defs := make([]ConnectionDefinition, 0, len(raw.Definitions))
	for i, d := range raw.Definitions {
		def, err := d.toDefinition()
		if err != nil {
			return nil, deserializationError(fmt.Errorf("definition %d: %w", i, err))
		}
		defs = append(defs, def)
	}

	list := &ConnectionDefinitionList{definitions: defs}
	if raw.DefaultName != nil {
		list.DefaultName = *raw.DefaultName
	}
	return list, nil
}

// ToXML serializes the list in the format FromXML reads.
func (l *ConnectionDefinitionList) ToXML() (string, error) {
	var sb strings.Builder
	if err := l.WriteXML(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// WriteXML writes the indented document, including the XML declaration.
// Values XML 1.0 cannot carry (control characters, invalid UTF-8) are
// rejected rather than replaced, so the document always reads back equal.
func (l *ConnectionDefinitionList) WriteXML(w io.Writer) error {
	if err := l.checkRepresentable(); err != nil {
		return err
	}

	raw := xmlDefinitionList{
		Definitions: make([]xmlDefinition, 0, len(l.definitions)),
	}
	for _, d := range l.definitions {
		raw.Definitions = append(raw.Definitions, xmlDefinition{
			Name:             ptr(d.Name),
			ProviderName:     ptr(d.ProviderName),
			ConnectionString: ptr(d.ConnectionString),
			Comment:          d.Comment,
		})
	}
	if l.DefaultName != "" {
		raw.DefaultName = ptr(l.DefaultName)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write xml header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encode connection definitions: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write trailing newline: %w", err)
	}
	return nil
}

func (l *ConnectionDefinitionList) checkRepresentable() error {
	for i, d := range l.definitions {
		for _, f := range []struct{ field, value string }{
			{"Name", d.Name},
			{"ProviderName", d.ProviderName},
			{"ConnectionString", d.ConnectionString},
			{"Comment", d.Comment},
		} {
			if err := checkXMLText(f.field, f.value); err != nil {
				return fmt.Errorf("definition %d: %w", i, err)
			}
		}
	}
	return checkXMLText("DefaultName", l.DefaultName)
}

func checkXMLText(field, value string) error {
	if !utf8.ValidString(value) {
		return apperrors.ValidationError{Field: field, Message: "is not valid UTF-8"}
	}
	for _, r := range value {
		if !isXMLChar(r) {
			return apperrors.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("contains %U, which cannot be stored in XML", r),
			}
		}
	}
	return nil
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

func (d xmlDefinition) toDefinition() (ConnectionDefinition, error) {
	switch {
	case d.Name == nil:
		return ConnectionDefinition{}, fmt.Errorf("missing <Name>")
	case d.ProviderName == nil:
		return ConnectionDefinition{}, fmt.Errorf("missing <ProviderName>")
	case d.ConnectionString == nil:
		return ConnectionDefinition{}, fmt.Errorf("missing <ConnectionString>")
	}
	return ConnectionDefinition{
		Name:             *d.Name,
		ProviderName:     *d.ProviderName,
		ConnectionString: *d.ConnectionString,
		Comment:          d.Comment,
	}, nil
}

// newDecoder returns a strict decoder. Documents written by .NET declare
// encoding="utf-16"; by the time they reach here they have been transcoded
// to UTF-8, so unicode labels pass through and anything else is decoded
// via the IANA registry.
func newDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		switch strings.ToLower(label) {
		case "utf-8", "utf8", "utf-16", "utf-16le", "utf-16be", "unicode", "us-ascii":
			return input, nil
		}
		enc, err := ianaindex.IANA.Encoding(label)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("unsupported charset %q", label)
		}
		return enc.NewDecoder().Reader(input), nil
	}
	return dec
}

// decodeDocument decodes the root element into v and then requires that
// nothing but whitespace, comments and processing instructions follow it.
func decodeDocument(r io.Reader, v any) error {
	dec := newDecoder(r)
	if err := dec.Decode(v); err != nil {
		return err
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) != 0 {
				return errors.New("unexpected text after root element")
			}
		default:
			return fmt.Errorf("unexpected %T after root element", tok)
		}
	}
}

func deserializationError(err error) error {
	return &apperrors.DeserializationError{Source: "connection definitions", Err: err}
}

func ptr(s string) *string {
	return &s
}

package domain

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// LegacyConnectionDefinition is a connection record in the pre-registry
// format, a bare array of definitions with no default. It is only read,
// never written.
type LegacyConnectionDefinition struct {
	Name             string
	ProviderName     string
	ConnectionString string
}

type xmlLegacyArray struct {
	XMLName xml.Name              `xml:"ArrayOfConnectionDefinition"`
	Items   []xmlLegacyDefinition `xml:"ConnectionDefinition"`
}

type xmlLegacyDefinition struct {
	Name             *string `xml:"Name"`
	ProviderName     *string `xml:"ProviderName"`
	ConnectionString *string `xml:"ConnectionString"`
}

// ParseLegacyXML reads an ArrayOfConnectionDefinition document.
func ParseLegacyXML(doc string) ([]LegacyConnectionDefinition, error) {
	return ReadLegacyXML(strings.NewReader(doc))
}

// ReadLegacyXML is ParseLegacyXML over a reader.
func ReadLegacyXML(r io.Reader) ([]LegacyConnectionDefinition, error) {
	var raw xmlLegacyArray
	if err := decodeDocument(r, &raw); err != nil {
		return nil, deserializationError(err)
	}

	out := make([]LegacyConnectionDefinition, 0, len(raw.Items))
	for i, item := range raw.Items {
		def, err := xmlDefinition{
			Name:             item.Name,
			ProviderName:     item.ProviderName,
			ConnectionString: item.ConnectionString,
		}.toDefinition()
		if err != nil {
			return nil, deserializationError(fmt.Errorf("legacy definition %d: %w", i, err))
		}
		out = append(out, LegacyConnectionDefinition{
			Name:             def.Name,
			ProviderName:     def.ProviderName,
			ConnectionString: def.ConnectionString,
		})
	}
	return out, nil
}

// Upgrade converts legacy records into a list, preserving their order.
// When defaultName is empty the first migrated definition becomes the
// default; with no records the default is left as given.
func Upgrade(old []LegacyConnectionDefinition, defaultName string) *ConnectionDefinitionList {
	defs := make([]ConnectionDefinition, 0, len(old))
	for _, o := range old {
		defs = append(defs, ConnectionDefinition{
			Name:             o.Name,
			ProviderName:     o.ProviderName,
			ConnectionString: o.ConnectionString,
		})
	}

	list := &ConnectionDefinitionList{
		definitions: defs,
		DefaultName: defaultName,
	}
	if list.DefaultName == "" && len(defs) > 0 {
		list.DefaultName = defs[0].Name
	}
	return list
}

package annotate

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

type xmlDocument struct {
	Classes []xmlClass `xml:"class"`
}

type xmlClass struct {
	Name        string        `xml:"name"`
	Description string        `xml:"description"`
	Methods     []xmlFunction `xml:"methods>function"`
}

type xmlFunction struct {
	Signature   string     `xml:"signature"`
	Description string     `xml:"description"`
	Params      []xmlParam `xml:"param"`
}

type xmlParam struct {
	Name        *string `xml:"name,attr"`
	Description string  `xml:",chardata"`
}

// ParseXML reads a class description. The root element name is not checked;
// only its first <class> child is used.
func ParseXML(r io.Reader) (*Class, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing xml: %w", err)
	}
	if len(doc.Classes) == 0 {
		return nil, fmt.Errorf("parsing xml: no <class> element")
	}
	xc := doc.Classes[0]
	cls := &Class{
		Name:        strings.TrimSpace(xc.Name),
		Description: strings.TrimSpace(xc.Description),
	}
	if cls.Name == "" {
		return nil, fmt.Errorf("parsing xml: <class> has no <name>")
	}
	for i, xf := range xc.Methods {
		m := Method{
			Signature:   strings.TrimSpace(xf.Signature),
			Description: strings.TrimSpace(xf.Description),
		}
		if m.Signature == "" {
			return nil, fmt.Errorf("parsing xml: function %d of class %s has no <signature>", i+1, cls.Name)
		}
		for _, xp := range xf.Params {
			if xp.Name == nil || strings.TrimSpace(*xp.Name) == "" {
				return nil, fmt.Errorf("parsing xml: function %q has a <param> without a name attribute", m.Signature)
			}
			m.Params = append(m.Params, Param{
				Name:        strings.TrimSpace(*xp.Name),
				Description: strings.TrimSpace(xp.Description),
			})
		}
		cls.Methods = append(cls.Methods, m)
	}
	return cls, nil
}

// ParseXMLFile opens and parses path.
func ParseXMLFile(path string) (*Class, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cls, err := ParseXML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cls, nil
}

// Package annotate inserts Doxygen comment blocks into C++ headers from an
// XML description of a class and its methods.
//
// Declarations are located by literal line match: the class by
// "class <Name> {" and each method by four spaces, the signature, then " {".
// A description that cannot be placed is an error; nothing is written.
package annotate

import "errors"

var (
	// ErrClassNotFound is returned when the class declaration line is missing.
	ErrClassNotFound = errors.New("class declaration not found")
	// ErrMethodNotFound is returned when a method declaration line is missing.
	ErrMethodNotFound = errors.New("method declaration not found")
)

// DefaultClassBrief is used when the XML gives no class description.
const DefaultClassBrief = "Class description goes here."

// methodIndent prefixes every method declaration and its comment block.
const methodIndent = "    "

type Param struct {
	Name        string
	Description string
}

type Method struct {
	Signature   string
	Description string
	Params      []Param
}

type Class struct {
	Name        string
	Description string
	Methods     []Method
}

// Declaration returns the literal class declaration line.
func (c *Class) Declaration() string {
	return "class " + c.Name + " {"
}

// Declaration returns the literal method declaration line.
func (m Method) Declaration() string {
	return methodIndent + m.Signature + " {"
}

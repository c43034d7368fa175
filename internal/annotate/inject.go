package annotate

import (
	"fmt"
	"strings"
)

// SplitLines splits content after each newline, keeping terminators.
func SplitLines(content string) []string {
	lines := strings.SplitAfter(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Inject returns a copy of lines with a comment block inserted above the
// class declaration and above each method declaration, in XML order.
// Methods are searched from the class declaration onwards.
func Inject(lines []string, cls *Class) ([]string, error) {
	out := make([]string, len(lines), len(lines)+4+len(cls.Methods)*4)
	copy(out, lines)

	classIdx := indexLine(out, cls.Declaration(), 0)
	if classIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrClassNotFound, cls.Declaration())
	}
	out = insert(out, classIdx, classComment(cls, newline(out[classIdx])))

	for _, m := range cls.Methods {
		idx := indexLine(out, m.Declaration(), classIdx)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q in class %s", ErrMethodNotFound, m.Declaration(), cls.Name)
		}
		out = insert(out, idx, methodComment(m, newline(out[idx])))
	}
	return out, nil
}

func indexLine(lines []string, want string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == want {
			return i
		}
	}
	return -1
}

func newline(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

func insert(lines []string, at int, block []string) []string {
	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:at]...)
	out = append(out, block...)
	return append(out, lines[at:]...)
}

func classComment(cls *Class, nl string) []string {
	brief := cls.Description
	if brief == "" {
		brief = DefaultClassBrief
	}
	return []string{
		"/**" + nl,
		" * @class " + cls.Name + nl,
		" * @brief " + brief + nl,
		" */" + nl,
	}
}

func methodComment(m Method, nl string) []string {
	block := []string{
		methodIndent + "/**" + nl,
		tag("@brief", m.Description) + nl,
	}
	for _, p := range m.Params {
		block = append(block, tag("@param "+p.Name, p.Description)+nl)
	}
	return append(block, methodIndent+" */"+nl)
}

func tag(name, text string) string {
	return strings.TrimRight(methodIndent+" * "+name+" "+text, " ")
}

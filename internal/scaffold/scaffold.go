package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jorge-barreto/doxrun/internal/config"
	"github.com/jorge-barreto/doxrun/internal/discover"
	"github.com/jorge-barreto/doxrun/internal/ux"
)

const exampleXML = `<class>
    <name>Color</name>
    <methods>
        <function>
            <signature>void setRGB(int r, int g, int b)</signature>
            <description>Sets the colour from red, green and blue components.</description>
            <param name="r">Red component, 0-255</param>
            <param name="g">Green component, 0-255</param>
            <param name="b">Blue component, 0-255</param>
        </function>
        <function>
            <signature>int red() const</signature>
            <description>Returns the red component.</description>
        </function>
    </methods>
</class>
`

const annotationsExample = `
# Comment injection jobs for 'doxrun annotate'. See 'doxrun docs annotate'.
# annotations:
#   - xml: .doxrun/Color.xml
#     source: Source/Color.h
`

// Init creates a new .doxrun/ directory with a config listing the projects
// discovered under targetDir and an example annotation XML file.
func Init(targetDir string) error {
	dir := filepath.Join(targetDir, config.Dir)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("%s directory already exists in %s", config.Dir, targetDir)
	}

	found, err := discover.Scan(targetDir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", targetDir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", config.Dir, err)
	}

	configPath := filepath.Join(dir, "config.yaml")
	content := renderConfig(filepath.Base(targetDir), found.Projects())
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing config.yaml: %w", err)
	}

	xmlPath := filepath.Join(dir, "Color.xml")
	if err := os.WriteFile(xmlPath, []byte(exampleXML), 0644); err != nil {
		return fmt.Errorf("writing Color.xml: %w", err)
	}

	ux.Initialized(config.Dir)
	fmt.Fprintf(ux.Out, "  Detected projects:\n%s\n", found.Render())
	fmt.Fprintf(ux.Out, "  Created:\n")
	fmt.Fprintf(ux.Out, "    %s  documentation projects\n", ux.Path(config.Dir+"/config.yaml"))
	fmt.Fprintf(ux.Out, "    %s     example annotation XML\n\n", ux.Path(config.Dir+"/Color.xml"))
	fmt.Fprintf(ux.Out, "  Next steps:\n")
	fmt.Fprintf(ux.Out, "    1. Edit %s to adjust projects and settings\n", ux.Path(config.Dir+"/config.yaml"))
	fmt.Fprintf(ux.Out, "    2. Run %s to preview\n", ux.Path("doxrun build --dry-run"))
	fmt.Fprintf(ux.Out, "    3. Run %s to generate documentation\n\n", ux.Path("doxrun build"))

	return nil
}

func renderConfig(name string, projects []discover.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "name: %s\n", scalar(name))
	b.WriteString("tool: doxygen\n")
	b.WriteString("docs-dir: Documentation\n")
	b.WriteString("timeout: 10\n\n")
	b.WriteString("projects:\n")

	if len(projects) == 0 {
		projects = []discover.Candidate{{Name: name, Input: "."}}
	}
	for _, p := range projects {
		fmt.Fprintf(&b, "  - name: %s\n", scalar(p.Name))
		if p.Doxyfile != "" {
			fmt.Fprintf(&b, "    doxyfile: %s\n", scalar(p.Doxyfile))
			continue
		}
		fmt.Fprintf(&b, "    input:\n      - %s\n", scalar(p.Input))
		b.WriteString("    file-patterns: \"*.h\"\n")
	}
	b.WriteString(annotationsExample)
	return b.String()
}

// scalar renders s as a YAML scalar, quoting only when needed.
func scalar(s string) string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Sprintf("%q", s)
	}
	return strings.TrimSuffix(string(out), "\n")
}

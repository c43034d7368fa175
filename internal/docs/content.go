package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with doxrun",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "Config file schema, fields, and defaults",
		Content: topicConfig,
	},
	{
		Name:    "variables",
		Title:   "Path and Environment Variables",
		Summary: "Variables expanded in paths and exported to the tool",
		Content: topicVariables,
	},
	{
		Name:    "build",
		Title:   "Build Model",
		Summary: "Project order, failure handling, resuming, and dry runs",
		Content: topicBuild,
	},
	{
		Name:    "annotate",
		Title:   "Comment Injection",
		Summary: "Adding Doxygen comment blocks to headers from XML",
		Content: topicAnnotate,
	},
	{
		Name:    "artifacts",
		Title:   "Artifacts Directory",
		Summary: "Structure of .doxrun/artifacts/ and what gets saved",
		Content: topicArtifacts,
	},
}

const topicQuickstart = `Quick Start
===========

1. Initialize a project:

    cd your-project
    doxrun init

   This creates .doxrun/config.yaml and .doxrun/Color.xml.

2. Edit .doxrun/config.yaml to list the projects to document. Each
   project names its input directories, or points at an existing Doxyfile.

3. Preview the generated configuration without running doxygen:

    doxrun build --dry-run

4. Generate the documentation:

    doxrun build

5. Check progress or diagnose a failure:

    doxrun status
    doxrun doctor

CLI Flags
---------

  doxrun build                  Generate docs for every project
  doxrun build --dry-run        Print the generated configs only
  doxrun build --from N         Start from project N (1-indexed)
  doxrun build --resume         Continue a failed or interrupted run
  doxrun annotate               Run every annotation job in the config
  doxrun annotate --xml F --source F
                                Run a single annotation job
  doxrun annotate --dry-run     Show a diff instead of writing
  doxrun status                 Show the state of the last run
  doxrun doctor                 Diagnose the last failed run
  doxrun init                   Scaffold .doxrun/ directory
  doxrun docs                   List documentation topics
  doxrun docs <topic>           Read a topic

Global flags:

  --log-level LEVEL             trace, debug, info, warn (default), error
  --log-file PATH               Also append diagnostic logs to PATH
`

const topicConfig = `Configuration Reference
=======================

doxrun looks for .doxrun/config.yaml (or config.yml, or config.toml),
walking up from the current directory. The directory holding .doxrun/
is the project root.

Top-level fields
----------------

  name          (required) Name of the configuration.
  tool          Executable to run. Default: doxygen
  docs-dir      Directory the tool runs in. Default: Documentation
                Relative to the project root. Created if missing.
  timeout       Per-project timeout in minutes. Default: 10
                0 disables the timeout.
  projects      (required) Ordered list of projects.
  annotations   Comment-injection jobs for 'doxrun annotate'.

Project fields
--------------

  name          (required) Unique project name. Written as PROJECT_NAME.
  input         List of input directories or files. Written as INPUT,
                space-separated. Relative paths resolve against the
                project root. At least one must exist.
  output        Written as OUTPUT_DIRECTORY. Default: .
                Relative to docs-dir, the tool's working directory.
  file-patterns Written as FILE_PATTERNS. Default: *.h
  settings      Extra KEY: VALUE pairs appended after the four core
                keys. Keys must be upper case Doxyfile keys and may not
                repeat PROJECT_NAME, OUTPUT_DIRECTORY, INPUT or
                FILE_PATTERNS. In TOML, booleans become YES/NO and keys
                are written in sorted order.
  doxyfile      Run an existing Doxyfile as-is instead of generating
                one. Cannot be combined with input, output,
                file-patterns or settings.

Annotation fields
-----------------

  xml           (required) Class description XML.
  source        (required) Header file to update in place.

Example
-------

  name: packer
  docs-dir: Documentation
  projects:
    - name: Packer
      input: [Source/Packer]
    - name: Console
      input: [Source/Console, Source/Shared]
      settings:
        RECURSIVE: YES
    - name: Tests
      doxyfile: Documentation/Doxyfile_Tests
  annotations:
    - xml: Documentation/Color.xml
      source: Source/Shared/Color.h
`

const topicVariables = `Path and Environment Variables
==============================

Paths in input, output and doxyfile are expanded before use:

  $PROJECT_ROOT   Directory containing .doxrun/
  $DOCS_DIR       Absolute docs-dir

Any other $VAR or ${VAR} is taken from the environment.

The tool runs with its working directory set to docs-dir and these
variables added to its environment:

  DOXRUN_RUN_ID          Unique ID of the current build
  DOXRUN_PROJECT         Name of the project being built
  DOXRUN_PROJECT_ROOT    Project root
  DOXRUN_DOCS_DIR        Absolute docs-dir
  DOXRUN_ARTIFACTS_DIR   .doxrun/artifacts
  DOXRUN_PROJECT_INDEX   1-based index of the project
  DOXRUN_PROJECT_COUNT   Number of projects
`

const topicBuild = `Build Model
===========

Projects are built one at a time, in the order listed. For each one:

  1. A temporary Doxyfile is written with PROJECT_NAME,
     OUTPUT_DIRECTORY, INPUT and FILE_PATTERNS, followed by settings.
     Projects with 'doxyfile' use that file instead.
  2. The tool runs as '<tool> <config>' inside docs-dir. Its output is
     shown on the console and saved to the project log.
  3. The temporary Doxyfile is deleted, whether the tool succeeded
     or not.

A non-zero exit code, a timeout, or a tool that cannot be started fails
the project. The build stops there; later projects are not run and
doxrun exits with status 1.

Resuming
--------

Each 'doxrun build' starts a fresh run from project 1 and clears the
previous run's logs. After a failure or Ctrl-C:

  doxrun build --resume     Continue from the project that stopped
  doxrun build --from N     Start from project N

Dry runs
--------

'doxrun build --dry-run' prints every generated Doxyfile without
writing or running anything.
`

const topicAnnotate = `Comment Injection
=================

'doxrun annotate' adds Doxygen comment blocks to a C++ header using a
class description XML file:

  <class>
    <name>Color</name>
    <methods>
      <function>
        <signature>void setRGB(int r, int g, int b)</signature>
        <description>Sets the colour.</description>
        <param name="r">Red component</param>
      </function>
    </methods>
  </class>

The header must declare the class on a line reading exactly
'class Color {' and each method on a line reading four spaces, the
signature, then ' {'. A block is inserted above each:

  /**
   * @class Color
   * @brief Class description goes here.
   */
  class Color {
      /**
       * @brief Sets the colour.
       * @param r Red component
       */
      void setRGB(int r, int g, int b) {

Methods are searched from the class line onward. If the class or any
method is not found the file is left untouched and an error names the
missing declaration.

Use --dry-run to print a unified diff instead of writing the file.
`

const topicArtifacts = `Artifacts Directory
===================

doxrun keeps run records in .doxrun/artifacts/:

  state.json                 Run ID, current project index, status
  timing.json                Start, end and duration per project
  logs/project-N.log         Tool output for project N
  doxyfiles/project-N.doxyfile
                             Copy of the generated Doxyfile

State is written atomically after every project, so an interrupted
build can be resumed with 'doxrun build --resume'. A fresh build
removes the previous logs, doxyfiles and timing.

'doxrun status' summarises these files; 'doxrun doctor' shows the
failing project's config, log tail and environment checks.
`

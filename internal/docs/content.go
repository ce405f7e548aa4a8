package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with fater",
		Content: topicQuickstart,
	},
	{
		Name:    "syntax",
		Title:   "Story Syntax",
		Summary: "Sections, identifiers, descriptions, and comments",
		Content: topicSyntax,
	},
	{
		Name:    "choices",
		Title:   "Choices and Endings",
		Summary: "Labeled choices, the lone '->' shorthand, and END",
		Content: topicChoices,
	},
	{
		Name:    "errors",
		Title:   "Parse Errors",
		Summary: "Every error fater check can report and how to fix it",
		Content: topicErrors,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "fater.yaml fields, defaults, and environment overrides",
		Content: topicConfig,
	},
	{
		Name:    "commands",
		Title:   "Commands",
		Summary: "check, show, play, export, and serve",
		Content: topicCommands,
	},
}

const topicQuickstart = `QUICK START

  fater init            create fater.yaml and an example story.fater
  fater check           parse and validate the story
  fater play            walk the story in the terminal
  fater serve --watch   play-test in a browser, reloading on save

A story is a plain text file made of sections. Each section has a name, some
prose, and one or more choices that lead to other sections:

  START:
  You stand at a fork in the road.

  go left -> LEFT
  go right -> RIGHT
  ---

Reading begins at the section named START. See 'fater docs syntax' for the
full format.
`

const topicSyntax = `STORY SYNTAX

A story is a sequence of sections. A section is:

  NAME:                   header line
  prose...                one or more paragraphs
                          blank line(s)
  label -> TARGET         one or more choices
  ---                     terminator

Identifiers
  Section names use only upper-case letters A-Z, digits, and '_', and must
  contain at least one letter. The header carries a trailing ':'; references
  to a section in a choice do not.

    START:      valid header
    ROOM_2:     valid header
    room:       invalid, lower-case
    _1_:        invalid, no letter

Descriptions
  Everything between the header and the first choice is prose. Paragraphs are
  separated by a blank line. Lines inside a paragraph are joined with spaces.
  Leading and trailing whitespace on each line is removed.

Comments
  A line whose first character is '#' is ignored everywhere. An indented '#'
  is ordinary prose.

Terminator
  Every section ends with a line that is exactly '---'. A section that runs
  to the end of the file without one is an error.

Reserved names
  END, __RESTART, and __MENU are reserved. They cannot name a section, and
  __RESTART and __MENU cannot be written as choice targets.
`

const topicChoices = `CHOICES AND ENDINGS

Labeled choices
  A choice is a label, an arrow, and a target section:

    open the door -> HALL

  The label is shown to the reader. Exactly one '->' is allowed per choice.
  Once the first choice appears, every following non-blank line up to '---'
  must be a choice.

The lone shorthand
  A choice with no label may be used when it is the only choice in a
  section:

    -> HALL

  The reader sees a single "Continue..." choice.

Endings
  A lone '-> END' ends the story. It becomes two choices:

    Restart from beginning   (goes back to the start section)
    Return to menu

  END cannot be used with a label, and cannot appear next to other choices.
`

const topicErrors = `PARSE ERRORS

fater check stops at the first problem and reports its line. Messages:

  invalid character in section identifier
      A header or target contains something other than A-Z, 0-9, '_'.

  section definition is missing its trailing ':'
      Section headers end with ':'.

  section reference must not end with ':'
      Choice targets name a section without the colon.

  section identifier needs at least one letter
      Names like '_' or '123' are not allowed.

  choice is missing '->'
      A line after the first choice has no arrow.

  choice has more than one '->'
      Split the line or reword the label.

  expected a choice
      The section ended, or '---' appeared, before any choice.

  section has no description
      The header is followed directly by choices or the terminator.

  section is not terminated by '---'
      The file ended in the middle of a section.

  section is defined more than once
      Two headers use the same name; both lines are reported.

  choice points to an undefined section
      A choice target has no matching header anywhere in the story.

  END is only valid as a lone '-> END' choice
      Remove the label, or point the choice elsewhere.

  a choice without a label must be the only choice
      Give every choice a label when a section has more than one.

  END, __RESTART and __MENU are reserved
      Rename the section, or use '-> END' to finish the story.

  story has no start section
      Reported when require-start is on and no section matches 'start'.
`

const topicConfig = `CONFIGURATION REFERENCE

fater reads fater.yaml from the current directory (override with --config).
Every field is optional.

  name: my-story            title used by the browser page and exports
  ifid: 3F2504E0-...        story identifier; generated by 'fater init'
  story: story.fater        story file, relative to fater.yaml
  start: START              section reading begins at
  require-start: true       fail check when the start section is missing

  logging:
    level: info             debug, info, warn, error
    format: console         console or json
    file: ""                also write JSON logs to this rotated file

  serve:
    addr: 127.0.0.1:8080    listen address for 'fater serve'
    cors: false             allow cross-origin API requests

Environment variables override the file:

  FATER_STORY, FATER_START, FATER_REQUIRE_START,
  FATER_LOG_LEVEL, FATER_LOG_FORMAT, FATER_LOG_FILE,
  FATER_SERVE_ADDR, FATER_SERVE_CORS
`

const topicCommands = `COMMANDS

  fater check [FILE] [--watch]
      Parse and validate. With --watch, re-check on every save.

  fater show SECTION [FILE] [--html]
      Print one section as the reader sees it, or as its HTML fragment.

  fater play [FILE]
      Walk the story in the terminal. Type a choice number, or q to quit.

  fater export [FILE] --format yaml|json|html --out PATH
      Write the parsed story. The html format is a single standalone page.

  fater serve [FILE] [--addr ADDR] [--watch]
      Serve the story page and a JSON API:
        GET /                   playable page
        GET /sections/ID        HTML fragment for one section
        GET /api/story          whole story as JSON
        GET /api/sections/ID    one section as JSON
        GET /api/health         liveness
      With --watch, connected pages reload when the story changes.

  fater docs [TOPIC]
      List topics, or print one.
`

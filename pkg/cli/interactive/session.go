package interactive

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/codemate-labs/codemate/pkg/framework"
)

// State identifies where the interactive session is in its prompt cycle.
type State int

const (
	StateAwaitingName      State = iota // prompting for a component name
	StateAwaitingFramework              // prompting for a framework id
	StateGenerating                     // running the generation pipeline
	StateTerminated                     // ended on exit sentinel or EOF
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAwaitingName:
		return "awaiting-name"
	case StateAwaitingFramework:
		return "awaiting-framework"
	case StateGenerating:
		return "generating"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ExitSentinels are the inputs that end the session at the name prompt.
var ExitSentinels = []string{"exit", "quit"}

// IsExitSentinel reports whether input is an exit sentinel.
func IsExitSentinel(input string) bool {
	for _, sentinel := range ExitSentinels {
		if strings.EqualFold(input, sentinel) {
			return true
		}
	}
	return false
}

// GenerateFunc runs one generation through the regular pipeline and reports
// a successful outcome to the user.
type GenerateFunc func(frameworkID, name string) error

// SessionConfig configures an interactive Session.
type SessionConfig struct {
	Prompter *Prompter
	Registry *framework.Registry
	Generate GenerateFunc

	// DefaultFramework preselects a framework at the selection prompt,
	// typically the one used last.
	DefaultFramework string
}

// Session is the interactive generation loop. It prompts for a component
// name and a framework, runs the generation pipeline, prints the result,
// and repeats until the exit sentinel or end of input.
type Session struct {
	prompter *Prompter
	registry *framework.Registry
	generate GenerateFunc

	state            State
	defaultFramework string
	name             string
	frameworkID      string
	generated        int
}

// NewSession creates a session over the given prompter and pipeline.
func NewSession(config *SessionConfig) (*Session, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.Prompter == nil {
		return nil, fmt.Errorf("prompter cannot be nil")
	}
	if config.Registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if config.Generate == nil {
		return nil, fmt.Errorf("generate function cannot be nil")
	}

	return &Session{
		prompter:         config.Prompter,
		registry:         config.Registry,
		generate:         config.Generate,
		state:            StateAwaitingName,
		defaultFramework: config.DefaultFramework,
	}, nil
}

// Run drives the session until it terminates. The exit sentinel and end of
// input are both clean terminations; only other prompt failures surface as
// errors.
func (s *Session) Run() error {
	for s.state != StateTerminated {
		var err error

		switch s.state {
		case StateAwaitingName:
			err = s.awaitName()
		case StateAwaitingFramework:
			err = s.awaitFramework()
		case StateGenerating:
			err = s.runGeneration()
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				s.state = StateTerminated
				return nil
			}
			return err
		}
	}

	return nil
}

func (s *Session) awaitName() error {
	name, err := s.prompter.Text(&TextPromptOptions{
		Message:           fmt.Sprintf("Component name (%s to leave)", strings.Join(ExitSentinels, " or ")),
		Required:          true,
		Validation:        `^[^/\\]+$`,
		ValidationMessage: "Component names cannot contain path separators",
	})
	if err != nil {
		return err
	}

	if IsExitSentinel(name) {
		s.state = StateTerminated
		return nil
	}

	s.name = name
	s.state = StateAwaitingFramework
	return nil
}

func (s *Session) awaitFramework() error {
	id, err := s.prompter.Select(&SelectPromptOptions{
		Message: "Framework",
		Options: s.registry.IDs(),
		Default: s.defaultFramework,
	})
	if err != nil {
		return err
	}

	s.frameworkID = id
	s.state = StateGenerating
	return nil
}

// runGeneration invokes the pipeline for the collected name and framework.
// A generation failure is reported and the session keeps going.
func (s *Session) runGeneration() error {
	if err := s.generate(s.frameworkID, s.name); err != nil {
		s.prompter.Errorf("%v", err)
	} else {
		s.generated++
		s.defaultFramework = s.frameworkID
	}

	s.state = StateAwaitingName
	return nil
}

// State returns the session's current state.
func (s *Session) State() State {
	return s.state
}

// Generated returns how many components this session has generated.
func (s *Session) Generated() int {
	return s.generated
}

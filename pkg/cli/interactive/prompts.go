// Package interactive implements the prompts and the generation session of
// the interactive mode.
//
// Prompts are line-oriented: each prompt writes a styled message to the
// configured output and blocks on one line of input from the configured
// reader. That keeps the mode scriptable (input can be piped in) and makes
// end of input a first-class termination signal, which the Session treats
// as a clean exit. pterm styles the prompt messages and validation errors.
//
// # Prompt Types
//
//   - text: free-form input with optional regex validation
//   - select: single selection from a fixed list, by name or number
//   - confirm: yes/no confirmation
//
// A Prompter with DisableInteractive set never blocks and resolves every
// prompt from its default, which is what tests and non-interactive callers
// rely on.
package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// Prompter handles interactive user prompts.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// DisableColor disables colored output
	DisableColor bool
	// DisableInteractive disables interactive prompts (for testing)
	DisableInteractive bool

	errPrinter *pterm.PrefixPrinter
}

// PrompterConfig configures the Prompter.
type PrompterConfig struct {
	Input              io.Reader
	Output             io.Writer
	DisableColor       bool
	DisableInteractive bool
}

// NewPrompter creates a new Prompter with the given configuration.
// If config is nil, uses default configuration (stdin/stdout).
func NewPrompter(config *PrompterConfig) *Prompter {
	if config == nil {
		config = &PrompterConfig{}
	}

	input := config.Input
	if input == nil {
		input = os.Stdin
	}
	output := config.Output
	if output == nil {
		output = os.Stdout
	}

	p := &Prompter{
		in:                 bufio.NewReader(input),
		out:                output,
		DisableColor:       config.DisableColor,
		DisableInteractive: config.DisableInteractive,
		errPrinter:         pterm.Error.WithWriter(output),
	}

	if config.DisableColor {
		pterm.DisableColor()
	}

	return p
}

// Errorf prints an error-styled message to the prompter's output.
func (p *Prompter) Errorf(format string, args ...interface{}) {
	p.errPrinter.Printfln(format, args...)
}

// readLine blocks for one line of input. A final line without a trailing
// newline is still returned; end of input surfaces as io.EOF.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// TextPromptOptions configures a text prompt.
type TextPromptOptions struct {
	Message           string
	Default           string
	Validation        string // Regex pattern
	ValidationMessage string
	Required          bool
}

// Text prompts for text input with optional validation.
func (p *Prompter) Text(opts *TextPromptOptions) (string, error) {
	if opts == nil {
		return "", fmt.Errorf("options cannot be nil")
	}

	if p.DisableInteractive {
		if opts.Default != "" {
			return opts.Default, nil
		}
		return "", fmt.Errorf("interactive prompts disabled")
	}

	var validationRegex *regexp.Regexp
	if opts.Validation != "" {
		var err error
		validationRegex, err = regexp.Compile(opts.Validation)
		if err != nil {
			return "", fmt.Errorf("invalid validation pattern: %w", err)
		}
	}

	for {
		message := opts.Message
		if opts.Default != "" {
			message = fmt.Sprintf("%s (default: %s)", message, opts.Default)
		}
		fmt.Fprintf(p.out, "%s ", pterm.FgLightCyan.Sprintf("%s:", message))

		result, err := p.readLine()
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		if result == "" && opts.Default != "" {
			result = opts.Default
		}

		if result == "" && opts.Required {
			p.errPrinter.Println("This field is required")
			continue
		}

		if result == "" && !opts.Required {
			return result, nil
		}

		if validationRegex != nil && !validationRegex.MatchString(result) {
			errMsg := opts.ValidationMessage
			if errMsg == "" {
				errMsg = fmt.Sprintf("Input does not match required pattern: %s", opts.Validation)
			}
			p.errPrinter.Println(errMsg)
			continue
		}

		return result, nil
	}
}

// SelectPromptOptions configures a select prompt.
type SelectPromptOptions struct {
	Message string
	Options []string
	Default string
}

// Select prompts for selection from a list of options. Input may be the
// option itself or its 1-based number; an empty line picks the default.
func (p *Prompter) Select(opts *SelectPromptOptions) (string, error) {
	if opts == nil {
		return "", fmt.Errorf("options cannot be nil")
	}

	if len(opts.Options) == 0 {
		return "", fmt.Errorf("options list cannot be empty")
	}

	if p.DisableInteractive {
		if opts.Default != "" {
			return opts.Default, nil
		}
		// Return first option as fallback
		return opts.Options[0], nil
	}

	for {
		fmt.Fprintln(p.out, pterm.FgLightCyan.Sprintf("%s:", opts.Message))
		for i, opt := range opts.Options {
			if opt != "" && opt == opts.Default {
				fmt.Fprintf(p.out, "  %d) %s (default)\n", i+1, opt)
			} else {
				fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
			}
		}
		fmt.Fprintf(p.out, "%s ", pterm.FgLightCyan.Sprint(">"))

		result, err := p.readLine()
		if err != nil {
			return "", fmt.Errorf("failed to read selection: %w", err)
		}

		if result == "" && opts.Default != "" {
			return opts.Default, nil
		}

		if n, convErr := strconv.Atoi(result); convErr == nil {
			if n >= 1 && n <= len(opts.Options) {
				return opts.Options[n-1], nil
			}
			p.errPrinter.Printfln("Choose a number between 1 and %d", len(opts.Options))
			continue
		}

		for _, opt := range opts.Options {
			if opt == result {
				return opt, nil
			}
		}

		p.errPrinter.Printfln("%q is not one of the listed options", result)
	}
}

// ConfirmPromptOptions configures a confirmation prompt.
type ConfirmPromptOptions struct {
	Message string
	Default bool
}

// Confirm prompts for yes/no confirmation. An empty line picks the default.
func (p *Prompter) Confirm(opts *ConfirmPromptOptions) (bool, error) {
	if opts == nil {
		return false, fmt.Errorf("options cannot be nil")
	}

	if p.DisableInteractive {
		return opts.Default, nil
	}

	hint := "y/N"
	if opts.Default {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(p.out, "%s ", pterm.FgLightCyan.Sprintf("%s [%s]:", opts.Message, hint))

		result, err := p.readLine()
		if err != nil {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}

		switch strings.ToLower(result) {
		case "":
			return opts.Default, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		p.errPrinter.Println("Please answer yes or no")
	}
}

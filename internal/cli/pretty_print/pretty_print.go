package pretty_print

import (
	"fmt"
	"io"
	"os"

	humane "github.com/sierrasoftworks/humane-errors-go"
)

// PrettyPrint prints a message with the default options.
func PrettyPrint(lvl PrintLevel, msg string, context ...string) (int, humane.Error) {
	return PrettyPrintWithOptions(lvl, msg, context)
}

// PrettyPrintWithOptions prints to stderr for errors and warnings and to stdout otherwise.
func PrettyPrintWithOptions(lvl PrintLevel, msg string, context []string, opts ...Option) (int, humane.Error) {
	var output io.Writer = os.Stdout
	if lvl >= WarnLvl {
		output = os.Stderr
	}

	n, err := fmt.Fprint(output, FormatWithOptions(lvl, msg, context, opts...))
	if err != nil {
		return n, humane.Wrap(err, "failed to write formatted output", "check that stdout/stderr is writable")
	}
	return n, nil
}

func PrintOk(msg string, context ...string) {
	_, _ = PrettyPrint(OkLvl, msg, context...)
}

func PrintInfo(msg string, context ...string) {
	_, _ = PrettyPrint(InfoLvl, msg, context...)
}

func PrintWarn(msg string, context ...string) {
	_, _ = PrettyPrint(WarnLvl, msg, context...)
}

// PrintErrorMessage prints a plain error message to stderr.
func PrintErrorMessage(msg string, context ...string) {
	_, _ = PrettyPrint(ErrLvl, msg, context...)
}

// PrintError prints err with its advice and root causes to stderr.
func PrintError(err error, context ...string) {
	_, _ = PrettyPrintWithOptions(ErrLvl, "", context, WithError(err))
}

// PrintInfoIcon prints an informational message with a custom icon.
func PrintInfoIcon(icon, msg string, context ...string) {
	_, _ = PrettyPrintWithOptions(InfoLvl, msg, context, WithIcon(InfoLvl, icon))
}

package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chmouel/lazyscm/internal/commands"
	"github.com/chmouel/lazyscm/internal/completion"
	urfavecli "github.com/urfave/cli/v3"
)

// completionArgs returns the word before the cursor and the partial word
// being completed, as urfave/cli appends --generate-shell-completion.
func completionArgs(args []string) (prev, current string) {
	words := make([]string, 0, len(args))
	for _, arg := range args {
		if arg != "--generate-shell-completion" {
			words = append(words, arg)
		}
	}
	if len(words) > 0 {
		current = words[len(words)-1]
	}
	if len(words) > 1 {
		prev = words[len(words)-2]
	}
	return prev, current
}

// completeGlobal completes flag values, then flags and subcommands.
func completeGlobal(_ context.Context, cmd *urfavecli.Command) {
	writeCompletions(cmd.Root().Writer, cmd, os.Args)
}

func writeCompletions(w io.Writer, cmd *urfavecli.Command, args []string) {
	prev, current := completionArgs(args)
	if flag, ok := completion.LookupFlag(prev); ok {
		if flag.Values == nil {
			return
		}
		values := flag.Values()
		if flag.Name == "config" {
			values = completion.SuggestConfig(current)
		}
		for _, v := range values {
			fmt.Fprintln(w, v)
		}
		return
	}

	if !strings.HasPrefix(current, "-") {
		for _, sub := range cmd.Commands {
			if !sub.Hidden {
				fmt.Fprintf(w, "%s:%s\n", sub.Name, sub.Usage)
			}
		}
	}
	writeFlags(w, cmd, current)
}

// writeFlags prints the visible flags of cmd matching prefix.
func writeFlags(w io.Writer, cmd *urfavecli.Command, prefix string) {
	for _, flag := range cmd.VisibleFlags() {
		name := flag.Names()[0]
		dashes := "--"
		if len(name) == 1 {
			dashes = "-"
		}
		full := dashes + name
		if strings.HasPrefix(prefix, "-") && !strings.HasPrefix(full, prefix) {
			continue
		}
		usage := ""
		if df, ok := flag.(urfavecli.DocGenerationFlag); ok {
			usage = df.GetUsage()
		}
		if usage != "" {
			fmt.Fprintf(w, "%s:%s\n", full, usage)
		} else {
			fmt.Fprintln(w, full)
		}
	}
}

// completeActionIDs lists action ids for `run`.
func completeActionIDs(_ context.Context, cmd *urfavecli.Command) {
	if cmd.Args().Len() > 0 {
		return
	}
	writeActionIDs(cmd.Root().Writer)
}

func writeActionIDs(w io.Writer) {
	registry := commands.New(nil, nil, nil, commands.Options{}).Registry()
	for _, action := range registry.Actions() {
		fmt.Fprintf(w, "%s:%s\n", action.ID, action.Description)
	}
}

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/lazylist"
	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/pipeline"
)

// Negative numbers must follow "--" so they are not read as flags:
//
//	lazyseq get -- -1

func parseInt(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, apperrors.InvalidArgument(name, fmt.Sprintf("%q is not an integer", arg))
	}
	return n, nil
}

// parseBound parses a slice bound; "_" leaves it open.
func parseBound(name, arg string) (int, bool, error) {
	if arg == "_" {
		return 0, false, nil
	}
	n, err := parseInt(name, arg)
	return n, err == nil, err
}

// parseSpan builds a Span from start, stop and an optional step.
func parseSpan(args []string) (lazylist.Span, error) {
	start, hasStart, err := parseBound("start", args[0])
	if err != nil {
		return lazylist.Span{}, err
	}
	stop, hasStop, err := parseBound("stop", args[1])
	if err != nil {
		return lazylist.Span{}, err
	}

	var s lazylist.Span
	switch {
	case hasStart && hasStop:
		s = lazylist.Between(start, stop)
	case hasStart:
		s = lazylist.StartAt(start)
	case hasStop:
		s = lazylist.Until(stop)
	default:
		s = lazylist.Whole()
	}

	if len(args) == 3 {
		step, err := parseInt("step", args[2])
		if err != nil {
			return lazylist.Span{}, err
		}
		s = s.Step(step)
	}
	return s, nil
}

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <index>",
		Short: "Print the element at index (negative counts from the end)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseInt("index", args[0])
			if err != nil {
				return err
			}
			v, err := a.list.Get(cmd.Context(), i)
			if err != nil {
				return err
			}
			return a.printer.Value(v)
		},
	}
}

func newSliceCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "slice <start> <stop> [step]",
		Short: "Print the elements of a slice; use _ for an open bound",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := parseSpan(args)
			if err != nil {
				return err
			}
			vs, err := a.list.Slice(cmd.Context(), s)
			if err != nil {
				return err
			}
			return a.printer.Values(vs)
		},
	}
}

func newLenCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "len",
		Short: "Print the number of elements (reads every source)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := a.list.Len(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Value(n)
		},
	}
}

func newHeadCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "head <n>",
		Short: "Print the first n elements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInt("n", args[0])
			if err != nil {
				return err
			}
			if n < 0 {
				return apperrors.InvalidArgument("n", "must not be negative")
			}
			it := pipeline.Take(a.list.Iter(), n)
			defer it.Close()
			vs, err := pipeline.Collect(cmd.Context(), it)
			if err != nil {
				return err
			}
			return a.printer.Values(vs)
		},
	}
}

func newGrepCommand(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "grep <substring>",
		Short: "Print the elements containing substring, stopping after --limit matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return apperrors.InvalidArgument("limit", "must not be negative")
			}
			ctx := cmd.Context()
			scanned := 0
			it := pipeline.Filter(
				pipeline.Tap(a.list.Iter(), func(context.Context, string) error {
					scanned++
					return nil
				}),
				func(v string) bool { return strings.Contains(v, args[0]) },
			)
			if limit > 0 {
				it = pipeline.Take(it, limit)
			}
			defer it.Close()

			var err error
			if a.printer.format == "json" {
				var vs []string
				if vs, err = pipeline.Collect(ctx, it); err == nil {
					err = a.printer.Values(vs)
				}
			} else {
				err = pipeline.ForEach(ctx, it, func(_ context.Context, v string) error {
					return a.printer.Value(v)
				})
			}
			a.log.Debug("grep finished", logger.Fields("scanned", scanned, "materialized", a.list.Materialized()))
			return err
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "stop after this many matches (0 prints all)")
	return cmd
}

func newReverseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reverse",
		Short: "Reverse the list in place and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.list.Reverse()
			vs, err := a.list.Slice(cmd.Context(), lazylist.Whole())
			if err != nil {
				return err
			}
			return a.printer.Values(vs)
		},
	}
}

func newContainsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contains <value>",
		Short: "Report whether value occurs, reading only up to its first occurrence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.list.Contains(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer.Value(ok)
		},
	}
}

func newDebugCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "debug [command [args...]]",
		Short: "Print the list's internal state, before and after running a command",
		Long: `debug prints the strict prefix, the active source and the pending
sources. Given another command, it prints the state, runs the command and
prints the state again, showing how much the command materialized:

  lazyseq debug get 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.printer.Text(a.list.Debug()); err != nil {
				return err
			}
			if len(args) == 0 {
				return nil
			}

			sub := findSubcommand(cmd.Root(), args[0])
			if sub == nil || sub == cmd || sub.RunE == nil {
				return apperrors.InvalidArgument("command", fmt.Sprintf("unknown command %q", args[0]))
			}
			rest := args[1:]
			if sub.Args != nil {
				if err := sub.Args(sub, rest); err != nil {
					return err
				}
			}
			sub.SetContext(cmd.Context())
			if err := sub.RunE(sub, rest); err != nil {
				return err
			}
			return a.printer.Text(a.list.Debug())
		},
	}
}

func findSubcommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return c
		}
	}
	return nil
}

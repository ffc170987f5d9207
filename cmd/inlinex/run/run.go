package run

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/flarebyte/inline-transforms/internal/builtin"
	"github.com/flarebyte/inline-transforms/internal/config"
	"github.com/flarebyte/inline-transforms/internal/content"
	"github.com/flarebyte/inline-transforms/internal/logging"
	"github.com/flarebyte/inline-transforms/internal/pipespec"
	"github.com/flarebyte/inline-transforms/internal/transform"
	"github.com/spf13/cobra"
)

type options struct {
	pipe      string
	in        string
	source    string
	offset    int
	directive string
	cfgPath   string
	text      bool
}

// usageError marks failures caused by bad flags or pipe syntax.
type usageError struct{ error }

func (usageError) ExitCode() int { return 2 }

func (e usageError) Unwrap() error { return e.error }

// NewCmd creates the `inlinex run` command.
func NewCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a transform pipeline and print the result",
		Long: `Run reads content, applies the transforms named in --pipe and prints the
result as it would be spliced into the document.

The pipe is "target|name:arg1,arg2|name2". Without --in, content comes from
the target: file and raw targets read the named file as bytes, text targets
use the argument itself.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd.Context(), o, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.pipe, "pipe", "p", "", `Directive pipe, e.g. "file:a.css|cssmin|dataurl"`)
	f.StringVarP(&o.in, "in", "i", "", `Read content from this file ("-" for stdin) instead of the target`)
	f.StringVar(&o.source, "source", "", "Source document holding the directive")
	f.IntVar(&o.offset, "offset", 0, "Byte offset of the directive in the source document")
	f.StringVar(&o.directive, "directive", string(transform.DirectiveInline), "Directive type: $inline, $inline.start or $inline.end")
	f.StringVarP(&o.cfgPath, "config", "c", "", "Path to config file (.cue)")
	f.BoolVar(&o.text, "text", false, "Treat loaded content as UTF-8 text instead of bytes")
	return cmd
}

func execute(ctx context.Context, o options, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if o.pipe == "" {
		return usageError{fmt.Errorf("missing required flag: --pipe")}
	}
	target, reqs, err := pipespec.Parse(o.pipe)
	if err != nil {
		return usageError{err}
	}
	dt, err := directiveType(o.directive)
	if err != nil {
		return usageError{err}
	}

	cfg := config.Default()
	if o.cfgPath != "" {
		if cfg, err = config.Load(o.cfgPath); err != nil {
			return err
		}
	}
	logging.Configure(cfg.Logging())
	log := logging.L()
	ctx = logging.WithLogger(ctx, log)

	tc := &transform.Context{
		Directive: transform.Directive{Type: dt, Start: o.offset, End: o.offset},
		Target:    target,
	}
	if o.source != "" {
		b, err := os.ReadFile(o.source)
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
		tc.SourceContent = string(b)
	}

	in, err := load(o, target, stdin)
	if err != nil {
		return err
	}
	log.Debug("pipeline start", "target", target.Name, "stages", len(reqs), "content", in.Kind().String())

	reg := builtin.NewRegistry(cfg.Options())
	out, err := reg.Transform(ctx, tc, in, reqs)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, out.String())
	return err
}

func directiveType(s string) (transform.DirectiveType, error) {
	switch dt := transform.DirectiveType(s); dt {
	case transform.DirectiveInline, transform.DirectiveStart, transform.DirectiveEnd:
		return dt, nil
	default:
		return "", fmt.Errorf("unknown directive type: %s", s)
	}
}

// load reads the initial content for the pipeline.
func load(o options, target *transform.Target, stdin io.Reader) (content.Value, error) {
	var (
		b   []byte
		err error
	)
	switch {
	case o.in == "-":
		b, err = io.ReadAll(stdin)
	case o.in != "":
		b, err = os.ReadFile(o.in)
	case target.Name == "text":
		return content.Text(target.Arg(0)), nil
	case target.Name == "file" || target.Name == "raw":
		b, err = os.ReadFile(target.Arg(0))
	default:
		return content.Value{}, usageError{fmt.Errorf("cannot load target kind %q; use --in", target.Name)}
	}
	if err != nil {
		return content.Value{}, fmt.Errorf("read content: %w", err)
	}
	if o.text {
		return content.Text(string(b)), nil
	}
	return content.Bytes(b), nil
}

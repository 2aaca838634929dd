package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"studyguide/internal/app"
	"studyguide/internal/config"
	"studyguide/internal/guide"
	"studyguide/internal/logger"
	"studyguide/internal/render"
	"studyguide/internal/util"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "studyguide",
		Short:         "Turn academic text into structured study guides",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd())
	return root
}

type generateOpts struct {
	text     string
	file     string
	mode     string
	out      string
	markdown string
}

func newGenerateCmd() *cobra.Command {
	var o generateOpts
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a study guide from text, a .txt file or an image",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), o)
		},
	}
	cmd.Flags().StringVar(&o.text, "text", "", "academic content to transform ('-' reads stdin)")
	cmd.Flags().StringVar(&o.file, "file", "", "path to a text or image file")
	cmd.Flags().StringVar(&o.mode, "mode", string(guide.ModeGuide), "guide or infographic")
	cmd.Flags().StringVar(&o.out, "out", "", "write the study guide JSON to this path")
	cmd.Flags().StringVar(&o.markdown, "markdown", "", "write a Markdown rendering to this path")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	return cmd
}

func runGenerate(ctx context.Context, stdout io.Writer, o generateOpts) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_ = godotenv.Load(".env")
	cfg := config.Load()
	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		return err
	}
	defer lg.Sync()

	in, err := readInput(o)
	if err != nil {
		return err
	}
	a, err := app.Build(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.Generator.Generate(ctx, in)
	if err != nil {
		return err
	}

	if o.out != "" {
		if err := util.WriteJSONAtomic(o.out, res.Guide); err != nil {
			return err
		}
	}
	if o.markdown != "" {
		if err := util.WriteTextAtomic(o.markdown, render.Markdown(res)); err != nil {
			return err
		}
	}
	if o.out == "" && o.markdown == "" {
		b, err := guide.MarshalIndent(res.Guide)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(b))
		return err
	}
	if res.ImageURL != "" {
		fmt.Fprintln(stdout, "Infographic:", res.ImageURL)
	}
	return nil
}

func readInput(o generateOpts) (guide.Input, error) {
	in := guide.Input{Mode: guide.Mode(strings.ToLower(strings.TrimSpace(o.mode)))}
	switch {
	case o.text == "-":
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return in, fmt.Errorf("read stdin: %w", err)
		}
		in.Text = string(b)
	case o.text != "":
		in.Text = o.text
	case o.file != "":
		b, err := os.ReadFile(o.file)
		if err != nil {
			return in, fmt.Errorf("read %s: %w", o.file, err)
		}
		ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(o.file)))
		if ct == "" {
			ct = http.DetectContentType(b)
		}
		in.File = &guide.File{Name: filepath.Base(o.file), ContentType: ct, Data: b}
	default:
		return in, errors.New("one of --text or --file is required")
	}
	return in, nil
}

// Copyright 2026 The Mellium Contributors.
// Use of this source code is governed by the BSD 2-clause
// license that can be found in the LICENSE file.

// The wbxml command converts ActiveSync documents between WBXML and XML and
// shows what their redacted diagnostic copies look like.
//
// Usage:
//
//	wbxml decode [flags] [file]
//	wbxml encode [flags] [file]
//	wbxml policy [flags]
//
// Input is read from file or from standard input if no file is given.
// Run a subcommand with --help for its flags.
package main // import "mellium.im/wbxml/cmd/wbxml"

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"

	"github.com/spf13/pflag"

	"mellium.im/wbxml"
	"mellium.im/wbxml/activesync"
	"mellium.im/wbxml/capture"
	"mellium.im/wbxml/redact"
)

const usage = `usage: wbxml <command> [flags] [file]

commands:
  decode   convert WBXML to XML
  encode   convert XML to WBXML
  policy   print the redaction policies as YAML
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "wbxml: %v\n", err)
		}
		os.Exit(1)
	}
}

type command struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	policyFile string
	redact     bool
	binary     bool
	hexOut     bool
	peelDir    string
	capture    string
	verbose    bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("no command given")
	}
	c := &command{stdin: stdin, stdout: stdout, stderr: stderr}

	flags := pflag.NewFlagSet("wbxml "+args[0], pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&c.policyFile, "policy", "", "load redaction policies from a YAML file instead of the defaults")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log debug messages")

	var cmd func(ctx context.Context, args []string) error
	switch args[0] {
	case "decode":
		flags.BoolVar(&c.redact, "redact", false, "print the redacted copy instead of the document")
		flags.BoolVar(&c.binary, "binary", false, "build the redacted copy as WBXML (implies --redact)")
		flags.BoolVar(&c.hexOut, "hex", false, "write WBXML output as hex")
		flags.StringVar(&c.peelDir, "peel-dir", "", "move large content into files in this directory")
		flags.StringVar(&c.capture, "capture", "", "append a capture record of the redacted copy to this file")
		cmd = c.decode
	case "encode":
		flags.BoolVar(&c.hexOut, "hex", false, "write WBXML output as hex")
		flags.StringVar(&c.capture, "capture", "", "append a capture record of the redacted copy to this file")
		cmd = c.encode
	case "policy":
		cmd = c.policy
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return cmd(ctx, flags.Args())
}

func (c *command) input(args []string) ([]byte, error) {
	switch len(args) {
	case 0:
		return io.ReadAll(c.stdin)
	case 1:
		return os.ReadFile(args[0])
	}
	return nil, fmt.Errorf("unexpected argument %q", args[1])
}

func (c *command) policies() (redact.Policies, error) {
	if c.policyFile == "" {
		return activesync.Policies, nil
	}
	f, err := os.Open(c.policyFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return redact.LoadYAML(f)
}

func (c *command) options() ([]wbxml.Option, error) {
	opts := []wbxml.Option{wbxml.Logger(c.logger)}
	if c.redact || c.binary || c.capture != "" {
		p, err := c.policies()
		if err != nil {
			return nil, err
		}
		opts = append(opts, wbxml.Redact(p))
	}
	if c.binary {
		opts = append(opts, wbxml.RedactBinary())
	}
	if c.peelDir != "" {
		opts = append(opts, wbxml.PeelToDir(c.peelDir))
	}
	return opts, nil
}

func (c *command) decode(ctx context.Context, args []string) error {
	in, err := c.input(args)
	if err != nil {
		return err
	}
	opts, err := c.options()
	if err != nil {
		return err
	}
	root, red, err := wbxml.Decode(ctx, in, activesync.Pages, opts...)
	if err != nil {
		return err
	}
	if err = c.record(capture.Received, red); err != nil {
		return err
	}
	switch {
	case c.binary:
		if red == nil {
			return errors.New("no redaction policy applies to the document")
		}
		return c.writeWBXML(red.WBXML)
	case c.redact:
		if red == nil {
			return errors.New("no redaction policy applies to the document")
		}
		return c.writeXML(red.Tree)
	}
	return c.writeXML(root)
}

func (c *command) encode(_ context.Context, args []string) error {
	in, err := c.input(args)
	if err != nil {
		return err
	}
	root, err := wbxml.ReadTree(xml.NewDecoder(bytes.NewReader(in)))
	if err != nil {
		return err
	}
	opts, err := c.options()
	if err != nil {
		return err
	}
	out, red, err := wbxml.Encode(root, activesync.Pages, opts...)
	if err != nil {
		return err
	}
	if err = c.record(capture.Sent, red); err != nil {
		return err
	}
	return c.writeWBXML(out)
}

func (c *command) policy(_ context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q", args[0])
	}
	p, err := c.policies()
	if err != nil {
		return err
	}
	spaces := make([]string, 0, len(p))
	for space := range p {
		spaces = append(spaces, space)
	}
	sort.Strings(spaces)
	trees := make([]*redact.Tree, 0, len(spaces))
	for _, space := range spaces {
		trees = append(trees, p[space])
	}
	return redact.WriteYAML(c.stdout, trees...)
}

func (c *command) record(dir capture.Direction, red *wbxml.Redacted) error {
	if c.capture == "" {
		return nil
	}
	if red == nil {
		c.logger.Warn("no redaction policy applies to the document, nothing captured")
		return nil
	}
	rec, err := capture.New(dir, red)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(c.capture, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	err = capture.NewWriter(f).Write(rec)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func (c *command) writeXML(root *wbxml.Element) error {
	e := xml.NewEncoder(c.stdout)
	e.Indent("", "  ")
	if _, err := root.WriteXML(e); err != nil {
		return err
	}
	if err := e.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(c.stdout)
	return err
}

func (c *command) writeWBXML(b []byte) error {
	if c.hexOut {
		_, err := fmt.Fprintln(c.stdout, hex.EncodeToString(b))
		return err
	}
	_, err := c.stdout.Write(b)
	return err
}

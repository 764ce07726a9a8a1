// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command filtercodec decodes and encodes event-search filter URLs offline.
//
// Usage:
//
//	filtercodec decode [--channel NAME] <url-or-query>
//	filtercodec encode [--channel NAME] <json-file|->
//
// decode prints the resolved filter state as JSON followed by a short
// summary. encode reads a (possibly partial) filter state, fills the missing
// fields with their decode defaults and prints the canonical query string.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexflint/go-arg"

	"github.com/taibuivan/agora/internal/event/search"
	"github.com/taibuivan/agora/internal/platform/apperr"
	"github.com/taibuivan/agora/internal/platform/validate"
)

type decodeCommand struct {
	Channel string `arg:"-c,--channel" help:"channel scope; disables the location filter"`
	Input   string `arg:"positional,required" help:"event list URL or bare query string"`
	Quiet   bool   `arg:"-q,--quiet" help:"print the JSON only"`
}

type encodeCommand struct {
	Channel string `arg:"-c,--channel" help:"channel scope used for the defaults"`
	File    string `arg:"positional,required" help:"JSON file with filter values, or - for stdin"`
}

type cliArgs struct {
	Decode   *decodeCommand `arg:"subcommand:decode" help:"decode a filter URL"`
	Encode   *encodeCommand `arg:"subcommand:encode" help:"encode filter values to a query string"`
	Timezone string         `arg:"--timezone,env:FILTER_TIMEZONE" default:"Local" help:"time zone of the default date range"`
}

func (cliArgs) Description() string {
	return "Decode and encode event-search filter URLs.\n"
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, time.Now))
}

// run executes one command and returns the process exit code.
func run(argv []string, stdin io.Reader, stdout, stderr io.Writer, now func() time.Time) int {
	var args cliArgs
	parser, err := arg.NewParser(arg.Config{Program: "filtercodec"}, &args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	switch err := parser.Parse(argv); {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(stdout)
		return 0
	case err != nil:
		parser.WriteUsage(stderr)
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	location, err := time.LoadLocation(args.Timezone)
	if err != nil {
		fmt.Fprintln(stderr, "error: invalid timezone:", err)
		return 2
	}
	codec := search.NewCodec(search.WithClock(now), search.WithLocation(location))

	switch {
	case args.Decode != nil:
		err = runDecode(codec, *args.Decode, stdout, now())
	case args.Encode != nil:
		err = runEncode(codec, *args.Encode, stdin, stdout)
	default:
		parser.WriteUsage(stderr)
		fmt.Fprintln(stderr, "error: a command is required")
		return 2
	}

	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		if appError := apperr.As(err); appError != nil {
			for _, detail := range appError.Details {
				fmt.Fprintf(stderr, "  %s: %s\n", detail.Field, detail.Message)
			}
		}
		return 1
	}
	return 0
}

func runDecode(codec *search.Codec, command decodeCommand, stdout io.Writer, now time.Time) error {
	values, err := codec.ParseURL(command.Input, command.Channel)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(values); err != nil {
		return err
	}

	if !command.Quiet {
		fmt.Fprintln(stdout)
		for _, line := range summarize(values, now) {
			fmt.Fprintln(stdout, line)
		}
	}
	return nil
}

func runEncode(codec *search.Codec, command encodeCommand, stdin io.Reader, stdout io.Writer) error {
	input := stdin
	if command.File != "-" {
		file, err := os.Open(command.File)
		if err != nil {
			return err
		}
		defer file.Close()
		input = file
	}

	values := codec.Defaults(command.Channel)
	if err := json.NewDecoder(input).Decode(&values); err != nil {
		return fmt.Errorf("read filter values: %w", err)
	}
	if err := validate.Struct(values); err != nil {
		return err
	}

	_, err := fmt.Fprintln(stdout, search.EncodeQuery(values).Encode())
	return err
}

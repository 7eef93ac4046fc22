// Copyright 2025 Alan Matykiewicz
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alan-mat/chatbridge/internal/chat"
	"github.com/alan-mat/chatbridge/internal/config"
	"github.com/alan-mat/chatbridge/internal/http"
	"github.com/alan-mat/chatbridge/internal/llm"
	"github.com/alan-mat/chatbridge/internal/provider"
	"github.com/alan-mat/chatbridge/server"
	"github.com/alexflint/go-arg"
	"github.com/fatih/color"
)

const (
	ProgramName   = "chatbridge"
	Version       = "v0.1.0"
	RepositoryUrl = "github.com/alan-mat/chatbridge"
)

type serveCmd struct {
	Host string `arg:"--host,env:CHATBRIDGE_HOST" help:"listen host address"`
	Port int    `arg:"--port,-p,env:CHATBRIDGE_PORT" help:"listen port"`
}

type askCmd struct {
	Prompt []string `arg:"positional,required" help:"prompt text"`
}

type args struct {
	Serve *serveCmd `arg:"subcommand:serve" help:"start the chat page server"`
	Ask   *askCmd   `arg:"subcommand:ask" help:"send a single prompt and print the response"`

	Config  string `arg:"--config,-c,env:CHATBRIDGE_CONFIG" help:"path to a YAML config file"`
	EnvFile string `arg:"--env-file,env:CHATBRIDGE_ENV_FILE" default:".env" help:"env file holding the api key"`
	Model   string `arg:"--model,-m,env:CHATBRIDGE_MODEL" help:"model identifier, overrides the config file"`
}

func (args) Version() string {
	return fmt.Sprintf("%s %s", ProgramName, Version)
}

func (args) Epilogue() string {
	return fmt.Sprintf("For more information visit %s", RepositoryUrl)
}

func main() {
	var args args

	p, err := arg.NewParser(arg.Config{Program: ProgramName}, &args)
	if err != nil {
		log.Fatalf("there was an error in the definition of the Go struct: %v", err)
	}
	p.MustParse(os.Args[1:])

	if p.Subcommand() == nil {
		p.WriteUsage(os.Stdout)
		os.Exit(0)
	}

	conf, err := loadConfig(args)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}
	slog.SetDefault(conf.NewLogger(os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	completer, err := newCompleter(ctx, conf)
	if err != nil && !errors.Is(err, llm.ErrMissingCredential) {
		color.New(color.FgRed).Fprintf(os.Stderr, "failed to create provider: %v\n", err)
		os.Exit(1)
	}

	session := chat.NewSession(sessionConfig(conf), completer)

	switch cmd := p.Subcommand().(type) {
	case *serveCmd:
		err = startServer(ctx, conf, session)
	case *askCmd:
		err = ask(ctx, os.Stdout, os.Stderr, session, strings.Join(cmd.Prompt, " "))
	default:
		p.FailSubcommand("unrecognized command", p.SubcommandNames()...)
	}

	if err != nil {
		os.Exit(1)
	}
}

func loadConfig(args args) (*config.Config, error) {
	if err := config.LoadEnvFile(args.EnvFile); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	conf, err := config.ReadConfig(args.Config)
	if err != nil {
		return nil, err
	}
	conf.SetModel(args.Model)
	if args.Serve != nil {
		if args.Serve.Host != "" {
			conf.Server.ListenHost = args.Serve.Host
		}
		if args.Serve.Port != 0 {
			conf.Server.ListenPort = args.Serve.Port
		}
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func newCompleter(ctx context.Context, conf *config.Config) (llm.Completer, error) {
	key, ok := config.LoadAPIKey(conf.APIKeyEnv)
	if !ok {
		slog.Warn("no api key available, requests are disabled", "env", conf.APIKeyEnv)
		return nil, llm.ErrMissingCredential
	}

	timeout, _ := conf.Timeout()
	client := http.NewClient(
		http.WithTimeout(timeout),
		http.WithHeader("User-Agent", fmt.Sprintf("%s/%s", ProgramName, Version)),
	)

	return provider.New(ctx, provider.Config{
		Type:       conf.Provider,
		APIKey:     key,
		BaseURL:    conf.BaseURL,
		HTTPClient: client,
	})
}

func sessionConfig(conf *config.Config) chat.SessionConfig {
	return chat.SessionConfig{
		Title:          conf.Title,
		Model:          conf.Model,
		APIKeyEnv:      conf.APIKeyEnv,
		HistoryEnabled: conf.HistoryEnabled(),
	}
}

func startServer(ctx context.Context, conf *config.Config, session *chat.Session) error {
	srv := server.New(server.ServerConfig{
		ListenHost: conf.Server.ListenHost,
		ListenPort: conf.Server.ListenPort,
	}, session)
	return srv.Serve(ctx)
}

// ask submits a single prompt, writing the response to stdout or the
// notice to stderr. The returned error is the notice condition.
func ask(ctx context.Context, stdout, stderr io.Writer, session *chat.Session, prompt string) error {
	view, _ := session.Submit(ctx, nil, prompt)
	if n := view.Notice; n != nil {
		c := color.New(color.FgRed)
		if n.Level == chat.NoticeWarning {
			c = color.New(color.FgYellow)
		}
		c.Fprintln(stderr, n.Text)
		return n.Err
	}

	fmt.Fprintln(stdout, view.Response)
	return nil
}

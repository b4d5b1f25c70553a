package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/jokes/internal/config"
	"github.com/effective-security/jokes/pkg/jokeapi"
	"github.com/effective-security/jokes/server"
	"github.com/effective-security/jokes/tools"
	"github.com/effective-security/jokes/utils"
	"github.com/effective-security/xlog"
	mcp "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport/stdio"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/jokes/cmd", "jokes")

// Version is set at build time
var Version = "dev"

type cli struct {
	Cfg       string           `help:"Path to the YAML or JSON configuration file" type:"existingfile" optional:""`
	Debug     bool             `help:"Enable debug logging"`
	LogJSON   bool             `help:"Write logs in JSON format" name:"log-json"`
	ListTools bool             `help:"Print the tools with their parameters and exit" name:"list-tools"`
	Format    string           `help:"Format of the tools listing" enum:"json,yaml" default:"json"`
	Version   kong.VersionFlag `help:"Print version and exit"`

	stdout io.Writer `kong:"-"`
}

func (c *cli) out() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}

func main() {
	var c cli
	_ = kong.Parse(&c,
		kong.Name("jokes"),
		kong.Description("MCP server with the tools telling jokes."),
		kong.Vars{"version": Version},
	)

	if err := run(&c); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
}

func run(c *cli) error {
	// stdout is the MCP stream
	if c.LogJSON {
		xlog.SetFormatter(xlog.NewJSONFormatter(os.Stderr))
	} else {
		xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
	}
	if c.Debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.INFO)
	}

	cfg, err := config.LoadConfig(c.Cfg)
	if err != nil {
		return err
	}
	timeout, err := cfg.HTTPTimeout()
	if err != nil {
		return err
	}

	client := jokeapi.New(cfg.BaseURL).WithHTTPClient(&http.Client{Timeout: timeout})
	reg, err := server.NewDefault(client)
	if err != nil {
		return err
	}

	if c.ListTools {
		list := make([]tools.ITool, 0, len(reg.Names()))
		for _, tool := range reg.Tools() {
			list = append(list, tool)
		}
		return printTools(c.out(), c.Format, tools.Describe(list...))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.KV(xlog.INFO,
		"status", "starting",
		"version", Version,
		"base_url", cfg.BaseURL,
		"timeout", timeout.String(),
	)

	return server.Serve(ctx,
		stdio.NewStdioServerTransport(),
		reg,
		mcp.WithName(cfg.ServerName),
		mcp.WithVersion(Version),
	)
}

func printTools(w io.Writer, format string, infos []tools.Info) error {
	if format == "yaml" {
		y, err := utils.ToYAML(infos)
		if err != nil {
			return errors.Wrap(err, "failed to marshal tools")
		}
		_, err = io.WriteString(w, y)
		return err
	}
	_, err := fmt.Fprintln(w, utils.ToJSONIndent(infos))
	return err
}

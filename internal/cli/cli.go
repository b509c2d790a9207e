package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vk/flowgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments and environment into an app.Config.
// It returns the config, a boolean indicating the program should exit
// cleanly (help shown), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("flowgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
flowgrid - a DAG workflow execution engine.

Usage:
  flowgrid [options] [WORKFLOW_PATH]

Arguments:
  WORKFLOW_PATH
    Path to a workflow definition (.hcl file) to execute once.

Options:
`)
		flagSet.PrintDefaults()
	}

	workflowFlag := flagSet.String("workflow", "", "Path to the workflow definition file.")
	wFlag := flagSet.String("w", "", "Path to the workflow definition file (shorthand).")
	serveFlag := flagSet.Bool("serve", false, "Run the HTTP API server instead of a one-shot execution.")
	portFlag := flagSet.Int("port", 0, "Port for the HTTP API server. Overrides the PORT environment variable.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	timeoutFlag := flagSet.Int("timeout-ms", 0, "Per-node execution budget in milliseconds. 0 uses the default (30000).")
	concurrencyFlag := flagSet.Int("concurrency", 0, "Reserved. Accepted but not consulted; execution is sequential.")
	rateLimitFlag := flagSet.Int("rate-limit", 0, "Requests per client per minute for the API server. Overrides RATE_LIMIT_MAX. 0 disables limiting.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *workflowFlag != "" {
		path = *workflowFlag
	} else if *wFlag != "" {
		path = *wFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" && !*serveFlag {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	port := *portFlag
	if port == 0 {
		p, err := portFromEnv()
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		port = p
	}

	rateLimit := *rateLimitFlag
	if rateLimit == 0 {
		if raw := os.Getenv("RATE_LIMIT_MAX"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				return nil, false, &ExitError{Code: 2, Message: "invalid RATE_LIMIT_MAX: must be a non-negative integer"}
			}
			rateLimit = n
		}
	}

	config, err := app.NewConfig(app.Config{
		WorkflowPath: path,
		Serve:        *serveFlag,
		Port:         port,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		TimeoutMS:    *timeoutFlag,
		Concurrency:  *concurrencyFlag,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RateLimitMax: rateLimit,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, false, nil
}

// portFromEnv validates PORT, defaulting to 8080 when unset.
func portFromEnv() (int, error) {
	raw := os.Getenv("PORT")
	if raw == "" {
		return 8080, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("invalid PORT %q: must be an integer between 1 and 65535", raw)
	}
	return port, nil
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rizkirmdhn/docfetch/internal/common/config"
	"github.com/rizkirmdhn/docfetch/internal/common/logger"
	"github.com/rizkirmdhn/docfetch/internal/common/messaging"
	"github.com/rizkirmdhn/docfetch/internal/downloader/service"
	"github.com/rizkirmdhn/docfetch/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const usage = "Example Usage: docfetch <file_path>"

var errUsage = errors.New("too many arguments")

type options struct {
	configFile string
	logLevel   string
}

// Run executes one docfetch invocation and returns the process exit code.
// args excludes the program name; relative paths are resolved against cwd.
func Run(ctx context.Context, args []string, cwd string, stdin io.Reader, stdout, stderr io.Writer) int {
	fmt.Fprintf(stdout, "Current directory: %s\n", cwd)

	var opts options
	code := 0

	cmd := &cobra.Command{
		Use:           "docfetch [file_path]",
		Short:         "Download every {title, url} entry of a JSON file into the file's directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			code = run(cmd.Context(), opts, args, cwd, stdin, stdout, stderr)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.configFile, "config", "", "application config file (default: docfetch.{json,yaml} in the current directory)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "log level (panic, fatal, error, warn, info, debug, trace)")

	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, usage)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n%s\n", err, usage)
		}
		return 1
	}

	return code
}

func run(ctx context.Context, opts options, args []string, cwd string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(cwd, opts.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		level, err := logrus.ParseLevel(opts.logLevel)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		cfg.App.LogLevel = int(level)
	}

	log := logger.New(cfg, stderr)

	filePath, err := inputPath(args, stdin, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading file path: %v\n", err)
		return 1
	}

	resolved := filePath
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(cwd, resolved)
	}

	var message messaging.Client
	if cfg.RabbitMq.URL != "" {
		client, err := messaging.NewRabbitMQClient(cfg.GetRabbitMQConfig())
		if err != nil {
			log.WithError(err).Warn("Download events disabled")
		} else {
			defer client.Close()
			message = client
		}
	}

	fetcher := service.NewHTTPFetcher(cfg.GetHTTPConfig(), log)
	downloaderService := service.NewDownloaderService(cfg.GetDownloaderConfig(), cfg.GetRabbitMQConfig(), log, message, fetcher)
	downloaderService.SetOutput(stdout, stderr)

	entries, err := downloaderService.LoadConfig(resolved)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading JSON file '%s': %v\n", filePath, err)
		return 1
	}

	downloaderService.RunBatch(ctx, entries, utils.OutputDir(resolved))
	return 0
}

// inputPath returns the single positional argument or prompts for a path
func inputPath(args []string, stdin io.Reader, stdout io.Writer) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	fmt.Fprintln(stdout, "Enter the path to your JSON file: ")

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/macconv/pkg/lifecycle/xrun"
)

// 退出码
const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitSignaled = 130
)

// app 命令行应用，输入输出可替换以便测试。
type app struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	getenv  func(string) string
	console *console
	// noArgs 命令行除程序名外没有参数
	noArgs bool
}

func newApp(stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) *app {
	return &app{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		getenv:  getenv,
		console: newConsole(stdout, stderr, color.NoColor),
	}
}

// run 执行命令并返回退出码。收到终止信号时取消正在进行的转换。
func (a *app) run(ctx context.Context, args []string) int {
	a.noArgs = len(args) <= 1
	err := xrun.Run(ctx, func(ctx context.Context) error {
		return a.command().Run(ctx, args)
	})
	return a.exitCode(err)
}

func (a *app) exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(err, xrun.ErrSignal) {
		a.console.warnf("Interrupted: %v", err)
		return exitSignaled
	}
	var ue *usageError
	if errors.As(err, &ue) {
		a.console.errorf("Usage error: %v", ue)
		return exitUsage
	}
	a.console.errorf("Error: %v", err)
	return exitFailure
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:  "macconv",
		Usage: "convert MAC address notation and look up the vendor",
		UsageText: "macconv [options]\n" +
			"   macconv -m D8-3A-DD-EE-55-22 -s :\n" +
			"   macconv -b export.txt -a -o result.txt",
		Version:     fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		HideVersion: true,
		Writer:      a.stdout,
		ErrWriter:   a.stderr,
		Flags:       flags(),
		Action:      a.action,
		// 参数解析失败时提示后转入交互模式
		OnUsageError: a.onUsageError,
		// 退出码由 run 统一映射，不让 urfave/cli 调用 os.Exit
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "mac", Aliases: []string{"m"}, Usage: "MAC address in any supported notation"},
		&cli.StringFlag{Name: "separator", Aliases: []string{"s"}, Usage: "separator placed between octets", Value: "-"},
		&cli.BoolFlag{Name: "lower", Aliases: []string{"l"}, Usage: "print lowercase hex digits"},
		&cli.BoolFlag{Name: "api", Aliases: []string{"a"}, Usage: "look up the vendor on macvendors.com"},
		&cli.StringFlag{Name: "batch", Aliases: []string{"b"}, Usage: "scanner export to convert (UTF-16, tab separated)"},
		&cli.StringFlag{Name: "token", Aliases: []string{"t"}, Usage: "macvendors API token (env " + tokenEnv + ")"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write batch output to `FILE` instead of the console"},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML or JSON config `FILE`"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log at info level"},
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level"},
		&cli.BoolFlag{Name: "version", Usage: "print the version"},
	}
}

func (a *app) action(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("version") {
		_, _ = fmt.Fprintf(a.stdout, "macconv %s\n", cmd.Version)
		return nil
	}
	if cmd.Args().Len() > 0 {
		return newUsageError("unexpected arguments: %s", strings.Join(cmd.Args().Slice(), " "))
	}
	mac, batch := cmd.String("mac"), cmd.String("batch")
	if mac != "" && batch != "" {
		return newUsageError("--mac and --batch are mutually exclusive")
	}

	cfg, err := loadConfig(cmd.String("config"), a.getenv)
	if err != nil {
		return err
	}
	cfg.applyFlags(cmd)

	s, err := a.newSession(cfg, cmd.Bool("verbose"), cmd.Bool("debug"))
	if err != nil {
		return err
	}
	defer s.close()

	switch {
	case mac != "":
		return s.single(ctx, mac)
	case batch != "":
		return s.batch(ctx, batch, cmd.String("output"))
	default:
		if a.noArgs {
			a.console.infof("No arguments provided. Using interactive mode.")
		}
		return s.interactive(ctx)
	}
}

func (a *app) onUsageError(ctx context.Context, _ *cli.Command, err error, _ bool) error {
	a.console.warnf("Error parsing arguments: %v\nUsing interactive mode instead", err)

	cfg, cerr := loadConfig("", a.getenv)
	if cerr != nil {
		return cerr
	}
	s, serr := a.newSession(cfg, false, false)
	if serr != nil {
		return serr
	}
	defer s.close()
	return s.interactive(ctx)
}

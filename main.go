package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/samber/lo"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sealdice/wildseal/adapters"
	"github.com/sealdice/wildseal/wildcard"
	"github.com/sealdice/wildseal/wildcard/assets"
	"github.com/sealdice/wildseal/wildcard/types"
)

var (
	historyFn = filepath.Join(os.TempDir(), ".wildseal_history")
	commands  = []string{".help", ".list", ".file ", ".seed ", ".names", ".quit"}
)

type options struct {
	configPath string
	file       string
	seed       int64
	serve      bool
	quiet      bool
}

func main() {
	var opts options
	flag.StringVarP(&opts.configPath, "config", "c", "", "config file (yaml or json)")
	flag.StringVarP(&opts.file, "file", "f", "", "template file under wildcardDir, resolve once and exit")
	flag.Int64VarP(&opts.seed, "seed", "s", 0, "seed, random when omitted")
	flag.BoolVar(&opts.serve, "serve", false, "run the websocket resolve service")
	flag.BoolVarP(&opts.quiet, "quiet", "q", false, "only log errors")
	flag.Parse()

	logger := newLogger(opts.quiet)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	cfg := wildcard.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := wildcard.LoadConfig(opts.configPath)
		if err != nil {
			exitWithError(err)
		}
		cfg = loaded
	}

	engine := wildcard.NewEngine(cfg)
	if cfg.AssetDB != "" {
		store, err := openAssetStore(cfg)
		if err != nil {
			exitWithError(err)
		}
		defer func() { _ = store.Close() }()
		engine.Names = store
	}

	seed := wildcard.RandomSeed()
	if flag.CommandLine.Changed("seed") {
		seed = wildcard.NormalizeSeed(opts.seed, 1)
	}

	switch {
	case opts.serve:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		srv := adapters.NewWSServer(cfg.Listen, engine, cfg.RateLimit, cfg.RateBurst)
		if err := srv.Serve(ctx); err != nil {
			exitWithError(err)
		}
	case opts.file != "" || flag.NArg() > 0:
		req := &types.Request{File: opts.file, Line: strings.Join(flag.Args(), " "), Seed: seed}
		res, err := engine.Process(req)
		if err != nil {
			exitWithError(err)
		}
		printResult(res, seed)
	default:
		runShell(engine, seed)
	}
}

func newLogger(quiet bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if quiet {
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// 名称表快照，启动时从 loraDir 同步一次
func openAssetStore(cfg *wildcard.Config) (*assets.BuntStore, error) {
	store, err := assets.OpenBuntStore(cfg.AssetDB)
	if err != nil {
		return nil, err
	}
	src := &assets.DirSource{Root: cfg.LoraDir, Extensions: cfg.ModelExtensions}
	if err := store.Sync(src); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to sync asset store: %w", err)
	}
	return store, nil
}

func runShell(engine *wildcard.Engine, seed uint64) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(line string) []string {
		return lo.Filter(commands, func(cmd string, _ int) bool {
			return strings.HasPrefix(cmd, line)
		})
	})

	if f, err := os.Open(historyFn); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}

	fmt.Printf("%s Shell v%s\n", types.APPNAME, types.VERSION.String())
	fmt.Println("输入模板行直接展开，.help 查看命令")

	for {
		text, err := line.Prompt(">>> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println("Interrupted")
			} else {
				fmt.Println("Error reading line: ", err)
			}
			break
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		line.AppendHistory(text)

		if text == ".quit" {
			break
		}
		seed = execute(engine, text, seed)
	}

	if f, err := os.Create(historyFn); err != nil {
		fmt.Println("Error writing history file: ", err)
	} else {
		_, _ = line.WriteHistory(f)
		_ = f.Close()
	}
}

// execute 处理一条输入，返回下一次使用的种子
func execute(engine *wildcard.Engine, text string, seed uint64) uint64 {
	cmd, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case ".help":
		fmt.Println(".list                列出模板文件")
		fmt.Println(".file <name> [seed]  从模板文件中选一行展开")
		fmt.Println(".seed <n>            设置下一次的种子")
		fmt.Println(".names               列出正式名称表")
		fmt.Println(".quit                退出")
		return seed
	case ".list":
		templates, err := engine.Templates()
		if err != nil {
			fmt.Println("错误:", err)
			return seed
		}
		for _, name := range templates {
			fmt.Println(name)
		}
		return seed
	case ".names":
		names, err := engine.CanonicalNames()
		if err != nil {
			fmt.Println("错误:", err)
			return seed
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return seed
	case ".seed":
		n, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			fmt.Println("错误: 种子必须是整数")
			return seed
		}
		return wildcard.NormalizeSeed(n, 1)
	case ".file":
		name, seedText, _ := strings.Cut(rest, " ")
		if name == "" {
			fmt.Println("用法: .file <name> [seed]")
			return seed
		}
		if seedText = strings.TrimSpace(seedText); seedText != "" {
			n, err := strconv.ParseInt(seedText, 10, 64)
			if err != nil {
				fmt.Println("错误: 种子必须是整数")
				return seed
			}
			seed = wildcard.NormalizeSeed(n, 1)
		}
		resolveAndPrint(engine, &types.Request{File: name, Seed: seed})
		return seed + 1
	}

	resolveAndPrint(engine, &types.Request{Line: text, Seed: seed})
	return seed + 1
}

func resolveAndPrint(engine *wildcard.Engine, req *types.Request) {
	res, err := engine.Process(req)
	if err != nil {
		fmt.Println("错误:", err)
		return
	}
	printResult(res, req.Seed)
}

func printResult(res *types.Result, seed uint64) {
	fmt.Printf("种子: %d\n", seed)
	if res.Resolved != res.Text {
		fmt.Printf("展开: %s\n", res.Resolved)
	}
	fmt.Printf("结果: %s\n", res.Text)
	for _, m := range res.Modifiers {
		mark := ""
		if !m.Matched {
			mark = " (未匹配)"
		}
		fmt.Printf("  %s  %.2f / %.2f%s\n", m.Name, m.PrimaryStrength, m.SecondaryStrength, mark)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// rbtree-inspect 按配置或命令行参数构建红黑树, 输出层序/中序渲染、高度与不变量校验结果.
package main

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/wyfcoding/ordtree/config"
	"github.com/wyfcoding/ordtree/logging"
	"github.com/wyfcoding/ordtree/metrics"
	"github.com/wyfcoding/ordtree/rbtree"
	"github.com/wyfcoding/ordtree/xerrors"
)

const version = "v0.1.0"

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
}

// reportError 输出错误并返回退出码. 结构化错误按 gRPC 状态码退出, 便于脚本区分参数错误与树损坏.
func reportError(w io.Writer, err error) int {
	e, ok := xerrors.FromError(err)
	if !ok {
		fmt.Fprintf(w, "error: %v\n", err)
		return 1
	}

	st := e.ToGRPCStatus()
	fmt.Fprintf(w, "error: %v\n", err)
	if e.Detail != "" {
		fmt.Fprintf(w, "detail: %s\n", e.Detail)
	}
	fmt.Fprintf(w, "status: %s (http %d)\n", st.Code(), e.HTTPStatus())
	return int(st.Code())
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "rbtree-inspect",
		Usage:     "build a red-black tree from a key list and print its shape",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a TOML config file",
				EnvVars: []string{"RBTREE_INSPECT_CONFIG"},
			},
			&cli.StringSliceFlag{
				Name:  "keys",
				Usage: "keys to insert, in order",
			},
			&cli.StringSliceFlag{
				Name:  "remove",
				Usage: "keys to remove after all inserts",
			},
			&cli.StringFlag{
				Name:  "key-type",
				Usage: "key type: int or string",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "dump tree metrics in Prometheus text format",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "rebuild the tree whenever the config file changes (requires --config)",
			},
		},
		Action: runInspect,
	}
}

func runInspect(cctx *cli.Context) error {
	loader := config.NewLoader()
	var conf config.Config
	path := cctx.String("config")
	if path != "" {
		if err := loader.Load(path, &conf); err != nil {
			return err
		}
	} else if err := loader.LoadDefaults(&conf); err != nil {
		return err
	}
	applyFlags(cctx, &conf)

	logCfg := conf.Log.LoggingConfig("ordtree", "rbtree-inspect")
	logCfg.Writer = cctx.App.ErrWriter
	logger := logging.NewFromConfig(logCfg)
	defer logger.Close()
	// 配置热更新与指标服务通过 slog 默认实例输出
	slog.SetDefault(logger.Logger)

	m := metrics.NewMetrics(conf.Metrics.Namespace, false)
	m.RegisterBuildInfo("rbtree-inspect", version)

	out := cctx.App.Writer
	if err := inspectAndPrint(out, conf, logger, m); err != nil {
		return err
	}

	if !cctx.Bool("watch") {
		return nil
	}
	if path == "" {
		return xerrors.InvalidArg("--watch requires --config")
	}

	if conf.Metrics.Enabled && conf.Metrics.Addr != "" {
		stop := m.ExposeHttp(conf.Metrics.Addr)
		defer stop()
		logger.Info("metrics server started", "addr", conf.Metrics.Addr)
	}

	loader.RegisterReloadHook(func(next *config.Config) {
		applyFlags(cctx, next)
		if err := inspectAndPrint(out, *next, logger, m); err != nil {
			logger.Error("rebuild after config change failed", "error", err)
		}
	})
	loader.Watch()
	logger.Info("watching config file", "file", path)

	ctx, cancel := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// applyFlags 显式给出的命令行参数覆盖配置文件.
func applyFlags(cctx *cli.Context, conf *config.Config) {
	if cctx.IsSet("keys") {
		conf.Tree.Keys = cctx.StringSlice("keys")
	}
	if cctx.IsSet("remove") {
		conf.Tree.Remove = cctx.StringSlice("remove")
	}
	if cctx.IsSet("key-type") {
		conf.Tree.KeyType = cctx.String("key-type")
	}
	if cctx.IsSet("log-level") {
		conf.Log.Level = cctx.String("log-level")
		logging.SetLevel(conf.Log.Level)
	}
	if cctx.IsSet("metrics") {
		conf.Metrics.Enabled = cctx.Bool("metrics")
	}
}

type report struct {
	KeyType     string
	Size        int
	Height      int
	BlackHeight int
	LevelOrder  string
	InOrder     string
}

func inspectAndPrint(w io.Writer, conf config.Config, logger *logging.Logger, m *metrics.Metrics) error {
	r, err := inspect(conf.Tree, logger, m)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "key type:     %s\n", r.KeyType)
	fmt.Fprintf(w, "size:         %d\n", r.Size)
	fmt.Fprintf(w, "height:       %d\n", r.Height)
	fmt.Fprintf(w, "black height: %d\n", r.BlackHeight)
	fmt.Fprintf(w, "level order:  %s\n", r.LevelOrder)
	fmt.Fprintf(w, "in order:     %s\n", r.InOrder)

	if conf.Metrics.Enabled {
		return m.WriteText(w)
	}
	return nil
}

func inspect(tc config.TreeConfig, logger *logging.Logger, m *metrics.Metrics) (*report, error) {
	switch tc.KeyType {
	case "int":
		keys, err := parseInts(tc.Keys)
		if err != nil {
			return nil, err
		}
		remove, err := parseInts(tc.Remove)
		if err != nil {
			return nil, err
		}
		return build(tc, keys, remove, logger, m)
	case "string":
		return build(tc, tc.Keys, tc.Remove, logger, m)
	default:
		return nil, xerrors.InvalidArg("unsupported key type").WithDetail("key type %q, want int or string", tc.KeyType)
	}
}

// build 依次插入、删除并校验. 重复插入与删除不存在的键只记录告警, 其余错误中止.
func build[T cmp.Ordered](tc config.TreeConfig, keys, remove []T, logger *logging.Logger, m *metrics.Metrics) (*report, error) {
	tree := rbtree.NewOrderedRBTree[T](
		rbtree.WithLogger(logger.Named("rbtree")),
		rbtree.WithObserver(m.TreeObserver(tc.KeyType)),
	)

	for _, k := range keys {
		if err := tree.Insert(k); err != nil {
			if !errors.Is(err, rbtree.ErrDuplicateKey) {
				return nil, err
			}
			logger.Warn("skipping duplicate key", "key", k)
		}
	}
	for _, k := range remove {
		if err := tree.Remove(k); err != nil {
			if !errors.Is(err, rbtree.ErrKeyNotFound) {
				return nil, err
			}
			logger.Warn("skipping absent key", "key", k)
		}
	}

	if tc.Verify {
		if err := tree.Verify(); err != nil {
			return nil, err
		}
		logger.Debug("tree invariants hold", "size", tree.Size())
	}

	return &report{
		KeyType:     tc.KeyType,
		Size:        tree.Size(),
		Height:      tree.Height(),
		BlackHeight: tree.BlackHeight(),
		LevelOrder:  tree.LevelOrderString(),
		InOrder:     tree.InOrderString(),
	}, nil
}

func parseInts(raw []string) ([]int, error) {
	out := make([]int, 0, len(raw))
	for _, s := range raw {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, xerrors.Wrap(err, xerrors.ErrInvalidArg, "invalid int key").WithContext("key", s)
		}
		out = append(out, n)
	}
	return out, nil
}

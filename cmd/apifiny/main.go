package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"apifiny/pkg/domain/model"
	"apifiny/pkg/infrastructure/apifiny"
	"apifiny/pkg/infrastructure/memory"
	"apifiny/pkg/usecase/log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: apifiny [-venue NAME] [-o json|yaml] <command> [args]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-16s %s\n", c.name, c.help)
	}
}

func main() {
	// .env は任意
	_ = godotenv.Load()

	var conf model.Config
	if err := envconfig.Process("APIFINY", &conf); err != nil {
		fmt.Fprintln(os.Stderr, log.Red("%s", err.Error()))
		os.Exit(2)
	}
	logger := memory.NewLogger(memory.ParseLevel(conf.LogLevel), conf.LogFile)

	venueName := flag.String("venue", conf.Venue, "venue for account operations")
	format := flag.String("o", "json", "output format (json, yaml)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := findCommand(flag.Arg(0))
	if !ok {
		logger.Error("unknown command: %s", flag.Arg(0))
		usage()
		os.Exit(2)
	}
	out, err := newPrinter(*format, os.Stdout)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(2)
	}

	var venue *model.Venue
	if *venueName != "" {
		if venue, err = model.LookupVenue(*venueName); err != nil {
			logger.Error(err.Error())
			os.Exit(2)
		}
	}

	httpCli, err := apifiny.NewHTTPClient(conf.Proxy)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(2)
	}
	if conf.Proxy != "" {
		logger.Info("use proxy: %s", conf.Proxy)
	}

	cli := apifiny.NewClient(&conf.Credential, venue,
		apifiny.WithHTTPClient(httpCli),
		apifiny.WithLogger(logger),
	)
	// 基本情報は同じ実行の中で何度も参照するのでキャッシュする
	app := &app{
		public:  apifiny.NewCachedClient(cli, 10*time.Minute),
		private: cli,
		logger:  logger,
	}

	rootCtx, cancel := context.WithCancel(context.Background())
	errGroup, ctx := errgroup.WithContext(rootCtx)
	errGroup.Go(func() error {
		defer cancel()
		res, err := cmd.run(ctx, app, flag.Args()[1:])
		if err != nil {
			return err
		}
		return out.Print(res)
	})
	errGroup.Go(func() error {
		return watchSignal(ctx, logger)
	})

	if err := errGroup.Wait(); err != nil {
		logger.Error("%s failed: %v", cmd.name, err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func watchSignal(ctx context.Context, logger *memory.Logger) error {
	// OSのシグナル監視
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	defer signal.Stop(quit)
	select {
	case <-quit:
		logger.Info("terminating ...")
		return context.Canceled
	case <-ctx.Done():
	}
	return nil
}

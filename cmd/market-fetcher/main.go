package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"apifiny/pkg/domain/model"
	"apifiny/pkg/domain/repository"
	"apifiny/pkg/infrastructure/apifiny"
	"apifiny/pkg/infrastructure/memory"
	"apifiny/pkg/infrastructure/mysql"
	"apifiny/pkg/infrastructure/slack"
	"apifiny/pkg/usecase"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Proxy    string `envconfig:"PROXY"`
	LogLevel string `split_words:"true" default:"info"`
	LogFile  string `split_words:"true"`
	// SlackURL 取得失敗の通知先（未指定なら通知しない）
	SlackURL string `split_words:"true"`
}

func main() {
	_ = godotenv.Load()

	var config Config
	if err := envconfig.Process("APIFINY", &config); err != nil {
		memory.NewLogger(memory.Error, "").Error(err.Error())
		os.Exit(2)
	}
	logger := memory.NewLogger(memory.ParseLevel(config.LogLevel), config.LogFile)

	logger.Info("===== START PROGRAM ====================")
	defer logger.Info("===== END PROGRAM ======================")

	f := flag.String("f", "configs/market-fetcher.toml", "config file path")
	flag.Parse()

	var fConf model.FetcherConfig
	if _, err := toml.DecodeFile(*f, &fConf); err != nil {
		logger.Error(err.Error())
		return
	}
	if fConf.IntervalSeconds <= 0 || len(fConf.Targets) == 0 {
		logger.Error("interval_seconds and targets are required, config: %s", *f)
		return
	}
	for _, t := range fConf.Targets {
		if _, err := model.LookupVenue(t.Venue); err != nil {
			logger.Error(err.Error())
			return
		}
	}

	httpCli, err := apifiny.NewHTTPClient(config.Proxy)
	if err != nil {
		logger.Error(err.Error())
		return
	}

	var repo repository.TickerRepository
	if fConf.DB.Enabled() {
		if repo, err = mysql.NewClient(&fConf.DB); err != nil {
			logger.Error(err.Error())
			return
		}
	} else {
		repo = memory.NewTickerRepository(fConf.HistorySize)
	}

	var slackCli *slack.Client
	if config.SlackURL != "" {
		slackCli = slack.NewClient(config.SlackURL, httpCli)
	}

	exCli := apifiny.NewPublicClient(apifiny.WithHTTPClient(httpCli), apifiny.WithLogger(logger))
	fetcher := usecase.NewFetcher(exCli, repo, logger)

	logger.Info("targets: %v", fConf.Targets)
	logger.Info("interval: %d sec", fConf.IntervalSeconds)
	logger.Info("======================================")

	rootCtx, cancel := context.WithCancel(context.Background())
	errGroup, ctx := errgroup.WithContext(rootCtx)

	errGroup.Go(func() error {
		ticker := time.NewTicker(time.Duration(fConf.IntervalSeconds) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				// 取得失敗は次の周期で取り直す
				if err := fetcher.Fetch(ctx, fConf.Targets); err != nil {
					logger.Error("failed to fetch, error: %v", err)
					if slackCli != nil {
						if err := slackCli.Notify(ctx, "market-fetcher: `%v`", err); err != nil {
							logger.Error("failed to notify, error: %v", err)
						}
					}
				}
			case <-ctx.Done():
				return nil
			}
		}
	})
	errGroup.Go(func() error {
		defer cancel()
		return watchSignal(ctx, logger)
	})

	if err := errGroup.Wait(); err != nil {
		logger.Error("error occured, %v", err)
	}
}

func watchSignal(ctx context.Context, logger *memory.Logger) error {
	// OSのシグナル監視
	quit := make(chan os.Signal, 1)
	defer close(quit)
	signal.Notify(quit, os.Interrupt)
	defer signal.Stop(quit)
	select {
	case <-quit:
		logger.Info("terminating ...")
	case <-ctx.Done():
	}
	return nil
}

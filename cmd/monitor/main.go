package main

import (
	"flag"
	"net/http"

	"apifiny/pkg/domain/model"
	"apifiny/pkg/infrastructure/memory"
	"apifiny/pkg/infrastructure/mysql"

	"github.com/BurntSushi/toml"
)

func main() {
	logger := memory.NewLogger(memory.Debug, "")
	logger.Info("===== START PROGRAM ====================")
	defer logger.Info("===== END PROGRAM ======================")

	f := flag.String("f", "configs/market-fetcher.toml", "config file path")
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	var conf model.FetcherConfig
	if _, err := toml.DecodeFile(*f, &conf); err != nil {
		logger.Error(err.Error())
		return
	}
	if !conf.DB.Enabled() {
		logger.Error("db is not configured, config: %s", *f)
		return
	}

	mysqlCli, err := mysql.NewClient(&conf.DB)
	if err != nil {
		logger.Error(err.Error())
		return
	}

	logger.Info("listen: %s", *addr)
	if err := http.ListenAndServe(*addr, newRouter(mysqlCli, logger)); err != nil {
		logger.Error("error occured: %v", err)
	}
}

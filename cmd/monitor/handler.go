package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"apifiny/pkg/domain"
	"apifiny/pkg/domain/model"
	"apifiny/pkg/domain/repository"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

func newRouter(repo repository.TickerRepository, logger domain.Logger) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/venues", venuesHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/{venue}/{symbol}", apiHandler(repo, logger)).Methods(http.MethodGet).Queries("minute", "{minute:[0-9]+}")
	return r
}

func venuesHandler(w http.ResponseWriter, r *http.Request) {
	names := []string{}
	for _, v := range model.Venues() {
		names = append(names, v.Name)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(names)
}

func apiHandler(repo repository.TickerRepository, logger domain.Logger) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		vars := mux.Vars(r)
		venue, err := model.LookupVenue(vars["venue"])
		if err != nil {
			writeError(w, http.StatusNotFound, err)
			return
		}
		minute, err := strconv.Atoi(vars["minute"])
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		since := time.Now().Add(-time.Duration(minute) * time.Minute)
		tickers, err := repo.GetTickers(venue.Name, vars["symbol"], since)
		if err != nil {
			logger.Error("failed to get tickers, venue: %s, symbol: %s, error: %v", venue.Name, vars["symbol"], err)
			writeError(w, http.StatusInternalServerError, fmt.Errorf("failed to get tickers"))
			return
		}

		res := Response{Venue: venue.Name, Symbol: vars["symbol"], Tickers: []Ticker{}}
		for _, t := range tickers {
			res.Tickers = append(res.Tickers, Ticker{
				Datetime: t.RecordedAt.Format(time.RFC3339),
				Close:    t.Close,
				High:     t.High,
				Low:      t.Low,
				Volume:   t.Volume,
			})
		}

		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(res); err != nil {
			logger.Error("failed to write response, error: %v", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	})
}

type Ticker struct {
	Datetime string          `json:"datetime"`
	Close    decimal.Decimal `json:"close"`
	High     decimal.Decimal `json:"high"`
	Low      decimal.Decimal `json:"low"`
	Volume   decimal.Decimal `json:"volume"`
}

type Response struct {
	Venue   string   `json:"venue"`
	Symbol  string   `json:"symbol"`
	Tickers []Ticker `json:"tickers"`
}

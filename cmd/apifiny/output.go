package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type printer struct {
	format string
	w      io.Writer
}

func newPrinter(format string, w io.Writer) (*printer, error) {
	switch format {
	case "json", "yaml":
		return &printer{format: format, w: w}, nil
	}
	return nil, fmt.Errorf("unknown output format: %s", format)
}

// Print 結果を出力（yaml は json のフィールド名をそのまま使う）
func (p *printer) Print(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if p.format == "json" {
		_, err = fmt.Fprintln(p.w, string(b))
		return err
	}

	var generic interface{}
	if err := json.Unmarshal(b, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

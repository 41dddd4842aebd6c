package main

import (
	"encoding/json"
	"fmt"
	"io"
)

// printer writes command results as text lines or JSON documents.
type printer struct {
	format string
	w      io.Writer
}

// Value prints a single result.
func (p *printer) Value(v any) error {
	if p.format == "json" {
		return json.NewEncoder(p.w).Encode(v)
	}
	_, err := fmt.Fprintln(p.w, v)
	return err
}

// Values prints elements one per line, or as one JSON array.
func (p *printer) Values(vs []string) error {
	if p.format == "json" {
		if vs == nil {
			vs = []string{}
		}
		return json.NewEncoder(p.w).Encode(vs)
	}
	for _, v := range vs {
		if _, err := fmt.Fprintln(p.w, v); err != nil {
			return err
		}
	}
	return nil
}

// Text prints s verbatim whatever the format.
func (p *printer) Text(s string) error {
	_, err := fmt.Fprintln(p.w, s)
	return err
}

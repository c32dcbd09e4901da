package main

import (
	"github.com/ja7ad/mosloss/pkg/types"
	"github.com/ja7ad/mosloss/pkg/util"
)

// quantity is a float flag that accepts SI prefixes ("100k", "35n").
type quantity struct{ v *float64 }

func (q quantity) String() string {
	if q.v == nil {
		return "0"
	}
	return util.FmtFloat(*q.v)
}

func (q quantity) Set(s string) error {
	v, err := types.ParseQuantity(s)
	if err != nil {
		return err
	}
	*q.v = v
	return nil
}

func (q quantity) Type() string { return "quantity" }

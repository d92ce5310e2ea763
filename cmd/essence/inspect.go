package main

import (
	"github.com/syssam/essence/compiler/load"
)

// InspectCmd prints the AST of a source file.
type InspectCmd struct {
	Input  string `arg:"" type:"existingfile" help:"Essence source file or serialized AST (.yaml, .yml, .json)."`
	Format string `help:"Output format." enum:"yaml,json" default:"yaml" short:"f"`
}

// Run implements the inspect command.
func (c *InspectCmd) Run(a *app) error {
	res, err := load.File(c.Input)
	if err != nil {
		return err
	}
	a.warn(res.Warnings)
	out, err := load.Marshal(res.AST, c.Format)
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(out)
	return err
}

// Package main is the entry point for kitsufix.
package main

import (
	"github.com/kitsufix/kitsufix/cmd"
	"github.com/kitsufix/kitsufix/config"
	"github.com/kitsufix/kitsufix/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}

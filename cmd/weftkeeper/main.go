/*
weftkeeper calls the fee splitter update on a schedule and collects the
keeper reward.

	weftkeeper -config keeper.yaml [once]

Without a command it runs until interrupted.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/contribute-dao/weft"
	"github.com/contribute-dao/weft/client"
	"github.com/contribute-dao/weft/cmd/weftkeeper/keeper"
	"github.com/contribute-dao/weft/errors"
	"github.com/tendermint/tendermint/libs/log"
)

var configPath = flag.String("config", "keeper.yaml", "path to the keeper configuration")

func main() {
	flag.Parse()
	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	conf, err := keeper.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	allow, err := log.AllowLevel(conf.LogLevel)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewFilter(log.NewTMLogger(log.NewSyncWriter(os.Stdout)), allow).
		With("module", "keeper")

	key, err := keeper.LoadKey(conf.KeyFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	c := client.NewClient(client.NewHTTPConnection(conf.RPC))
	chainID := conf.ChainID
	if chainID == "" {
		status, err := c.Status(ctx)
		if err != nil {
			return errors.Wrap(err, "node status")
		}
		chainID = status.ChainID
	}
	logger.Info("connected", "rpc", conf.RPC, "chain_id", chainID, "version", weft.Version())

	k := keeper.New(c, key, chainID, logger)
	if len(args) > 0 && args[0] == "once" {
		id, err := k.RunOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	}
	return k.Run(ctx, conf.Schedule, conf.RunOnStart)
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contribute-dao/weft"
	weftd "github.com/contribute-dao/weft/cmd/weftd/app"
	"github.com/contribute-dao/weft/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".weft")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("weftd")
	fmt.Println("          Contribute DAO reward vaults and fee splitter node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check that genesis files load")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.weft")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "weft")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(weftd.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(weftd.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateCmd(weftd.Initializers(), logger, rest)
	case "version":
		fmt.Println(weft.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

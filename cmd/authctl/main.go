package main

import (
	"context"
	"log"
	"os"

	"github.com/innoclinic/authsvc/internal/authctl"
	"github.com/innoclinic/authsvc/internal/buildinfo"
	"github.com/innoclinic/authsvc/internal/flagx"
	"github.com/innoclinic/authsvc/internal/server"
	"github.com/innoclinic/authsvc/internal/server/config"
)

// configFlags lists the flags owned by the config layer; everything else on
// the command line belongs to the command.
var configFlags = []string{"-c", "-config", "-d", "-s", "-i", "-a", "-t", "-u", "-p", "-b", "-g", "-e"}

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	cli := authctl.NewApp(app.Credentials(), app.Photos())
	if err := cli.Run(ctx, flagx.StripArgs(os.Args[1:], configFlags)); err != nil {
		log.Fatalf("%v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gookit/color"

	"github.com/amine-amaach/uaWalker/internal/cli"
)

var banner = `
             _    _       _ _
 _   _  __ _| |  | | __ _| | | _____ _ __   %s
| | | |/ _` + "`" + ` | |  | |/ _` + "`" + ` | | |/ / _ \ '__|
| |_| | (_| | |/\| | (_| | |   <  __/ |
 \__,_|\__,_|__/\__/\__,_|_|_|\_\___|_|
Explore OPC UA address spaces
`

func main() {
	fmt.Println(color.Cyan.Sprintf(banner, cli.Version))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/dmitrijs2005/sftpfeed/internal/app"
	"github.com/dmitrijs2005/sftpfeed/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	// Interactive runs may leave the password out of config and flags.
	if cfg.Password == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print("Enter password: ")
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			log.Printf("%v", err)
			return
		}
		cfg.Password = string(pw)
	}

	a, err := app.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := a.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}

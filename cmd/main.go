package main

import (
	"context"
	"os"

	"github.com/adanyl0v/taskpad/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	a, err := app.New(context.Background())
	if err != nil {
		return 1
	}
	defer a.Close()

	err = a.Run()
	if err != nil {
		return 1
	}
	return 0
}

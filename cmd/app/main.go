package main

import (
	"go.uber.org/fx"

	"github.com/yourusername/anticovid-bot/internal/app"
)

func main() {
	fx.New(app.CreateApp()).Run()
}

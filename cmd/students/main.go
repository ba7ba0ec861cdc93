package main

import (
	"github.com/joeydtaylor/steeze-students/pkg/serverfx"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// main loads an optional .env file, then hands the process to fx.
func main() {
	_ = godotenv.Load()
	fx.New(serverfx.Module(serverfx.DefaultOptions())).Run()
}

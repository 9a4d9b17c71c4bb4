package main

import (
	"flag"

	demoapp "github.com/edward-ap/scrolllabel/internal/demoapp"
)

func main() {
	trace := flag.Bool("traceLog", false, "log every scroll phase change")
	cfgPath := flag.String("config", "", "settings file (.json, .yaml or .toml); default is the user config dir")
	flag.Parse()
	demoapp.SetTraceLogEnabled(*trace)

	app := demoapp.NewApp(*cfgPath)
	app.Run()
}

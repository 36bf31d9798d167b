// cmd/ctxcount/main.go
package main

import (
	"ctxcount/internal/app"
	"ctxcount/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }

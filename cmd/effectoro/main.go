// cmd/effectoro/main.go
package main

import (
	"effectoro/internal/app"
	"effectoro/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}

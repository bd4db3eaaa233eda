// cmd/offtarget/main.go
package main

import (
	"offtarget/internal/app"
	"offtarget/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/interviewsim-backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(context.Background()); err != nil {
		a.Log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/Zartof23/mytops-sub000/internal/app"
	"github.com/Zartof23/mytops-sub000/internal/platform/envutil"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	port := envutil.String("PORT", "8080")
	application.Log.Info("Server listening", "port", port)
	if err := application.Run(":" + port); err != nil {
		application.Log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

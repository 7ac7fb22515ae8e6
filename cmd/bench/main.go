package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"maintShop/internal/bench"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		var m *bench.Mismatch
		if errors.As(err, &m) {
			fmt.Fprint(os.Stderr, m.Report())
		} else {
			fmt.Fprintln(os.Stderr, "Ошибка:", err)
		}
		os.Exit(1)
	}
}

// Command pizzeria manages the menu, customers and orders of a pizzeria.
package main

import (
	"context"

	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

func main() {
	app.Run(func(ctx context.Context, lg *zap.Logger, m *app.Telemetry) error {
		return newRootCmd(m).ExecuteContext(zctx.Base(ctx, lg))
	})
}

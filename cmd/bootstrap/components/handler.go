package components

import (
	"book-lender/internal/handler"
	"book-lender/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckoutHandler,
	),
	fx.Invoke(handler.NewRouter),
)

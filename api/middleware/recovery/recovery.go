package recovery

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/negroni/v3"
)

func NewMiddleware() *negroni.Recovery {
	rec := negroni.NewRecovery()
	rec.PrintStack = false
	rec.Logger = &log.Logger
	rec.PanicHandlerFunc = func(info *negroni.PanicInformation) {
		log.Ctx(info.Request.Context()).Error().
			Interface("panic", info.RecoveredPanic).
			Str("method", info.Request.Method).
			Str("path", info.RequestDescription()).
			Msg("recovered from panic")
	}
	return rec
}

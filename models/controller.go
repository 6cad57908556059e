package models

import (
	"io"
	"net/http"

	radixhttp "github.com/equinor/radix-common/net/http"
	"github.com/rs/zerolog/log"
)

// Controller Pattern of an rest controller
type Controller interface {
	GetRoutes() Routes
}

// DefaultController Default implementation
type DefaultController struct {
}

// ErrorResponse Marshals error for user requester
func (c *DefaultController) ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if err = radixhttp.ErrorResponse(w, r, err); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write error response")
	}
}

// JSONResponse Marshals response with header
func (c *DefaultController) JSONResponse(w http.ResponseWriter, r *http.Request, result interface{}) {
	if err := radixhttp.JSONResponse(w, r, result); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

// ReaderFileResponse writes the content from the reader to the response,
// and sets Content-Disposition=attachment; filename=<filename arg>
func (c *DefaultController) ReaderFileResponse(w http.ResponseWriter, r *http.Request, reader io.Reader, fileName, contentType string) {
	if err := radixhttp.ReaderFileResponse(w, reader, fileName, contentType); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

// ReaderResponse writes the content from the reader to the response
func (c *DefaultController) ReaderResponse(w http.ResponseWriter, r *http.Request, reader io.Reader, contentType string) {
	if err := radixhttp.ReaderResponse(w, reader, contentType); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to write reader to response")
	}
}

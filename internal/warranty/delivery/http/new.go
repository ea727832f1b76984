package http

import (
	"warranty-tracker/internal/warranty"
	"warranty-tracker/pkg/datemath"
	"warranty-tracker/pkg/log"
)

// DefaultMaxUploadBytes caps multipart request bodies when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

type handler struct {
	l         log.Logger
	uc        warranty.UseCase
	parser    *datemath.Parser
	maxUpload int64
}

// New creates a new HTTP handler for the warranty domain.
func New(l log.Logger, uc warranty.UseCase, parser *datemath.Parser, maxUploadBytes int64) *handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &handler{
		l:         l,
		uc:        uc,
		parser:    parser,
		maxUpload: maxUploadBytes,
	}
}

package server

import (
	"context"
	"io"
	"net/http"

	"github.com/sleepdoctor/sleepdoc/internal/apperr"
	"github.com/sleepdoctor/sleepdoc/internal/bridge"
	"github.com/sleepdoctor/sleepdoc/internal/version"
	"github.com/sleepdoctor/sleepdoc/internal/xhttp"
	"github.com/sleepdoctor/sleepdoc/internal/xslog"
)

const maxCallBytes = 64 << 10

// Invoker is a bridge channel reachable over HTTP.
type Invoker interface {
	Name() string
	Invoke(ctx context.Context, call bridge.Call, result bridge.Result)
}

type Handler struct {
	channels map[string]Invoker
}

func NewHandler(channels ...Invoker) *Handler {
	h := &Handler{channels: make(map[string]Invoker, len(channels))}
	for _, ch := range channels {
		h.channels[ch.Name()] = ch
	}
	return h
}

// HandleCall decodes a method call, runs it on the named channel and writes the
// reply envelope. Not implemented methods get an empty 204.
func (h *Handler) HandleCall(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := r.PathValue("channel")
	ch, ok := h.channels[name]
	if !ok {
		apperr.WriteError(ctx, w, apperr.NotFound("unknown_channel", "no channel named "+name))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCallBytes))
	if err != nil {
		apperr.WriteError(ctx, w, apperr.BadRequest("invalid_body", "failed to read request body", err))
		return
	}

	call, err := bridge.DecodeCall(body)
	if err != nil {
		apperr.WriteError(ctx, w, apperr.BadRequest("malformed_call", "request body is not a method call", err))
		return
	}

	result := &bridge.Recorder{}
	ch.Invoke(ctx, call, result)

	reply, _ := result.Reply()
	if reply.Outcome == bridge.OutcomeNotImplemented {
		xhttp.WriteNoContent(w)
		return
	}

	envelope, err := reply.Encode()
	if err != nil {
		apperr.WriteError(ctx, w, apperr.Internal("encode_failed", "failed to encode reply", err))
		return
	}

	xslog.FromContext(ctx).DebugContext(ctx, "call resolved",
		xslog.Channel(name),
		xslog.Method(call.Method),
		xslog.Code(reply.Code),
	)

	xhttp.WriteRawJSON(w, http.StatusOK, envelope)
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	xhttp.WriteOK(w, healthResponse{Status: "ok", Version: version.Get()})
}

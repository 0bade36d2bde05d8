package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/shravanasati/webfetch/internal/content"
	"github.com/shravanasati/webfetch/internal/headers"
	"github.com/shravanasati/webfetch/internal/request"
	"github.com/shravanasati/webfetch/internal/response"
	"go.uber.org/zap"
)

// connHandler serves exactly one request on one connection.
type connHandler struct {
	cfg      *Config
	resolver *content.Resolver
	log      *zap.Logger
	recovery func(any) *response.Response
	access   accessLog
}

func (h *connHandler) serve(conn net.Conn) {
	start := time.Now()
	log := h.log.With(zap.Stringer("remote", conn.RemoteAddr()))

	if h.cfg.ReadTimeout > 0 {
		conn.SetReadDeadline(time.Now().Add(h.cfg.ReadTimeout))
	}

	req, err := request.ReadHead(conn)
	if err != nil {
		if resp := badRequestResponse(err); resp != nil {
			if werr := resp.Write(conn, true); werr != nil {
				log.Debug("unable to write response", zap.Error(werr))
			}
			h.access.record("-", "-", resp.StatusCode, time.Since(start))
			return
		}
		log.Debug("connection closed before a request arrived", zap.Error(err))
		return
	}

	status, err := h.dispatch(conn, req)
	if err != nil {
		log.Warn("unable to write response", zap.Error(err))
	}
	h.access.record(req.Method, req.Target, status, time.Since(start))
}

// badRequestResponse picks the reply for a request head that could not be
// read. It returns nil when the peer is gone and nothing should be written.
func badRequestResponse(err error) *response.Response {
	var netErr net.Error
	switch {
	case errors.Is(err, request.ErrEmptyRequest),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.As(err, &netErr):
		return nil
	case errors.Is(err, bufio.ErrTooLong):
		return response.NewErrorResponse(response.StatusHeaderFieldsTooLarge, "")
	case errors.Is(err, request.ErrIncorrectRequestLine):
		return response.NewErrorResponse(response.StatusBadRequest, "Bad request syntax")
	case errors.Is(err, headers.ErrMalformedHeader):
		return response.NewErrorResponse(response.StatusBadRequest, "Bad header line")
	default:
		return response.NewErrorResponse(response.StatusBadRequest, "")
	}
}

// dispatch routes the request by method. A panic while handling is turned
// into the recovery response.
func (h *connHandler) dispatch(w io.Writer, req *request.Request) (status response.StatusCode, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("recovered from panic", zap.Any("panic", r), zap.Stack("stack"))
			resp := h.recovery(r)
			status, err = resp.StatusCode, resp.Write(w, req.Method != request.MethodHead)
		}
	}()

	rw := response.NewWriter(w)
	switch req.Method {
	case request.MethodHead:
		status, _, err = h.doHead(rw, req.Target, false)
		return status, err
	case request.MethodGet:
		return h.doGet(rw, req.Target)
	default:
		resp := response.NewErrorResponse(
			response.StatusNotImplemented,
			fmt.Sprintf("Unsupported method ('%s')", req.Method),
		)
		return resp.StatusCode, resp.Write(w, true)
	}
}

// doHead resolves target and writes the status line and header block. On
// success it returns the content so GET can follow with the body. Error
// responses are written whole here, their page included when withErrorBody
// is set.
func (h *connHandler) doHead(rw *response.Writer, target string, withErrorBody bool) (response.StatusCode, []byte, error) {
	resp := h.readContent(target)

	if err := resp.WriteHead(rw); err != nil {
		return resp.StatusCode, nil, err
	}

	if resp.StatusCode != response.StatusOK {
		if withErrorBody && len(resp.Body) > 0 {
			return resp.StatusCode, nil, rw.WriteBody(resp.Body)
		}
		return resp.StatusCode, nil, nil
	}
	return resp.StatusCode, resp.Body, nil
}

func (h *connHandler) doGet(rw *response.Writer, target string) (response.StatusCode, error) {
	status, body, err := h.doHead(rw, target, true)
	if err != nil || status != response.StatusOK || len(body) == 0 {
		return status, err
	}
	return status, rw.WriteBody(body)
}

func (h *connHandler) readContent(target string) *response.Response {
	res := h.resolver.Resolve(target)
	switch res.Kind {
	case content.Found:
		return response.NewFileResponse(res.Content)
	case content.NotFound:
		return response.NewErrorResponse(response.StatusNotFound, content.NotFoundMessage)
	default:
		h.log.Error("unable to read content", zap.String("name", res.Name), zap.String("error", res.Description))
		return response.NewErrorResponse(
			response.StatusInternalServerError,
			"Server Error: "+res.Description,
		)
	}
}

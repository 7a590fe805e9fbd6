package router

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shandysiswandi/gopos/internal/pkg/goerror"
)

const maxBodyBytes = 1 << 20

type Request struct {
	*http.Request
}

// GetParam returns the {key} path variable of the matched route.
func (r *Request) GetParam(key string) string {
	return mux.Vars(r.Request)[key]
}

func (r *Request) GetParamInt64(key string) (int64, error) {
	v, err := strconv.ParseInt(r.GetParam(key), 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("Invalid path parameter " + key)
	}
	return v, nil
}

// ClientIP returns the caller address resolved by middlewareIP, or "" when
// none is known.
func (r *Request) ClientIP() string {
	if net.ParseIP(r.RemoteAddr) != nil {
		return r.RemoteAddr
	}
	return realIP(r.Request)
}

func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// DecodeBody decodes exactly one JSON value into dst and rejects unknown
// fields.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil || r.Body == http.NoBody {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}

// Package ledgerv1connect wires the splitledger.v1 services to Connect handlers and clients.
package ledgerv1connect

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

// withCodec puts the JSON codec ahead of caller options.
func withCodec[O any](opts []O, codec O) []O {
	return append([]O{codec}, opts...)
}

var codecOption = connect.WithCodec(ledgerv1.Codec{})

// route dispatches to handlers by exact procedure path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

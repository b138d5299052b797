package main

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/candlepad/candlepad/internal/buffer"
	"github.com/candlepad/candlepad/internal/dispatch"
)

// newRouter exposes the dispatch operations as plain-text HTTP endpoints,
// plus buffer get/put backed by the in-memory provider. Dispatch keeps its
// string contract over HTTP: operation failures come back as 200 responses
// whose body is an "Error: <message>" line.
func newRouter(provider *buffer.MemoryProvider, dispatcher *dispatch.Dispatcher) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, dispatcher.Version())
	}).Methods(http.MethodGet)

	r.HandleFunc("/compat/{client}", func(w http.ResponseWriter, req *http.Request) {
		writeText(w, dispatcher.CheckCompatibility(mux.Vars(req)["client"]))
	}).Methods(http.MethodGet)

	r.HandleFunc("/chart/sample", func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, dispatcher.RenderSample())
	}).Methods(http.MethodGet)

	r.HandleFunc("/chart", func(w http.ResponseWriter, req *http.Request) {
		writeText(w, dispatcher.RenderDataset(readBody(req)))
	}).Methods(http.MethodPost)

	r.HandleFunc("/dataset/slice/{index}", func(w http.ResponseWriter, req *http.Request) {
		index, err := strconv.Atoi(mux.Vars(req)["index"])
		if err != nil {
			writeText(w, "Error: invalid candle index")

			return
		}

		writeText(w, dispatcher.DatasetSlice(readBody(req), index))
	}).Methods(http.MethodPost)

	r.HandleFunc("/price-at-row/{index}/{row}", func(w http.ResponseWriter, req *http.Request) {
		vars := mux.Vars(req)

		index, err := strconv.Atoi(vars["index"])
		if err != nil {
			writeText(w, "Error: invalid candle index")

			return
		}

		row, err := strconv.Atoi(vars["row"])
		if err != nil {
			writeText(w, "Error: invalid row position")

			return
		}

		writeText(w, dispatcher.PriceAtRow(readBody(req), index, row))
	}).Methods(http.MethodPost)

	r.HandleFunc("/buffers/{id}", func(w http.ResponseWriter, req *http.Request) {
		text, ok := provider.GetText(mux.Vars(req)["id"])
		if !ok {
			http.NotFound(w, req)

			return
		}

		writeText(w, text)
	}).Methods(http.MethodGet)

	r.HandleFunc("/buffers/{id}", func(w http.ResponseWriter, req *http.Request) {
		if err := provider.SetText(mux.Vars(req)["id"], readBody(req)); err != nil {
			writeText(w, "Error: "+err.Error())

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPut)

	r.HandleFunc("/buffers/{id}/candles/{index}/{field}/{direction}", func(w http.ResponseWriter, req *http.Request) {
		vars := mux.Vars(req)

		index, err := strconv.Atoi(vars["index"])
		if err != nil {
			writeText(w, "Error: invalid candle index")

			return
		}

		direction, err := strconv.Atoi(vars["direction"])
		if err != nil {
			writeText(w, "Error: invalid direction")

			return
		}

		variable := req.URL.Query().Get("variable")
		if variable == "" {
			variable = "df"
		}

		writeText(w, dispatcher.AdjustCandle(vars["id"], variable, index, vars["field"], direction))
	}).Methods(http.MethodPost)

	return r
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, body)
}

func readBody(req *http.Request) string {
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return ""
	}

	return string(data)
}

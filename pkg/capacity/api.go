package capacity

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/dmi/pkg/smbios"
)

type api struct {
	oracle *ResourceOracle
}

type entryPointInfo struct {
	Version      string `json:"version"`
	Valid        bool   `json:"valid"`
	TableAddress uint64 `json:"table_address"`
	TableSize    uint32 `json:"table_size"`
}

// Router exposes the oracle over HTTP
//
//	GET  /dmi              rendered dmi sections
//	GET  /inventory        hardware summary
//	GET  /capacity         total resource units
//	GET  /entrypoint       entry point information
//	GET  /tables           all decoded tables
//	GET  /tables/{type}    decoded tables of one type (name or number)
//	POST /refresh          read the tables again
func Router(oracle *ResourceOracle) *mux.Router {
	a := api{oracle: oracle}

	router := mux.NewRouter()
	router.HandleFunc("/dmi", a.dmi).Methods(http.MethodGet)
	router.HandleFunc("/inventory", a.inventory).Methods(http.MethodGet)
	router.HandleFunc("/capacity", a.capacity).Methods(http.MethodGet)
	router.HandleFunc("/entrypoint", a.entryPoint).Methods(http.MethodGet)
	router.HandleFunc("/tables", a.tables).Methods(http.MethodGet)
	router.HandleFunc("/tables/{type}", a.tablesOfType).Methods(http.MethodGet)
	router.HandleFunc("/refresh", a.refresh).Methods(http.MethodPost)

	return router
}

func reply(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func replyErr(w http.ResponseWriter, status int, err error) {
	log.Error().Err(err).Int("status", status).Msg("request failed")
	reply(w, status, struct {
		Error string `json:"error"`
	}{err.Error()})
}

func (a *api) dmi(w http.ResponseWriter, r *http.Request) {
	d, err := a.oracle.DMI()
	if err != nil {
		replyErr(w, http.StatusInternalServerError, err)
		return
	}

	reply(w, http.StatusOK, d)
}

func (a *api) inventory(w http.ResponseWriter, r *http.Request) {
	inv, err := a.oracle.Inventory()
	if err != nil {
		replyErr(w, http.StatusInternalServerError, err)
		return
	}

	reply(w, http.StatusOK, inv)
}

func (a *api) capacity(w http.ResponseWriter, r *http.Request) {
	c, err := a.oracle.Total()
	if err != nil {
		replyErr(w, http.StatusInternalServerError, err)
		return
	}

	reply(w, http.StatusOK, c)
}

func (a *api) entryPoint(w http.ResponseWriter, r *http.Request) {
	s, err := a.oracle.Snapshot()
	if err != nil {
		replyErr(w, http.StatusInternalServerError, err)
		return
	}

	if s.EntryPoint == nil {
		replyErr(w, http.StatusNotFound, smbios.ErrNoEntryPoint)
		return
	}

	addr, size := s.EntryPoint.Table()
	reply(w, http.StatusOK, entryPointInfo{
		Version:      s.EntryPoint.Version().String(),
		Valid:        s.EntryPoint.IsValid(),
		TableAddress: addr,
		TableSize:    size,
	})
}

func (a *api) tables(w http.ResponseWriter, r *http.Request) {
	s, err := a.oracle.Snapshot()
	if err != nil {
		replyErr(w, http.StatusInternalServerError, err)
		return
	}

	reply(w, http.StatusOK, s.Tables)
}

func (a *api) tablesOfType(w http.ResponseWriter, r *http.Request) {
	typ, err := smbios.ParseType(mux.Vars(r)["type"])
	if err != nil {
		replyErr(w, http.StatusBadRequest, err)
		return
	}

	s, err := a.oracle.Snapshot()
	if err != nil {
		replyErr(w, http.StatusInternalServerError, err)
		return
	}

	tables := []smbios.Table{}
	for _, t := range s.Tables {
		if t.Header.Type == typ {
			tables = append(tables, t)
		}
	}

	reply(w, http.StatusOK, tables)
}

func (a *api) refresh(w http.ResponseWriter, r *http.Request) {
	s, err := a.oracle.Refresh()
	if err != nil {
		replyErr(w, http.StatusInternalServerError, err)
		return
	}

	reply(w, http.StatusOK, struct {
		Tables int `json:"tables"`
	}{len(s.Tables)})
}

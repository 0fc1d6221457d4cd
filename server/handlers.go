package server

import (
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/eventsink"
	"github.com/iov-one/chainswap/x"
	"github.com/iov-one/chainswap/x/cash"
	"github.com/iov-one/chainswap/x/sigs"
	"github.com/iov-one/chainswap/x/swap"
)

type eventResponse struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

type deliverResponse struct {
	Height int64              `json:"height"`
	Data   chainswap.HexBytes `json:"data,omitempty"`
	Log    string             `json:"log,omitempty"`
	Events []eventResponse    `json:"events"`
}

type checkResponse struct {
	Data chainswap.HexBytes `json:"data,omitempty"`
	Log  string             `json:"log,omitempty"`
}

type swapResponse struct {
	State      string           `json:"state"`
	Swap       *swap.Swap       `json:"swap,omitempty"`
	Settlement *swap.Settlement `json:"settlement,omitempty"`
}

type walletResponse struct {
	Address chainswap.Address `json:"address"`
	Coins   x.Coins           `json:"coins"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"chain_id": s.engine.ChainID(),
		"height":   s.engine.Height(),
	})
}

func (s *Server) readTx(w http.ResponseWriter, r *http.Request) (chainswap.Tx, error) {
	raw, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read body: %s", err)
	}
	return s.decode(raw)
}

func msgPath(tx chainswap.Tx) string {
	msg, err := tx.GetMsg()
	if err != nil || msg == nil {
		return "unknown"
	}
	return msg.Path()
}

func (s *Server) deliverTx(w http.ResponseWriter, r *http.Request) {
	tx, err := s.readTx(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	path := msgPath(tx)
	res, err := s.engine.Deliver(r.Context(), tx)
	if err != nil {
		s.metrics.incDelivery(path, "error")
		s.logger.Info("transaction rejected", "path", path, "request_id", requestIDFromContext(r.Context()), "err", err)
		s.writeError(w, r, err)
		return
	}
	height := res.Height
	s.metrics.incDelivery(path, "ok")
	s.metrics.setHeight(height)

	records, err := eventsink.Records(eventsink.Batch{Height: height, Path: path, Events: res.Events})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	events := make([]eventResponse, 0, len(records))
	for _, rec := range records {
		s.metrics.incEvent(rec.Name)
		events = append(events, eventResponse{Name: rec.Name, Payload: rec.Payload})
	}
	writeJSON(w, http.StatusOK, deliverResponse{
		Height: height,
		Data:   res.Data,
		Log:    res.Log,
		Events: events,
	})
}

func (s *Server) checkTx(w http.ResponseWriter, r *http.Request) {
	tx, err := s.readTx(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.engine.Check(r.Context(), tx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkResponse{Data: res.Data, Log: res.Log})
}

func (s *Server) getSwap(w http.ResponseWriter, r *http.Request) {
	hash, err := hex.DecodeString(chi.URLParam(r, "hash"))
	if err != nil || len(hash) != swap.HashSize {
		s.writeError(w, r, errors.Wrap(errors.ErrInput, "swap hash"))
		return
	}
	var resp swapResponse
	b := swap.NewBuckets()
	err = s.engine.View(func(db chainswap.ReadOnlyKVStore) error {
		sw, err := b.LoadSwap(db, hash)
		switch {
		case err == nil:
			resp = swapResponse{State: "open", Swap: sw}
			return nil
		case swap.ErrAlreadySettled.Is(err):
			st, err := b.LoadSettlement(db, hash)
			if err != nil {
				return err
			}
			resp = swapResponse{State: st.State.String(), Settlement: st}
			return nil
		default:
			return err
		}
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	owner, err := chainswap.ParseAddress(chi.URLParam(r, "owner"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(err, "owner"))
		return
	}
	mint := chi.URLParam(r, "mint")
	if !x.IsCC(mint) {
		s.writeError(w, r, errors.Wrap(x.ErrCurrency, mint))
		return
	}
	var acc *swap.UserAccount
	err = s.engine.View(func(db chainswap.ReadOnlyKVStore) error {
		var err error
		acc, err = swap.NewBuckets().LoadAccount(db, owner, mint)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

func (s *Server) getWallet(w http.ResponseWriter, r *http.Request) {
	addr, err := chainswap.ParseAddress(chi.URLParam(r, "addr"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(err, "address"))
		return
	}
	var coins x.Coins
	err = s.engine.View(func(db chainswap.ReadOnlyKVStore) error {
		var err error
		coins, err = cash.NewBucket().Balance(db, addr)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if coins == nil {
		coins = x.Coins{}
	}
	writeJSON(w, http.StatusOK, walletResponse{Address: addr, Coins: coins})
}

func (s *Server) getSequence(w http.ResponseWriter, r *http.Request) {
	addr, err := chainswap.ParseAddress(chi.URLParam(r, "addr"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(err, "address"))
		return
	}
	var user *sigs.UserData
	err = s.engine.View(func(db chainswap.ReadOnlyKVStore) error {
		var err error
		user, err = sigs.NewBucket().GetOrCreate(db, addr)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

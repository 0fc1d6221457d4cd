package weavetest

import "github.com/iov-one/chainswap"

// Handler is a mock implementation of the chainswap.Handler interface.
//
// Each method call is counted and the configured result returned.
type Handler struct {
	checkCall   int
	CheckResult chainswap.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult chainswap.DeliverResult
	DeliverErr    error
}

var _ chainswap.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes the key, value pair to the store on every call and
// returns Err afterwards, so that tests can observe whether a failed call
// left its writes behind.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ chainswap.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &chainswap.CheckResult{}, h.Err
}

func (h *WriteHandler) Deliver(ctx chainswap.Context, db chainswap.KVStore, tx chainswap.Tx) (*chainswap.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	return &chainswap.DeliverResult{}, h.Err
}

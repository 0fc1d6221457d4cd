package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/chainswap"
	"github.com/iov-one/chainswap/errors"
	"github.com/iov-one/chainswap/store"
	"github.com/iov-one/chainswap/weavetest"
)

func TestBumpSequence(t *testing.T) {
	alice := weavetest.NewAddress()
	bob := weavetest.NewAddress()

	cases := map[string]struct {
		auth      *weavetest.Auth
		increment uint32
		init      int64
		wantErr   *errors.Error
		wantSeq   int64
	}{
		"increment by one is a no-op": {
			auth:      &weavetest.Auth{Signer: alice},
			increment: 1,
			init:      5,
			wantSeq:   5,
		},
		"increment by ten": {
			auth:      &weavetest.Auth{Signer: alice},
			increment: 10,
			init:      5,
			wantSeq:   14,
		},
		"increment too big": {
			auth:      &weavetest.Auth{Signer: alice},
			increment: maxSequenceIncrement + 1,
			init:      5,
			wantErr:   errors.ErrMsg,
			wantSeq:   5,
		},
		"increment zero": {
			auth:    &weavetest.Auth{Signer: alice},
			init:    5,
			wantErr: errors.ErrMsg,
			wantSeq: 5,
		},
		"overflow": {
			auth:      &weavetest.Auth{Signer: alice},
			increment: 10,
			init:      maxSequenceValue - 2,
			wantErr:   errors.ErrOverflow,
			wantSeq:   maxSequenceValue - 2,
		},
		"unknown signer": {
			auth:      &weavetest.Auth{Signer: bob},
			increment: 2,
			init:      5,
			wantErr:   errors.ErrNotFound,
			wantSeq:   5,
		},
		"not signed": {
			auth:      &weavetest.Auth{},
			increment: 2,
			init:      5,
			wantErr:   errors.ErrUnauthorized,
			wantSeq:   5,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := NewBucket()
			if err := b.Save(db, &UserData{Pubkey: alice, Sequence: tc.init}); err != nil {
				t.Fatalf("cannot save user: %s", err)
			}

			rt := &router{}
			RegisterRoutes(rt, tc.auth)
			tx := &weavetest.Tx{Msg: &BumpSequenceMsg{Increment: tc.increment}}
			ctx := context.Background()

			if _, err := rt.h.Check(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if _, err := rt.h.Deliver(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			user, err := b.GetOrCreate(db, alice)
			if err != nil {
				t.Fatalf("cannot load user: %s", err)
			}
			if user.Sequence != tc.wantSeq {
				t.Fatalf("want sequence %d, got %d", tc.wantSeq, user.Sequence)
			}
		})
	}
}

type router struct {
	h chainswap.Handler
}

func (r *router) Handle(m chainswap.Msg, h chainswap.Handler) {
	r.h = h
}

package cmd

import (
	"fmt"

	"github.com/ebfe/scard"
	"github.com/sirupsen/logrus"
)

// session is an open PC/SC connection to one card.
type session struct {
	ctx    *scard.Context
	card   *scard.Card
	reader string
}

// listReaders returns the PC/SC readers currently attached.
func listReaders() ([]string, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("establishing context: %w", err)
	}
	defer releaseContext(ctx)

	readers, err := ctx.ListReaders()
	if err != nil {
		return nil, fmt.Errorf("listing readers: %w", err)
	}
	return readers, nil
}

// connect opens the card in the reader at index.
func connect(index int) (*session, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("establishing context: %w", err)
	}

	readers, err := ctx.ListReaders()
	if err != nil || len(readers) == 0 {
		releaseContext(ctx)
		return nil, fmt.Errorf("no smart card reader found")
	}
	if index < 0 || index >= len(readers) {
		releaseContext(ctx)
		return nil, fmt.Errorf("reader %d out of range, %d available", index, len(readers))
	}

	// T=1 is usual for contactless chips; T=0 keeps contact readers working.
	card, err := ctx.Connect(readers[index], scard.ShareShared, scard.ProtocolT0|scard.ProtocolT1)
	if err != nil {
		releaseContext(ctx)
		return nil, fmt.Errorf("connecting to card in %q: %w", readers[index], err)
	}

	log.WithField("reader", readers[index]).Info("card connected")
	return &session{ctx: ctx, card: card, reader: readers[index]}, nil
}

func (s *session) Close() {
	if err := s.card.Disconnect(scard.LeaveCard); err != nil {
		log.WithError(err).Warn("failed to disconnect card")
	}
	releaseContext(s.ctx)
}

func releaseContext(ctx *scard.Context) {
	if err := ctx.Release(); err != nil {
		log.WithFields(logrus.Fields{"error": err}).Warn("failed to release context")
	}
}

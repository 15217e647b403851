package exchange

import (
	"bytes"
	"encoding/binary"

	voucherx "github.com/vx-one/voucherx"
	"github.com/vx-one/voucherx/coin"
	"github.com/vx-one/voucherx/errors"
)

// Every record is encoded as a one byte schema header followed by its
// fields at fixed offsets: little endian integers, raw address and asset
// bytes, single byte booleans and a zero padded ticker.

const (
	exchangeSchema = 1
	listingSchema  = 1
	bidSchema      = 1
	saleSchema     = 1

	// tickerSize is the fixed width of the payment currency field.
	tickerSize = 4
)

var (
	addrSize = voucherx.AddressLength

	exchangeSize = 1 + addrSize + 4 + addrSize + 8 + 8 + 1
	listingSize  = 1 + addrSize + assetIDLength + addrSize + 8 + tickerSize + 1 + 1
	bidSize      = 1 + addrSize + assetIDLength + 8 + tickerSize + addrSize + 1 + 1 + 1
	saleSize     = 1 + assetIDLength + 1 + 8
)

type codecWriter struct {
	buf bytes.Buffer
}

func (w *codecWriter) byte(b byte) {
	w.buf.WriteByte(b)
}

func (w *codecWriter) bool(b bool) {
	if b {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
}

func (w *codecWriter) bytes(raw []byte) {
	w.buf.Write(raw)
}

func (w *codecWriter) uint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *codecWriter) uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

func (w *codecWriter) coin(c coin.Coin) error {
	if len(c.Ticker) > tickerSize {
		return errors.Wrapf(errors.ErrModel, "ticker %q too long", c.Ticker)
	}
	w.uint64(uint64(c.Amount))
	var ticker [tickerSize]byte
	copy(ticker[:], c.Ticker)
	w.buf.Write(ticker[:])
	return nil
}

type codecReader struct {
	raw []byte
}

func (r *codecReader) byte() byte {
	b := r.raw[0]
	r.raw = r.raw[1:]
	return b
}

func (r *codecReader) bool() bool {
	return r.byte() == 1
}

func (r *codecReader) bytes(n int) []byte {
	b := append([]byte(nil), r.raw[:n]...)
	r.raw = r.raw[n:]
	return b
}

func (r *codecReader) address() voucherx.Address {
	return voucherx.Address(r.bytes(addrSize))
}

func (r *codecReader) uint32() uint32 {
	v := binary.LittleEndian.Uint32(r.raw)
	r.raw = r.raw[4:]
	return v
}

func (r *codecReader) uint64() uint64 {
	v := binary.LittleEndian.Uint64(r.raw)
	r.raw = r.raw[8:]
	return v
}

func (r *codecReader) coin() coin.Coin {
	amount := int64(r.uint64())
	ticker := r.bytes(tickerSize)
	return coin.NewCoin(amount, string(bytes.TrimRight(ticker, "\x00")))
}

// checkRecord verifies the schema header and the exact record size.
func checkRecord(raw []byte, schema byte, size int, name string) error {
	if len(raw) != size {
		return errors.Wrapf(errors.ErrInput, "bad %s size %d", name, len(raw))
	}
	if raw[0] != schema {
		return errors.Wrapf(errors.ErrType, "unknown %s schema %d", name, raw[0])
	}
	return nil
}

func (e *Exchange) Marshal() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	var w codecWriter
	w.byte(exchangeSchema)
	w.bytes(e.Authority)
	w.uint32(e.FeeBasisPoints)
	w.bytes(e.FeeDestination)
	w.uint64(e.TotalListings)
	w.uint64(e.TotalBids)
	w.byte(e.DerivationNonce)
	return w.buf.Bytes(), nil
}

func (e *Exchange) Unmarshal(raw []byte) error {
	if err := checkRecord(raw, exchangeSchema, exchangeSize, "exchange"); err != nil {
		return err
	}
	r := codecReader{raw: raw}
	r.byte()
	e.Authority = r.address()
	e.FeeBasisPoints = r.uint32()
	e.FeeDestination = r.address()
	e.TotalListings = r.uint64()
	e.TotalBids = r.uint64()
	e.DerivationNonce = r.byte()
	return nil
}

func (l *Listing) Marshal() ([]byte, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	var w codecWriter
	w.byte(listingSchema)
	w.bytes(l.Owner)
	w.bytes(l.AssetID)
	w.bytes(l.CustodyAccount)
	if err := w.coin(l.Price); err != nil {
		return nil, err
	}
	w.bool(l.Active)
	w.byte(l.CustodyNonce)
	return w.buf.Bytes(), nil
}

func (l *Listing) Unmarshal(raw []byte) error {
	if err := checkRecord(raw, listingSchema, listingSize, "listing"); err != nil {
		return err
	}
	r := codecReader{raw: raw}
	r.byte()
	l.Owner = r.address()
	l.AssetID = r.bytes(assetIDLength)
	l.CustodyAccount = r.address()
	l.Price = r.coin()
	l.Active = r.bool()
	l.CustodyNonce = r.byte()
	return nil
}

func (b *Bid) Marshal() ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	var w codecWriter
	w.byte(bidSchema)
	w.bytes(b.Bidder)
	w.bytes(b.AssetID)
	if err := w.coin(b.Price); err != nil {
		return nil, err
	}
	w.bytes(b.CustodyAccount)
	w.bool(b.Active)
	w.bool(b.RequiresRefund)
	w.byte(b.CustodyNonce)
	return w.buf.Bytes(), nil
}

func (b *Bid) Unmarshal(raw []byte) error {
	if err := checkRecord(raw, bidSchema, bidSize, "bid"); err != nil {
		return err
	}
	r := codecReader{raw: raw}
	r.byte()
	b.Bidder = r.address()
	b.AssetID = r.bytes(assetIDLength)
	b.Price = r.coin()
	b.CustodyAccount = r.address()
	b.Active = r.bool()
	b.RequiresRefund = r.bool()
	b.CustodyNonce = r.byte()
	return nil
}

func (s *SaleRecord) Marshal() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var w codecWriter
	w.byte(saleSchema)
	w.bytes(s.AssetID)
	w.bool(s.Sold)
	w.uint64(uint64(s.LastSaleTime))
	return w.buf.Bytes(), nil
}

func (s *SaleRecord) Unmarshal(raw []byte) error {
	if err := checkRecord(raw, saleSchema, saleSize, "sale record"); err != nil {
		return err
	}
	r := codecReader{raw: raw}
	r.byte()
	s.AssetID = r.bytes(assetIDLength)
	s.Sold = r.bool()
	s.LastSaleTime = voucherx.UnixTime(r.uint64())
	return nil
}
